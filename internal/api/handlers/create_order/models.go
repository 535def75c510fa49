package create_order

import (
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/orders/models"
	createOrder "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/create_order"
)

// OrderItemRequest позиция заказа
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	BusinessID int64              `json:"businessId"`
	Items      []OrderItemRequest `json:"items"`
	PromoCode  *string            `json:"promoCode,omitempty"`
}

// CreateOrderResponse заказ и данные для оплаты
type CreateOrderResponse struct {
	Order               *models.OrderResponse `json:"order"`
	PaymentIntentID     *string               `json:"paymentIntentId,omitempty"`
	PaymentClientSecret *string               `json:"paymentClientSecret,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(customerID int64) *createOrder.Request {
	items := make([]createOrder.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, createOrder.Item{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return &createOrder.Request{
		CustomerID: customerID,
		BusinessID: r.BusinessID,
		Items:      items,
		PromoCode:  r.PromoCode,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *CreateOrderResponse {
	return &CreateOrderResponse{
		Order:               models.FromDomainOrder(resp.Order),
		PaymentIntentID:     resp.PaymentIntentID,
		PaymentClientSecret: resp.PaymentClientSecret,
	}
}
