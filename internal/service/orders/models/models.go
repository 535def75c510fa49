package models

import (
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// OrderItemResponse позиция заказа
type OrderItemResponse struct {
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	TotalCents     int64  `json:"totalCents"`
}

// OrderResponse заказ
type OrderResponse struct {
	ID            int64               `json:"id"`
	BusinessID    int64               `json:"businessId"`
	CustomerID    int64               `json:"customerId"`
	Items         []OrderItemResponse `json:"items"`
	SubtotalCents int64               `json:"subtotalCents"`
	DiscountCents int64               `json:"discountCents"`
	TotalCents    int64               `json:"totalCents"`
	Currency      string              `json:"currency"`
	PromotionID   *int64              `json:"promotionId,omitempty"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"paymentStatus"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// OrderListResponse список заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			TotalCents:     item.TotalCents(),
		})
	}

	return &OrderResponse{
		ID:            o.ID,
		BusinessID:    o.BusinessID,
		CustomerID:    o.CustomerID,
		Items:         items,
		SubtotalCents: o.SubtotalCents,
		DiscountCents: o.DiscountCents,
		TotalCents:    o.TotalCents,
		Currency:      o.Currency,
		PromotionID:   o.PromotionID,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
	}
}

// FromDomainOrderList конвертирует список
func FromDomainOrderList(list []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{Orders: make([]OrderResponse, 0, len(list))}
	for _, o := range list {
		resp.Orders = append(resp.Orders, *FromDomainOrder(o))
	}
	return resp
}
