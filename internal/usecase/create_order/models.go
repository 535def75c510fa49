package create_order

import "github.com/m04kA/SMC-BeautyMarketplace/internal/domain"

// Item позиция заказа
type Item struct {
	ProductID int64
	Quantity  int
}

// Request запрос на создание заказа
type Request struct {
	CustomerID int64
	BusinessID int64
	Items      []Item
	PromoCode  *string
}

// Response созданный заказ и данные для оплаты
type Response struct {
	Order               *domain.Order
	PaymentIntentID     *string
	PaymentClientSecret *string
}
