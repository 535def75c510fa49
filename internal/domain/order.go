package domain

import "time"

// OrderStatus статус заказа товаров
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
	OrderFulfilled OrderStatus = "fulfilled"
)

// OrderItem позиция заказа (цена и название фиксируются на момент покупки)
type OrderItem struct {
	ID             int64
	OrderID        int64
	ProductID      int64
	ProductName    string
	UnitPriceCents int64
	Quantity       int
}

// TotalCents стоимость позиции
func (i OrderItem) TotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// Order заказ товаров клиентом
type Order struct {
	ID            int64
	BusinessID    int64
	CustomerID    int64
	Items         []OrderItem
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
	Currency      string
	PromotionID   *int64
	Status        OrderStatus
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Cart корзина заказа для движка скидок
func (o *Order) Cart() Cart {
	lines := make([]CartLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, CartLine{
			Kind:           ItemProduct,
			ItemID:         item.ProductID,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}
	return Cart{Lines: lines}
}
