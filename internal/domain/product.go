package domain

import "time"

// Product товар, продаваемый бизнесом
type Product struct {
	ID            int64
	BusinessID    int64
	Name          string
	Description   *string
	SKU           *string // Уникален в рамках бизнеса
	PriceCents    int64
	Currency      string
	StockQuantity int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InStock возвращает true, если на складе есть quantity единиц
func (p *Product) InStock(quantity int) bool {
	return p.StockQuantity >= quantity
}
