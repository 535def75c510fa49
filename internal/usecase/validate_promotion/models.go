package validate_promotion

import "github.com/m04kA/SMC-BeautyMarketplace/internal/domain"

// CartItem позиция корзины из запроса (цены берутся из каталога)
type CartItem struct {
	Kind     domain.ItemKind
	ItemID   int64
	Quantity int
}

// Request запрос на предпросмотр скидки
type Request struct {
	BusinessID int64
	CustomerID int64
	Code       string
	Items      []CartItem
}

// Response рассчитанная скидка
type Response struct {
	PromotionID   int64                `json:"promotionId"`
	Code          string               `json:"code"`
	Name          string               `json:"name"`
	Type          domain.PromotionType `json:"type"`
	SubtotalCents int64                `json:"subtotalCents"`
	DiscountCents int64                `json:"discountCents"`
	TotalCents    int64                `json:"totalCents"`
}
