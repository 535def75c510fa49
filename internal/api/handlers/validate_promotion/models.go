package validate_promotion

import (
	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	validatePromotion "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/validate_promotion"
)

// CartItemRequest позиция корзины
type CartItemRequest struct {
	Kind     string `json:"kind"` // service | product
	ItemID   int64  `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// ValidatePromotionRequest HTTP request model
type ValidatePromotionRequest struct {
	Code  string            `json:"code"`
	Items []CartItemRequest `json:"items"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidatePromotionRequest) ToUseCaseRequest(businessID, customerID int64) *validatePromotion.Request {
	items := make([]validatePromotion.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, validatePromotion.CartItem{
			Kind:     domain.ItemKind(item.Kind),
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}
	return &validatePromotion.Request{
		BusinessID: businessID,
		CustomerID: customerID,
		Code:       r.Code,
		Items:      items,
	}
}
