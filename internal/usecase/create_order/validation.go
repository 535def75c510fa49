package create_order

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

const maxOrderItems = 50

// validateRequest валидирует запрос и объединяет повторяющиеся товары
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	if len(req.Items) > maxOrderItems {
		return fmt.Errorf("%w: at most %d items per order", ErrInvalidInput, maxOrderItems)
	}

	merged := make([]Item, 0, len(req.Items))
	index := make(map[int64]int, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: productID must be positive", ErrInvalidInput)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
		if item.Quantity > domain.MaxLineQuantity {
			return fmt.Errorf("%w: quantity must be at most %d", ErrInvalidInput, domain.MaxLineQuantity)
		}
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			if merged[i].Quantity > domain.MaxLineQuantity {
				return fmt.Errorf("%w: quantity must be at most %d", ErrInvalidInput, domain.MaxLineQuantity)
			}
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	req.Items = merged

	if req.PromoCode != nil && strings.TrimSpace(*req.PromoCode) == "" {
		req.PromoCode = nil
	}
	return nil
}
