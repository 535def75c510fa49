package validate_promotion

import "errors"

var (
	// ErrPromotionNotFound возвращается, когда у бизнеса нет промоакции с таким кодом
	ErrPromotionNotFound = errors.New("promo code not found")

	// ErrPromotionRejected возвращается, когда промокод не подходит к корзине
	ErrPromotionRejected = errors.New("promotion cannot be applied")

	// ErrItemNotFound возвращается, когда позиция корзины не найдена у бизнеса
	ErrItemNotFound = errors.New("cart item not found")

	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("validate promotion: internal error")
)
