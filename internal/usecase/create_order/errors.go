package create_order

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден или неактивен
	ErrBusinessNotFound = access.ErrBusinessNotFound

	// ErrProductNotFound возвращается, когда товар не найден, неактивен или принадлежит другому бизнесу
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock возвращается, когда товара не хватает на складе
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrMixedCurrency возвращается, когда товары заказа в разных валютах
	ErrMixedCurrency = errors.New("products must share one currency")

	// ErrPromotionRejected возвращается, когда промокод нельзя применить
	ErrPromotionRejected = errors.New("promotion cannot be applied")

	// ErrPaymentUnavailable возвращается, когда не удалось создать онлайн-оплату
	ErrPaymentUnavailable = errors.New("online payment is unavailable")

	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create order: internal error")
)
