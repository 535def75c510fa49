package products

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	ErrBusinessNotFound = access.ErrBusinessNotFound
	ErrAccessDenied     = access.ErrAccessDenied

	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("product not found")

	// ErrSKUTaken возвращается, когда артикул уже используется в бизнесе
	ErrSKUTaken = errors.New("sku already taken")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInternal     = errors.New("products service: internal error")
)
