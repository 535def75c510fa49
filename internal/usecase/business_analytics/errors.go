package business_analytics

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = access.ErrBusinessNotFound

	// ErrAccessDenied возвращается, когда пользователь не управляет бизнесом
	ErrAccessDenied = access.ErrAccessDenied

	// ErrInvalidRange возвращается, если период пустой, перевернут или длиннее года
	ErrInvalidRange = errors.New("invalid analytics range")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("business analytics: internal error")
)
