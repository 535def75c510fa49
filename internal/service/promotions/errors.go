package promotions

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = access.ErrBusinessNotFound

	// ErrAccessDenied возвращается, когда пользователь не управляет бизнесом
	ErrAccessDenied = access.ErrAccessDenied

	// ErrPromotionNotFound возвращается, когда промоакция не найдена
	ErrPromotionNotFound = errors.New("promotion not found")

	// ErrCodeTaken возвращается, когда код уже используется в бизнесе
	ErrCodeTaken = errors.New("promotion code already taken")

	// ErrInvalidInput возвращается при некорректном определении промоакции
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("promotions service: internal error")
)
