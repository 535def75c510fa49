package catalog

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = access.ErrBusinessNotFound

	// ErrAccessDenied возвращается, когда пользователь не управляет бизнесом
	ErrAccessDenied = access.ErrAccessDenied

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog service: internal error")
)
