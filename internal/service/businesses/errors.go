package businesses

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = access.ErrBusinessNotFound

	// ErrAccessDenied возвращается, когда пользователь не владелец бизнеса
	ErrAccessDenied = access.ErrAccessDenied

	// ErrSlugTaken возвращается, когда бизнес с таким slug уже есть
	ErrSlugTaken = errors.New("business slug already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("businesses service: internal error")
)
