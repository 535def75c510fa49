package staff

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = access.ErrBusinessNotFound

	// ErrAccessDenied возвращается, когда пользователь не управляет бизнесом
	ErrAccessDenied = access.ErrAccessDenied

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrTimeOffNotFound возвращается, когда выходной не найден
	ErrTimeOffNotFound = errors.New("time off not found")

	// ErrTimeOffExists возвращается, когда выходной на дату уже есть
	ErrTimeOffExists = errors.New("time off already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("staff service: internal error")
)
