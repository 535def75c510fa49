package get_available_slots

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/scheduling"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден или неактивен
	ErrBusinessNotFound = errors.New("business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена, неактивна или принадлежит другому бизнесу
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffNotAvailable возвращается, когда выбранный мастер не выполняет услугу
	ErrStaffNotAvailable = errors.New("staff member does not perform this service")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = scheduling.ErrInvalidDate

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = scheduling.ErrDateTooFarInFuture

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
