package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/scheduling"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден или неактивен
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или недоступна в бизнесе
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrStaffNotAvailable возвращается, когда выбранный мастер не выполняет услугу
	ErrStaffNotAvailable = errors.New("create_booking: staff member does not perform this service")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = scheduling.ErrInvalidDate

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = scheduling.ErrDateTooFarInFuture

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minBookingNoticeMinutes
	ErrTooLateToBook = scheduling.ErrTooLateToBook

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов или рабочие часы
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда все подходящие мастера заняты
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrPromotionRejected возвращается, когда промокод нельзя применить
	ErrPromotionRejected = errors.New("create_booking: promotion cannot be applied")

	// ErrPaymentUnavailable возвращается, когда не удалось создать онлайн-оплату
	ErrPaymentUnavailable = errors.New("create_booking: online payment is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
