package reschedule_booking

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/scheduling"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда пользователь не клиент и не менеджер бизнеса
	ErrAccessDenied = access.ErrAccessDenied

	// ErrInvalidStatus возвращается, когда бронирование нельзя перенести в текущем статусе
	ErrInvalidStatus = errors.New("only pending or confirmed bookings can be rescheduled")

	// ErrStaffNotAvailable возвращается, когда мастер больше не выполняет услугу
	ErrStaffNotAvailable = errors.New("staff member is not available for this service")

	// ErrInvalidDate возвращается, если дата в прошлом
	ErrInvalidDate = scheduling.ErrInvalidDate

	// ErrDateTooFarInFuture возвращается, если дата слишком далеко в будущем
	ErrDateTooFarInFuture = scheduling.ErrDateTooFarInFuture

	// ErrTooLateToBook возвращается, если до нового времени меньше минимального уведомления
	ErrTooLateToBook = scheduling.ErrTooLateToBook

	// ErrInvalidTimeSlot возвращается, если время вне рабочих часов мастера или не попадает в сетку
	ErrInvalidTimeSlot = errors.New("time slot is outside staff working hours or not aligned to slot step")

	// ErrSlotNotAvailable возвращается, если мастер занят в новое время
	ErrSlotNotAvailable = errors.New("time slot is not available")

	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("reschedule booking: internal error")
)
