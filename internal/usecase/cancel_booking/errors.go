package cancel_booking

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда пользователь не клиент и не менеджер бизнеса
	ErrAccessDenied = access.ErrAccessDenied

	// ErrInvalidStatus возвращается, когда бронирование уже отменено или завершено
	ErrInvalidStatus = errors.New("only pending or confirmed bookings can be cancelled")

	// ErrRefundFailed возвращается, если платёжная система не приняла возврат
	ErrRefundFailed = errors.New("refund failed")

	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("cancel booking: internal error")
)
