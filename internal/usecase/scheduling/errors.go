package scheduling

import "errors"

var (
	// ErrInvalidDate дата в прошлом
	ErrInvalidDate = errors.New("booking date is in the past")

	// ErrDateTooFarInFuture дата дальше, чем разрешено бронировать заранее
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrTooLateToBook до начала меньше минимального времени уведомления
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrStaffNotQualified мастер не найден среди активных мастеров услуги
	ErrStaffNotQualified = errors.New("staff member does not perform this service")

	// ErrLookup ошибка чтения мастеров или бронирований
	ErrLookup = errors.New("scheduling: lookup failed")
)
