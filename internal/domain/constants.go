package domain

// Значения настроек бронирования по умолчанию
const (
	DefaultSlotStepMinutes         = 15
	DefaultAdvanceBookingDays      = 0  // 0 = без ограничений
	DefaultMinBookingNoticeMinutes = 60 // 1 час
	DefaultCancellationNoticeHours = 24
)

// Ограничения бизнес-валидации
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 часов
	MaxServiceBufferMinutes     = 120
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 год
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 неделя
	MaxCancellationNoticeHours  = 720   // 30 дней
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxReviewCommentLength      = 2000
	MaxReviewReplyLength        = 2000
	MinRating                   = 1
	MaxRating                   = 5
	MaxAnalyticsRangeDays       = 366
	DefaultPageLimit            = 20
	MaxPageLimit                = 100
	MaxLineQuantity             = 1000        // Единиц одной позиции в корзине или заказе
	MaxPriceCents               = 100_000_000 // 1 000 000 в валюте
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие время мастера
// Используется для фильтрации при проверке пересечений
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByCompany,
	StatusNoShow,
	StatusExpired,
}

// ActiveStatuses статусы активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// AllStatuses все статусы бронирования
var AllStatuses = append(append([]BookingStatus{}, ActiveStatuses...), InactiveStatuses...)
