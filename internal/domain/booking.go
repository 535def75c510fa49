package domain

import (
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusInProgress         BookingStatus = "in_progress"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
	StatusNoShow             BookingStatus = "no_show"
	StatusExpired            BookingStatus = "expired" // Не оплачено вовремя
)

// PaymentStatus статус оплаты бронирования или заказа
type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "not_required" // Оплата на месте
	PaymentPending     PaymentStatus = "pending"
	PaymentPaid        PaymentStatus = "paid"
	PaymentFailed      PaymentStatus = "failed"
	PaymentRefunded    PaymentStatus = "refunded"
)

// Booking запись клиента к мастеру на услугу
type Booking struct {
	ID              int64
	CustomerID      int64
	BusinessID      int64
	ServiceID       int64
	StaffID         int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int // Длительность услуги + буфер
	Status          BookingStatus

	// Денормализованные данные для истории
	ServiceName string
	StaffName   string

	PriceCents    int64
	DiscountCents int64
	TotalCents    int64
	Currency      string
	PromotionID   *int64
	PaymentStatus PaymentStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time
	ReminderSentAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime время окончания бронирования
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// StartsAt момент начала бронирования в часовом поясе бизнеса
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.StartTime.On(b.BookingDate, loc)
}

// IsActive возвращает true, если бронирование занимает время мастера
func (b *Booking) IsActive() bool {
	return !b.Status.IsInactive()
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled возвращает true, если бронирование можно перенести
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled возвращает true, если бронирование было отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByCompany
}

// IsCompleted возвращает true, если услуга оказана или клиент не пришёл
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// IsPaid возвращает true, если бронирование оплачено онлайн
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// IsInactive статус не занимает время мастера
func (s BookingStatus) IsInactive() bool {
	for _, inactive := range InactiveStatuses {
		if s == inactive {
			return true
		}
	}
	return false
}

// IsValid статус из списка известных
func (s BookingStatus) IsValid() bool {
	for _, valid := range AllStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// bookingTransitions допустимые ручные переходы статусов (менеджером)
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// CanTransitionTo проверяет, что менеджер может перевести бронирование в статус next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	StaffIDs        []int64        // Фильтр по мастерам (опционально)
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, no-show, expired)
	ExcludeID       *int64         // Исключить бронирование (при переносе)
}

// IsSingleDay фильтр на одну дату
func (f BusinessBookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
