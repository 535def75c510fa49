package domain

import "time"

// BookingSettings настройки бронирования бизнеса
// Поддерживает иерархию:
// 1. Для конкретной услуги (business_id, service_id)
// 2. Для всех услуг бизнеса (business_id, NULL)
type BookingSettings struct {
	ID                      int64
	BusinessID              int64
	ServiceID               *int64 // NULL = настройки для всех услуг
	SlotStepMinutes         int
	AdvanceBookingDays      int // 0 = без ограничений
	MinBookingNoticeMinutes int
	CancellationNoticeHours int
	RequirePrepayment       bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsGlobal настройки для всех услуг бизнеса
func (s *BookingSettings) IsGlobal() bool {
	return s.ServiceID == nil
}

// HasAdvanceBookingLimit есть ли ограничение на бронирование заранее
func (s *BookingSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// DefaultBookingSettings настройки по умолчанию, если бизнес ничего не задал
func DefaultBookingSettings(businessID int64) *BookingSettings {
	return &BookingSettings{
		BusinessID:              businessID,
		SlotStepMinutes:         DefaultSlotStepMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		CancellationNoticeHours: DefaultCancellationNoticeHours,
		RequirePrepayment:       false,
	}
}
