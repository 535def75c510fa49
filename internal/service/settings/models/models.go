package models

import (
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// Request модели

// UpsertSettingsRequest запрос на сохранение настроек уровня
// Не переданные поля наследуют действующие значения
type UpsertSettingsRequest struct {
	UserID                  int64  `json:"-"`
	BusinessID              int64  `json:"-"`
	ServiceID               *int64 `json:"serviceId,omitempty"` // NULL = для всех услуг
	SlotStepMinutes         *int   `json:"slotStepMinutes,omitempty"`
	AdvanceBookingDays      *int   `json:"advanceBookingDays,omitempty"` // 0 = без ограничений
	MinBookingNoticeMinutes *int   `json:"minBookingNoticeMinutes,omitempty"`
	CancellationNoticeHours *int   `json:"cancellationNoticeHours,omitempty"`
	RequirePrepayment       *bool  `json:"requirePrepayment,omitempty"`
}

// ApplyTo применяет переданные значения поверх базовых настроек
func (r *UpsertSettingsRequest) ApplyTo(s *domain.BookingSettings) {
	if r.SlotStepMinutes != nil {
		s.SlotStepMinutes = *r.SlotStepMinutes
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.CancellationNoticeHours != nil {
		s.CancellationNoticeHours = *r.CancellationNoticeHours
	}
	if r.RequirePrepayment != nil {
		s.RequirePrepayment = *r.RequirePrepayment
	}
}

// Response модели

// SettingsResponse настройки бронирования
type SettingsResponse struct {
	ID                      int64      `json:"id,omitempty"` // 0 = значения по умолчанию
	BusinessID              int64      `json:"businessId"`
	ServiceID               *int64     `json:"serviceId,omitempty"`
	SlotStepMinutes         int        `json:"slotStepMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	CancellationNoticeHours int        `json:"cancellationNoticeHours"`
	RequirePrepayment       bool       `json:"requirePrepayment"`
	Level                   string     `json:"level"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// SettingsListResponse все уровни настроек бизнеса
type SettingsListResponse struct {
	Settings []SettingsResponse `json:"settings"`
}

// Уровни иерархии
const (
	LevelService  = "service"
	LevelBusiness = "business"
	LevelDefault  = "default"
)

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ID:                      s.ID,
		BusinessID:              s.BusinessID,
		ServiceID:               s.ServiceID,
		SlotStepMinutes:         s.SlotStepMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		CancellationNoticeHours: s.CancellationNoticeHours,
		RequirePrepayment:       s.RequirePrepayment,
		Level:                   Level(s),
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// FromDomainSettingsList конвертирует список
func FromDomainSettingsList(list []*domain.BookingSettings) *SettingsListResponse {
	resp := &SettingsListResponse{Settings: make([]SettingsResponse, 0, len(list))}
	for _, s := range list {
		resp.Settings = append(resp.Settings, *FromDomainSettings(s))
	}
	return resp
}

// Level уровень иерархии, с которого взяты настройки
func Level(s *domain.BookingSettings) string {
	switch {
	case s.ID == 0:
		return LevelDefault
	case s.IsGlobal():
		return LevelBusiness
	default:
		return LevelService
	}
}
