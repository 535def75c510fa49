package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// Request модели

// CreateStaffRequest запрос на добавление мастера
type CreateStaffRequest struct {
	UserID      int64   `json:"-"`
	BusinessID  int64   `json:"-"`
	StaffUserID *int64  `json:"userId,omitempty"`
	Name        string  `json:"name"`
	Title       *string `json:"title,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	ServiceIDs  []int64 `json:"serviceIds"`
}

// ToDomainStaff конвертирует запрос в domain модель
func (r *CreateStaffRequest) ToDomainStaff() *domain.Staff {
	return &domain.Staff{
		BusinessID: r.BusinessID,
		UserID:     r.StaffUserID,
		Name:       strings.TrimSpace(r.Name),
		Title:      r.Title,
		Email:      r.Email,
		Phone:      r.Phone,
		ServiceIDs: uniqueIDs(r.ServiceIDs),
		IsActive:   true,
	}
}

// UpdateStaffRequest частичное обновление мастера
// ServiceIDs != nil заменяет список услуг целиком
type UpdateStaffRequest struct {
	UserID      int64    `json:"-"`
	StaffUserID *int64   `json:"userId,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	ServiceIDs  *[]int64 `json:"serviceIds,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// ApplyTo применяет изменения к мастеру
func (r *UpdateStaffRequest) ApplyTo(s *domain.Staff) {
	if r.StaffUserID != nil {
		s.UserID = r.StaffUserID
	}
	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name)
	}
	if r.Title != nil {
		s.Title = r.Title
	}
	if r.Email != nil {
		s.Email = r.Email
	}
	if r.Phone != nil {
		s.Phone = r.Phone
	}
	if r.ServiceIDs != nil {
		s.ServiceIDs = uniqueIDs(*r.ServiceIDs)
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// DayScheduleRequest рабочее время в день недели (0 = воскресенье)
type DayScheduleRequest struct {
	Weekday   int    `json:"weekday"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// SetScheduleRequest замена недельного расписания
type SetScheduleRequest struct {
	UserID int64                `json:"-"`
	Days   []DayScheduleRequest `json:"days"`
}

// AddTimeOffRequest запрос на добавление выходного
type AddTimeOffRequest struct {
	UserID int64   `json:"-"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// StaffResponse мастер
type StaffResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	UserID     *int64    `json:"userId,omitempty"`
	Name       string    `json:"name"`
	Title      *string   `json:"title,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	ServiceIDs []int64   `json:"serviceIds"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// StaffListResponse список мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// DayScheduleResponse расписание на день
type DayScheduleResponse struct {
	Weekday   int    `json:"weekday"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// ScheduleResponse недельное расписание, все 7 дней
type ScheduleResponse struct {
	StaffID int64                 `json:"staffId"`
	Days    []DayScheduleResponse `json:"days"`
}

// TimeOffResponse выходной
type TimeOffResponse struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// TimeOffListResponse список выходных
type TimeOffListResponse struct {
	TimeOff []TimeOffResponse `json:"timeOff"`
}

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	if s == nil {
		return nil
	}
	serviceIDs := s.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}
	return &StaffResponse{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		UserID:     s.UserID,
		Name:       s.Name,
		Title:      s.Title,
		Email:      s.Email,
		Phone:      s.Phone,
		ServiceIDs: serviceIDs,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
	}
}

// FromDomainStaffList конвертирует список
func FromDomainStaffList(list []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{Staff: make([]StaffResponse, 0, len(list))}
	for _, s := range list {
		resp.Staff = append(resp.Staff, *FromDomainStaff(s))
	}
	return resp
}

// FromDomainSchedule разворачивает расписание на все дни недели
func FromDomainSchedule(w *domain.WeeklySchedule) *ScheduleResponse {
	resp := &ScheduleResponse{StaffID: w.StaffID, Days: make([]DayScheduleResponse, 0, 7)}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := w.ForDay(wd)
		item := DayScheduleResponse{Weekday: int(wd), IsOpen: day.IsOpen}
		if day.IsOpen {
			item.OpenTime = day.OpenTime.String()
			item.CloseTime = day.CloseTime.String()
		}
		resp.Days = append(resp.Days, item)
	}
	return resp
}

// FromDomainTimeOff конвертирует выходной
func FromDomainTimeOff(t *domain.TimeOff) *TimeOffResponse {
	return &TimeOffResponse{
		ID:     t.ID,
		Date:   t.Date.Format(domain.DateFormat),
		Reason: t.Reason,
	}
}

// FromDomainTimeOffList конвертирует список выходных
func FromDomainTimeOffList(list []*domain.TimeOff) *TimeOffListResponse {
	resp := &TimeOffListResponse{TimeOff: make([]TimeOffResponse, 0, len(list))}
	for _, t := range list {
		resp.TimeOff = append(resp.TimeOff, *FromDomainTimeOff(t))
	}
	return resp
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
