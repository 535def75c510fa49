package domain

import (
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

// Staff мастер бизнеса
type Staff struct {
	ID         int64
	BusinessID int64
	UserID     *int64 // Аккаунт мастера на платформе (опционально)
	Name       string
	Title      *string
	Email      *string
	Phone      *string
	ServiceIDs []int64 // Услуги, которые выполняет мастер
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PerformsService проверяет, что мастер выполняет услугу
func (s *Staff) PerformsService(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// DaySchedule рабочее время мастера в конкретный день недели
type DaySchedule struct {
	Weekday   time.Weekday
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// WeeklySchedule недельное расписание мастера
type WeeklySchedule struct {
	StaffID int64
	Days    []DaySchedule
}

// ForDay возвращает расписание на день недели (закрыто, если день не задан)
func (w *WeeklySchedule) ForDay(weekday time.Weekday) DaySchedule {
	for _, d := range w.Days {
		if d.Weekday == weekday {
			return d
		}
	}
	return DaySchedule{Weekday: weekday, IsOpen: false}
}

// TimeOff выходной/отпуск мастера на конкретную дату
type TimeOff struct {
	ID        int64
	StaffID   int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}
