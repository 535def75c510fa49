// Package scheduling собирает рабочее время мастеров на дату и проверяет пересечения бронирований
package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

// StaffDay мастер и его рабочие часы на конкретную дату
type StaffDay struct {
	Staff *domain.Staff
	Hours domain.DaySchedule
}

// Planner читает расписания мастеров и их занятость
type Planner struct {
	staffRepo   StaffRepository
	bookingRepo BookingRepository
}

// NewPlanner создает планировщик
func NewPlanner(staffRepo StaffRepository, bookingRepo BookingRepository) *Planner {
	return &Planner{
		staffRepo:   staffRepo,
		bookingRepo: bookingRepo,
	}
}

// WorkingStaff возвращает мастеров, выполняющих услугу и работающих в дату, по возрастанию ID.
// Если staffID задан, результат ограничивается этим мастером
func (p *Planner) WorkingStaff(ctx context.Context, businessID, serviceID int64, staffID *int64, date time.Time) ([]StaffDay, error) {
	members, err := p.staffRepo.ListForService(ctx, businessID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: list staff: %v", ErrLookup, err)
	}

	if staffID != nil {
		var selected *domain.Staff
		for _, m := range members {
			if m.ID == *staffID {
				selected = m
				break
			}
		}
		if selected == nil {
			return nil, ErrStaffNotQualified
		}
		members = []*domain.Staff{selected}
	}

	result := make([]StaffDay, 0, len(members))
	for _, m := range members {
		schedule, err := p.staffRepo.GetSchedule(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule of staff %d: %v", ErrLookup, m.ID, err)
		}
		hours := schedule.ForDay(date.Weekday())
		if !hours.IsOpen || !hours.OpenTime.IsBefore(hours.CloseTime) {
			continue
		}

		off, err := p.staffRepo.HasTimeOff(ctx, m.ID, date)
		if err != nil {
			return nil, fmt.Errorf("%w: time off of staff %d: %v", ErrLookup, m.ID, err)
		}
		if off {
			continue
		}

		result = append(result, StaffDay{Staff: m, Hours: hours})
	}

	return result, nil
}

// BusyByStaff возвращает активные бронирования мастеров на дату, сгруппированные по мастеру.
// В транзакции строки блокируются репозиторием (FOR UPDATE)
func (p *Planner) BusyByStaff(ctx context.Context, businessID int64, staffIDs []int64, date time.Time, excludeID *int64) (map[int64][]*domain.Booking, error) {
	busy := make(map[int64][]*domain.Booking, len(staffIDs))
	if len(staffIDs) == 0 {
		return busy, nil
	}

	bookings, err := p.bookingRepo.GetByBusinessWithFilter(ctx, domain.BusinessBookingsFilter{
		BusinessID: businessID,
		StaffIDs:   staffIDs,
		StartDate:  &date,
		EndDate:    &date,
		ExcludeID:  excludeID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %v", ErrLookup, err)
	}

	for _, b := range bookings {
		busy[b.StaffID] = append(busy[b.StaffID], b)
	}
	return busy, nil
}

// Today текущая дата в часовом поясе бизнеса (полночь UTC, как хранятся даты бронирований)
func Today(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DateOnly отбрасывает время и часовой пояс
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateDate проверяет, что дата не в прошлом и не дальше advanceDays (0 = без ограничений)
func ValidateDate(date, today time.Time, advanceDays int) error {
	date = DateOnly(date)
	if date.Before(today) {
		return ErrInvalidDate
	}
	if advanceDays > 0 && date.After(today.AddDate(0, 0, advanceDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceDays)
	}
	return nil
}

// ValidateNotice проверяет, что до начала не меньше noticeMinutes
func ValidateNotice(date time.Time, start types.TimeString, now time.Time, loc *time.Location, noticeMinutes int) error {
	if start.On(date, loc).Before(earliestStart(now, noticeMinutes)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, noticeMinutes)
	}
	return nil
}

// CandidateStarts генерирует начала слотов от открытия с шагом step,
// так чтобы start + totalMinutes <= close. Слоты раньше now + notice отбрасываются
func CandidateStarts(hours domain.DaySchedule, step, totalMinutes int, date time.Time, now time.Time, loc *time.Location, noticeMinutes int) ([]types.TimeString, error) {
	if !hours.IsOpen || step <= 0 {
		return []types.TimeString{}, nil
	}

	earliest := earliestStart(now, noticeMinutes)
	starts := make([]types.TimeString, 0)

	for m := hours.OpenTime.Minutes(); m+totalMinutes <= hours.CloseTime.Minutes(); m += step {
		start, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		if start.On(date, loc).Before(earliest) {
			continue
		}
		starts = append(starts, start)
	}

	return starts, nil
}

// FitsHours проверяет, что [start, start+totalMinutes) лежит в рабочих часах
func FitsHours(hours domain.DaySchedule, start types.TimeString, totalMinutes int) bool {
	if !hours.IsOpen {
		return false
	}
	return start.Minutes() >= hours.OpenTime.Minutes() &&
		start.Minutes()+totalMinutes <= hours.CloseTime.Minutes()
}

// OnStep проверяет, что время начала совпадает с сеткой слотов
func OnStep(hours domain.DaySchedule, start types.TimeString, step int) bool {
	if step <= 0 {
		return true
	}
	return (start.Minutes()-hours.OpenTime.Minutes())%step == 0
}

// IsFree проверяет, что ни одно активное бронирование не пересекается с [start, start+totalMinutes).
// Граничащие интервалы не пересекаются
func IsFree(start types.TimeString, totalMinutes int, bookings []*domain.Booking) (bool, error) {
	end, err := start.AddMinutes(totalMinutes)
	if err != nil {
		return false, err
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		bookingEnd, err := b.EndTime()
		if err != nil {
			return false, err
		}
		if domain.Overlaps(start, end, b.StartTime, bookingEnd) {
			return false, nil
		}
	}

	return true, nil
}

// StaffIDs ID мастеров
func StaffIDs(days []StaffDay) []int64 {
	ids := make([]int64, 0, len(days))
	for _, d := range days {
		ids = append(ids, d.Staff.ID)
	}
	return ids
}

func earliestStart(now time.Time, noticeMinutes int) time.Time {
	return now.Add(time.Duration(noticeMinutes) * time.Minute)
}
