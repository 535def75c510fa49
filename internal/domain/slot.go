package domain

import "github.com/m04kA/SMC-BeautyMarketplace/pkg/types"

// AvailableSlot время, на которое можно записаться, и свободные мастера
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	StaffIDs        []int64
}

// AvailableStaff количество свободных мастеров
func (s *AvailableSlot) AvailableStaff() int {
	return len(s.StaffIDs)
}

// Overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Граничащие интервалы (конец одного = начало другого) не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}
