package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/scheduling"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.PromoCode != nil && strings.TrimSpace(*req.PromoCode) == "" {
		req.PromoCode = nil
	}

	return nil
}

// validateService проверяет, что услугу можно забронировать в этом бизнесе
func validateService(service *domain.Service, businessID int64) error {
	if service.BusinessID != businessID || !service.IsActive {
		return ErrServiceNotFound
	}
	return nil
}

// pickStaff выбирает первого свободного мастера (по возрастанию ID), у которого время попадает в сетку слотов.
// ErrInvalidTimeSlot - время не подходит ни одному мастеру, ErrSlotNotAvailable - все подходящие заняты
func pickStaff(
	staffDays []scheduling.StaffDay,
	busy map[int64][]*domain.Booking,
	start types.TimeString,
	totalMinutes, step int,
) (*domain.Staff, error) {
	fits := 0
	for _, day := range staffDays {
		if !scheduling.FitsHours(day.Hours, start, totalMinutes) || !scheduling.OnStep(day.Hours, start, step) {
			continue
		}
		fits++

		free, err := scheduling.IsFree(start, totalMinutes, busy[day.Staff.ID])
		if err != nil {
			return nil, fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}
		if free {
			return day.Staff, nil
		}
	}

	if fits == 0 {
		return nil, ErrInvalidTimeSlot
	}
	return nil, ErrSlotNotAvailable
}
