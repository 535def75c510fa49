package reschedule_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

var errInvalidTime = errors.New("invalid start time")

// RescheduleBookingRequest новое время бронирования
type RescheduleBookingRequest struct {
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Date:      date,
		StartTime: startTime,
	}, nil
}
