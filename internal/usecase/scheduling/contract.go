package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// StaffRepository источник мастеров, их расписаний и выходных
type StaffRepository interface {
	ListForService(ctx context.Context, businessID, serviceID int64) ([]*domain.Staff, error)
	GetSchedule(ctx context.Context, staffID int64) (*domain.WeeklySchedule, error)
	HasTimeOff(ctx context.Context, staffID int64, date time.Time) (bool, error)
}

// BookingRepository источник бронирований бизнеса
type BookingRepository interface {
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}
