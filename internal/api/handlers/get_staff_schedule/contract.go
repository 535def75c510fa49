package get_staff_schedule

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/staff/models"
)

type StaffService interface {
	GetSchedule(ctx context.Context, businessID, staffID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
