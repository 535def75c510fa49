package list_time_off

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/staff/models"
)

type StaffService interface {
	ListTimeOff(ctx context.Context, businessID, staffID, userID int64) (*models.TimeOffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
