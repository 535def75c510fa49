package list_staff

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/staff/models"
)

type StaffService interface {
	List(ctx context.Context, businessID int64, userID *int64, serviceID *int64, includeInactive bool) (*models.StaffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
