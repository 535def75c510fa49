package list_services

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, businessID int64, userID *int64, includeInactive bool) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
