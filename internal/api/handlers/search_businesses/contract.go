package search_businesses

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/businesses/models"
)

type BusinessService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.BusinessListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
