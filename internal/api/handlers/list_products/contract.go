package list_products

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/products/models"
)

type ProductService interface {
	List(ctx context.Context, businessID int64, userID *int64, includeInactive bool) (*models.ProductListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
