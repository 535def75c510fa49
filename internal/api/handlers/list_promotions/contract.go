package list_promotions

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/promotions/models"
)

type PromotionService interface {
	List(ctx context.Context, businessID, userID int64, activeOnly bool) (*models.PromotionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
