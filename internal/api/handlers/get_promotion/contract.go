package get_promotion

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/promotions/models"
)

type PromotionService interface {
	Get(ctx context.Context, businessID, promotionID, userID int64) (*models.PromotionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
