package reply_review

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/reviews/models"
)

type ReviewService interface {
	Reply(ctx context.Context, reviewID int64, req *models.ReplyRequest) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
