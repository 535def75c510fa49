package deactivate_promotion

import "context"

type PromotionService interface {
	Deactivate(ctx context.Context, businessID, promotionID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
