package fulfill_order

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/orders/models"
)

type OrderService interface {
	Fulfill(ctx context.Context, orderID, userID int64) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
