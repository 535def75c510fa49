package update_business

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/businesses/models"
)

type BusinessService interface {
	Update(ctx context.Context, id int64, req *models.UpdateBusinessRequest) (*models.BusinessResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
