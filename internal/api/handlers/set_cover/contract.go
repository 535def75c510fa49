package set_cover

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/media/models"
)

type MediaService interface {
	SetCover(ctx context.Context, req *models.SetCoverRequest) (*models.CoverResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
