package create_upload_url

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/media/models"
)

type MediaService interface {
	CreateUploadURL(ctx context.Context, req *models.CreateUploadURLRequest) (*models.UploadURLResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
