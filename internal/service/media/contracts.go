package media

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/objectstorage"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	SetCoverImage(ctx context.Context, id int64, key string) error
}

// Storage объектное хранилище с подписанными ссылками
type Storage interface {
	PresignUpload(ctx context.Context, key, contentType string) (*objectstorage.PresignedUpload, error)
	PublicURL(key string) string
}

// KeyGenerator имя файла в хранилище
type KeyGenerator func() string

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
