package businesses

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) (*domain.Business, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	Search(ctx context.Context, filter domain.BusinessSearchFilter) ([]*domain.Business, error)
	Update(ctx context.Context, b *domain.Business) error
}

// MediaURLBuilder строит публичный адрес объекта хранилища
type MediaURLBuilder interface {
	PublicURL(key string) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
