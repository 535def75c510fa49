package products

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ListByBusiness(ctx context.Context, businessID int64, includeInactive bool) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
