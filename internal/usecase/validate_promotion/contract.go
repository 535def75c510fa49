package validate_promotion

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/promo"
)

// PromotionRepository интерфейс репозитория промоакций (только чтение)
type PromotionRepository = promo.Finder

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
