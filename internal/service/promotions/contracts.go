package promotions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// PromotionRepository интерфейс репозитория промоакций
type PromotionRepository interface {
	Create(ctx context.Context, p *domain.Promotion) (*domain.Promotion, error)
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
	ListByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Promotion, error)
	Update(ctx context.Context, p *domain.Promotion) error
	Deactivate(ctx context.Context, id int64) error
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
