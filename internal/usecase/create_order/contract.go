package create_order

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/checkout"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/promo"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error)
	DecrementStock(ctx context.Context, id int64, quantity int) error
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// PromotionRepository интерфейс репозитория промоакций
type PromotionRepository = promo.Repository

// Checkout создает онлайн-оплату
type Checkout interface {
	Start(ctx context.Context, t checkout.Target) (*domain.PaymentIntent, *domain.Payment, error)
}

// Publisher публикует события уведомлений
type Publisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
