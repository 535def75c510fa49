package handle_stripe_webhook

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/stripeconnect"
)

// WebhookParser проверяет подпись и разбирает событие
type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (*stripeconnect.WebhookEvent, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentRecordStatus) error
	SetRefunded(ctx context.Context, id int64, refundedCents int64, status domain.PaymentRecordStatus) error
	MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetPayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, status domain.BookingStatus) error
	SetPaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	SetStatus(ctx context.Context, id int64, status domain.OrderStatus, paymentStatus domain.PaymentStatus) error
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	UpdateStripeStatus(ctx context.Context, status domain.ConnectedAccountStatus) error
}

// RefundProvider возвращает деньги клиенту
type RefundProvider interface {
	Refund(ctx context.Context, req stripeconnect.RefundRequest) (*stripeconnect.Refund, error)
}

// Publisher публикует события уведомлений
type Publisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
