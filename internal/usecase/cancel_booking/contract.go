package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/stripeconnect"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error
	SetPaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetWithHierarchy(ctx context.Context, businessID int64, serviceID *int64) (*domain.BookingSettings, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	SetRefunded(ctx context.Context, id int64, refundedCents int64, status domain.PaymentRecordStatus) error
}

// PromotionRepository снимает использование промоакции
type PromotionRepository interface {
	ReleaseForBooking(ctx context.Context, bookingID int64) ([]int64, error)
}

// RefundProvider возвращает деньги клиенту
type RefundProvider interface {
	Refund(ctx context.Context, req stripeconnect.RefundRequest) (*stripeconnect.Refund, error)
}

// PaymentVoider отменяет неоплаченный PaymentIntent
type PaymentVoider interface {
	Void(ctx context.Context, payment *domain.Payment) error
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
