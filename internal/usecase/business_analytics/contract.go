package business_analytics

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// AnalyticsRepository агрегаты по бронированиям, платежам, заказам и отзывам
type AnalyticsRepository interface {
	BookingsByStatus(ctx context.Context, businessID int64, from, to time.Time) (map[domain.BookingStatus]int, error)
	PaymentTotals(ctx context.Context, businessID int64, from, to time.Time) (*domain.PaymentTotals, error)
	DiscountsTotal(ctx context.Context, businessID int64, from, to time.Time) (int64, error)
	OrderRevenue(ctx context.Context, businessID int64, from, to time.Time) (int64, error)
	CustomerCounts(ctx context.Context, businessID int64, from, to time.Time) (*domain.CustomerCounts, error)
	ReviewStats(ctx context.Context, businessID int64, from, to time.Time) (float64, int, error)
	TopServices(ctx context.Context, businessID int64, from, to time.Time, limit int) ([]domain.ServiceStat, error)
	Daily(ctx context.Context, businessID int64, from, to time.Time) ([]domain.DailyStat, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
