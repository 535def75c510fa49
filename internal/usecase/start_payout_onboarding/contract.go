package start_payout_onboarding

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	SetStripeAccount(ctx context.Context, id int64, accountID string) error
}

// ConnectProvider создает connected account и ссылку на онбординг
type ConnectProvider interface {
	CreateConnectedAccount(ctx context.Context, businessID int64, email *string) (string, error)
	CreateOnboardingLink(ctx context.Context, accountID string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
