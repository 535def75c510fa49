package notifications

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/email"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ContactProvider источник контактов клиента
type ContactProvider interface {
	GetContactProfileWithGracefulDegradation(ctx context.Context, userID int64) (*domain.ContactProfile, error)
}

// EmailSender отправка писем
type EmailSender interface {
	Send(ctx context.Context, msg email.Message) (string, error)
}

// SMSSender отправка SMS
type SMSSender interface {
	Send(ctx context.Context, to, text string) (string, error)
}
