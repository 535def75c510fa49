package notifications

import (
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/config"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/email"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/sms"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/userservice"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/metrics"
)

// NewDispatcherFromConfig собирает диспетчер с каналами, включенными в конфигурации
func NewDispatcherFromConfig(cfg *config.Config, m *metrics.Metrics, log Logger) *Dispatcher {
	contacts := userservice.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)

	var (
		emailSender EmailSender
		smsSender   SMSSender
	)
	if cfg.Email.Enabled {
		emailSender = email.NewClient(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, log)
	}
	if cfg.SMS.Enabled {
		smsSender = sms.NewClient(cfg.SMS.URL, cfg.SMS.APIKey, cfg.SMS.Sender, time.Duration(cfg.SMS.Timeout)*time.Second, log)
	}

	return NewDispatcher(contacts, emailSender, smsSender, m, log)
}
