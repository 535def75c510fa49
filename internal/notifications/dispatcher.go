package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/email"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/userservice"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/metrics"
)

const (
	channelEmail = "email"
	channelSMS   = "sms"

	resultSent    = "sent"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

// Dispatcher рассылает уведомления по каналам клиента
type Dispatcher struct {
	contacts ContactProvider
	email    EmailSender // nil = канал выключен
	sms      SMSSender   // nil = канал выключен
	metrics  *metrics.Metrics
	log      Logger
}

// NewDispatcher создает диспетчер уведомлений
func NewDispatcher(contacts ContactProvider, emailSender EmailSender, smsSender SMSSender, m *metrics.Metrics, log Logger) *Dispatcher {
	return &Dispatcher{
		contacts: contacts,
		email:    emailSender,
		sms:      smsSender,
		metrics:  m,
		log:      log,
	}
}

// Dispatch доставляет событие по всем доступным каналам клиента.
// Ошибка возвращается, только если все попытки доставки завершились неудачей
// или контакты временно недоступны.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.NotificationEvent) error {
	profile, err := d.contacts.GetContactProfileWithGracefulDegradation(ctx, event.CustomerID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			d.log.Warn("Skipping notification %s: customer %d not found", event.Type, event.CustomerID)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrContactsUnavailable, err)
	}

	rendered, err := Render(event, profile)
	if err != nil {
		return err
	}

	attempted, delivered := 0, 0
	var errs []error

	if d.email != nil && profile.EmailOptIn && profile.Email != nil && *profile.Email != "" {
		attempted++
		_, err := d.email.Send(ctx, email.Message{
			To:       *profile.Email,
			Subject:  rendered.Subject,
			HTML:     rendered.HTML,
			Text:     rendered.Text,
			Category: string(event.Type),
		})
		if err != nil {
			errs = append(errs, err)
			d.observe(channelEmail, resultFailed)
		} else {
			delivered++
			d.observe(channelEmail, resultSent)
		}
	} else {
		d.observe(channelEmail, resultSkipped)
	}

	if d.sms != nil && profile.SMSOptIn && profile.Phone != nil && *profile.Phone != "" {
		attempted++
		if _, err := d.sms.Send(ctx, *profile.Phone, rendered.SMS); err != nil {
			errs = append(errs, err)
			d.observe(channelSMS, resultFailed)
		} else {
			delivered++
			d.observe(channelSMS, resultSent)
		}
	} else {
		d.observe(channelSMS, resultSkipped)
	}

	if attempted > 0 && delivered == 0 {
		return fmt.Errorf("%w: %v", ErrDelivery, errors.Join(errs...))
	}
	if len(errs) > 0 {
		d.log.Warn("Notification %s partially delivered to customer %d: %v", event.Type, event.CustomerID, errors.Join(errs...))
	}

	d.log.Info("Notification %s dispatched to customer %d: channels=%d", event.Type, event.CustomerID, delivered)
	return nil
}

func (d *Dispatcher) observe(channel, result string) {
	if d.metrics == nil {
		return
	}
	d.metrics.NotificationsSent.WithLabelValues(channel, result).Inc()
}
