package handle_stripe_webhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/business"
	paymentRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/payment"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/stripeconnect"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/metrics"
)

// UseCase обрабатывает события Stripe: оплату, отказ, возврат и изменение connected account
type UseCase struct {
	parser       WebhookParser
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	businessRepo BusinessRepository
	refunds      RefundProvider
	publisher    Publisher
	txManager    TransactionManager
	metrics      *metrics.Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	parser WebhookParser,
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	businessRepo BusinessRepository,
	refunds RefundProvider,
	publisher Publisher,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		parser:       parser,
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
		refunds:      refunds,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет подпись и применяет событие. Каждое событие обрабатывается один раз
func (uc *UseCase) Execute(ctx context.Context, payload []byte, signature string) error {
	event, err := uc.parser.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, stripeconnect.ErrNotConfigured) {
			return ErrNotConfigured
		}
		uc.logger.Warn("StripeWebhook: rejected event: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	if !event.IsSupported() {
		uc.logger.Info("StripeWebhook: ignoring event id=%s, type=%s", event.ID, event.Type)
		return nil
	}

	uc.logger.Info("StripeWebhook: event id=%s, type=%s, intent=%s", event.ID, event.Type, event.IntentID)

	var notification *domain.NotificationEvent
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		notification = nil

		fresh, err := uc.paymentRepo.MarkEventProcessed(txCtx, event.ID, event.Type)
		if err != nil {
			return fmt.Errorf("%w: mark processed: %v", ErrInternal, err)
		}
		if !fresh {
			uc.logger.Info("StripeWebhook: event id=%s already processed", event.ID)
			return nil
		}

		switch event.Type {
		case stripeconnect.EventPaymentSucceeded:
			notification, err = uc.paymentSucceeded(txCtx, event)
		case stripeconnect.EventPaymentFailed:
			err = uc.paymentFailed(txCtx, event)
		case stripeconnect.EventChargeRefunded:
			err = uc.chargeRefunded(txCtx, event)
		case stripeconnect.EventAccountUpdated:
			err = uc.accountUpdated(txCtx, event)
		}
		return err
	})
	if err != nil {
		uc.logger.Error("StripeWebhook: failed to handle event id=%s: %v", event.ID, err)
		return err
	}

	if notification != nil {
		if err := uc.publisher.Publish(ctx, *notification); err != nil {
			uc.logger.Error("StripeWebhook: failed to publish %s: %v", notification.Type, err)
		}
	}
	return nil
}

// payment возвращает платёж по intent; nil, если платёж создан не платформой
func (uc *UseCase) payment(ctx context.Context, event *stripeconnect.WebhookEvent) (*domain.Payment, error) {
	payment, err := uc.paymentRepo.GetByIntentID(ctx, event.IntentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("StripeWebhook: no payment for intent=%s, event id=%s", event.IntentID, event.ID)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get payment: %v", ErrInternal, err)
	}
	return payment, nil
}

func (uc *UseCase) paymentSucceeded(ctx context.Context, event *stripeconnect.WebhookEvent) (*domain.NotificationEvent, error) {
	payment, err := uc.payment(ctx, event)
	if err != nil || payment == nil {
		return nil, err
	}
	if payment.Status != domain.PaymentRecordPending &&
		payment.Status != domain.PaymentRecordFailed &&
		payment.Status != domain.PaymentRecordCanceled {
		return nil, nil
	}

	if err := uc.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentRecordSucceeded); err != nil {
		return nil, fmt.Errorf("%w: update payment: %v", ErrInternal, err)
	}
	uc.observe(domain.PaymentRecordSucceeded)

	business, err := uc.businessRepo.GetByID(ctx, payment.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("%w: get business: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now()

	switch {
	case payment.BookingID != nil:
		booking, err := uc.bookingRepo.GetByID(ctx, *payment.BookingID)
		if err != nil {
			return nil, fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		// Время уже освобождено: деньги возвращаются, бронирование не восстанавливается
		if !booking.IsActive() {
			uc.logger.Warn("StripeWebhook: booking id=%d paid in status %s, refunding", booking.ID, booking.Status)
			if err := uc.refundLate(ctx, payment, fmt.Sprintf("refund-booking-%d", booking.ID)); err != nil {
				return nil, err
			}
			if err := uc.bookingRepo.SetPaymentStatus(ctx, booking.ID, domain.PaymentRefunded); err != nil {
				return nil, fmt.Errorf("%w: update booking: %v", ErrInternal, err)
			}
			return nil, nil
		}

		status := booking.Status
		if status == domain.StatusPending {
			status = domain.StatusConfirmed
		}
		if err := uc.bookingRepo.SetPayment(ctx, booking.ID, domain.PaymentPaid, status); err != nil {
			return nil, fmt.Errorf("%w: update booking: %v", ErrInternal, err)
		}
		booking.Status = status
		booking.PaymentStatus = domain.PaymentPaid

		uc.logger.Info("StripeWebhook: booking id=%d paid, status=%s", booking.ID, status)
		event := domain.BookingEvent(domain.EventPaymentSucceeded, booking, business.Name, now)
		return &event, nil

	case payment.OrderID != nil:
		order, err := uc.orderRepo.GetByID(ctx, *payment.OrderID)
		if err != nil {
			return nil, fmt.Errorf("%w: get order: %v", ErrInternal, err)
		}

		if order.Status == domain.OrderCancelled {
			uc.logger.Warn("StripeWebhook: order id=%d paid after cancellation, refunding", order.ID)
			if err := uc.refundLate(ctx, payment, fmt.Sprintf("refund-order-%d", order.ID)); err != nil {
				return nil, err
			}
			if err := uc.orderRepo.SetStatus(ctx, order.ID, order.Status, domain.PaymentRefunded); err != nil {
				return nil, fmt.Errorf("%w: update order: %v", ErrInternal, err)
			}
			return nil, nil
		}

		status := order.Status
		if status == domain.OrderPending {
			status = domain.OrderPaid
		}
		if err := uc.orderRepo.SetStatus(ctx, order.ID, status, domain.PaymentPaid); err != nil {
			return nil, fmt.Errorf("%w: update order: %v", ErrInternal, err)
		}
		order.Status = status
		order.PaymentStatus = domain.PaymentPaid

		uc.logger.Info("StripeWebhook: order id=%d paid", order.ID)
		event := domain.OrderEvent(domain.EventPaymentSucceeded, order, business.Name, now)
		return &event, nil
	}

	return nil, nil
}

// refundLate полностью возвращает оплату, пришедшую после отмены или истечения.
// Ошибка провайдера откатывает обработку события, Stripe повторит доставку
func (uc *UseCase) refundLate(ctx context.Context, payment *domain.Payment, key string) error {
	refund, err := uc.refunds.Refund(ctx, stripeconnect.RefundRequest{
		IntentID:       payment.ProviderIntentID,
		IdempotencyKey: key,
	})
	if err != nil {
		return fmt.Errorf("%w: refund: %v", ErrInternal, err)
	}

	amount := refund.AmountCents
	if amount == 0 {
		amount = payment.AmountCents
	}
	if err := uc.paymentRepo.SetRefunded(ctx, payment.ID, amount, domain.PaymentRecordRefunded); err != nil {
		return fmt.Errorf("%w: update payment: %v", ErrInternal, err)
	}
	uc.observe(domain.PaymentRecordRefunded)

	uc.logger.Info("StripeWebhook: payment id=%d refunded %d after late success", payment.ID, amount)
	return nil
}

// paymentFailed отмечает неудачную попытку. Бронирование остается ожидающим до истечения срока оплаты
func (uc *UseCase) paymentFailed(ctx context.Context, event *stripeconnect.WebhookEvent) error {
	payment, err := uc.payment(ctx, event)
	if err != nil || payment == nil {
		return err
	}
	if payment.Status != domain.PaymentRecordPending {
		return nil
	}

	if err := uc.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentRecordFailed); err != nil {
		return fmt.Errorf("%w: update payment: %v", ErrInternal, err)
	}
	uc.observe(domain.PaymentRecordFailed)
	uc.logger.Info("StripeWebhook: payment id=%d failed", payment.ID)
	return nil
}

func (uc *UseCase) chargeRefunded(ctx context.Context, event *stripeconnect.WebhookEvent) error {
	payment, err := uc.payment(ctx, event)
	if err != nil || payment == nil {
		return err
	}

	status := domain.PaymentRecordPartiallyRefunded
	if event.RefundedCents >= payment.AmountCents {
		status = domain.PaymentRecordRefunded
	}
	if err := uc.paymentRepo.SetRefunded(ctx, payment.ID, event.RefundedCents, status); err != nil {
		return fmt.Errorf("%w: update payment: %v", ErrInternal, err)
	}
	uc.observe(status)

	if status != domain.PaymentRecordRefunded {
		return nil
	}

	switch {
	case payment.BookingID != nil:
		if err := uc.bookingRepo.SetPaymentStatus(ctx, *payment.BookingID, domain.PaymentRefunded); err != nil {
			return fmt.Errorf("%w: update booking: %v", ErrInternal, err)
		}
	case payment.OrderID != nil:
		order, err := uc.orderRepo.GetByID(ctx, *payment.OrderID)
		if err != nil {
			return fmt.Errorf("%w: get order: %v", ErrInternal, err)
		}
		if err := uc.orderRepo.SetStatus(ctx, order.ID, order.Status, domain.PaymentRefunded); err != nil {
			return fmt.Errorf("%w: update order: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("StripeWebhook: payment id=%d refunded %d of %d", payment.ID, event.RefundedCents, payment.AmountCents)
	return nil
}

func (uc *UseCase) accountUpdated(ctx context.Context, event *stripeconnect.WebhookEvent) error {
	if event.Account == nil {
		return nil
	}

	if err := uc.businessRepo.UpdateStripeStatus(ctx, *event.Account); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("StripeWebhook: no business for account=%s", event.Account.AccountID)
			return nil
		}
		return fmt.Errorf("%w: update business: %v", ErrInternal, err)
	}

	uc.logger.Info("StripeWebhook: account=%s charges=%t, payouts=%t",
		event.Account.AccountID, event.Account.ChargesEnabled, event.Account.PayoutsEnabled)
	return nil
}

func (uc *UseCase) observe(status domain.PaymentRecordStatus) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.PaymentsProcessed.WithLabelValues(string(status)).Inc()
}
