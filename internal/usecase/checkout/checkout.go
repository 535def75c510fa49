// Package checkout создает онлайн-оплату с разделением комиссий через Stripe Connect
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/stripeconnect"
)

var (
	// ErrNotAvailable бизнес не принимает онлайн-оплату
	ErrNotAvailable = errors.New("checkout: online payments are not available for this business")

	// ErrFees сумма не покрывает комиссии
	ErrFees = errors.New("checkout: amount does not cover fees")

	// ErrProvider ошибка платёжного провайдера
	ErrProvider = errors.New("checkout: payment provider error")

	// ErrStorage ошибка сохранения платежа
	ErrStorage = errors.New("checkout: failed to store payment")
)

// PaymentProvider создает и отменяет PaymentIntent
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, req stripeconnect.PaymentIntentRequest) (*domain.PaymentIntent, error)
	CancelPaymentIntent(ctx context.Context, intentID string) error
}

// PaymentRepository хранилище платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentRecordStatus) error
}

// Target за что платит клиент
// Ровно одно из BookingID / OrderID задано
type Target struct {
	Business   *domain.Business
	CustomerID int64
	BookingID  *int64
	OrderID    *int64
	TotalCents int64
	Currency   string
}

// Checkout считает комиссии, создает PaymentIntent и сохраняет платёж
type Checkout struct {
	provider PaymentProvider
	payments PaymentRepository
	policy   domain.FeePolicy
	newKey   func() string
}

// New создает Checkout
func New(provider PaymentProvider, payments PaymentRepository, policy domain.FeePolicy) *Checkout {
	return &Checkout{
		provider: provider,
		payments: payments,
		policy:   policy,
		newKey:   uuid.NewString,
	}
}

// Start создает destination charge: платформа удерживает application fee,
// остаток переводится на connected account бизнеса
func (c *Checkout) Start(ctx context.Context, t Target) (*domain.PaymentIntent, *domain.Payment, error) {
	if !t.Business.CanAcceptOnlinePayments() {
		return nil, nil, ErrNotAvailable
	}

	split, err := domain.SplitFees(t.TotalCents, c.policy)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFees, err)
	}

	metadata := map[string]string{
		stripeconnect.MetadataBusinessID: strconv.FormatInt(t.Business.ID, 10),
	}
	key := "payment"
	if t.BookingID != nil {
		metadata[stripeconnect.MetadataBookingID] = strconv.FormatInt(*t.BookingID, 10)
		key += "-booking-" + strconv.FormatInt(*t.BookingID, 10)
	}
	if t.OrderID != nil {
		metadata[stripeconnect.MetadataOrderID] = strconv.FormatInt(*t.OrderID, 10)
		key += "-order-" + strconv.FormatInt(*t.OrderID, 10)
	}
	// id из последовательности БД повторяется после пересоздания базы
	key += "-" + c.newKey()

	intent, err := c.provider.CreatePaymentIntent(ctx, stripeconnect.PaymentIntentRequest{
		AmountCents:         split.TotalCents,
		Currency:            strings.ToLower(t.Currency),
		ApplicationFeeCents: split.ApplicationFeeCents(),
		DestinationAccount:  *t.Business.StripeAccountID,
		IdempotencyKey:      key,
		Metadata:            metadata,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	payment := &domain.Payment{
		BusinessID:       t.Business.ID,
		CustomerID:       t.CustomerID,
		BookingID:        t.BookingID,
		OrderID:          t.OrderID,
		Currency:         t.Currency,
		ProviderIntentID: intent.ID,
		Status:           domain.PaymentRecordPending,
	}
	payment.ApplyFees(split)

	created, err := c.payments.Create(ctx, payment)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return intent, created, nil
}

// Void отменяет неоплаченный PaymentIntent, чтобы клиент уже не смог по нему заплатить.
// После неудачной попытки intent тоже можно оплатить повторно, поэтому failed отменяется наравне с pending
func (c *Checkout) Void(ctx context.Context, payment *domain.Payment) error {
	if payment.Status != domain.PaymentRecordPending && payment.Status != domain.PaymentRecordFailed {
		return nil
	}

	if err := c.provider.CancelPaymentIntent(ctx, payment.ProviderIntentID); err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if err := c.payments.UpdateStatus(ctx, payment.ID, domain.PaymentRecordCanceled); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	payment.Status = domain.PaymentRecordCanceled
	return nil
}
