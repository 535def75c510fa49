package handle_stripe_webhook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/business"
	paymentRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/payment"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/stripeconnect"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
)

type parserMock struct{ mock.Mock }

func (m *parserMock) ParseWebhook(payload []byte, signature string) (*stripeconnect.WebhookEvent, error) {
	args := m.Called(payload, signature)
	res, _ := args.Get(0).(*stripeconnect.WebhookEvent)
	return res, args.Error(1)
}

type paymentRepoMock struct{ mock.Mock }

func (m *paymentRepoMock) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	args := m.Called(ctx, intentID)
	res, _ := args.Get(0).(*domain.Payment)
	return res, args.Error(1)
}

func (m *paymentRepoMock) UpdateStatus(ctx context.Context, id int64, status domain.PaymentRecordStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *paymentRepoMock) SetRefunded(ctx context.Context, id int64, refundedCents int64, status domain.PaymentRecordStatus) error {
	return m.Called(ctx, id, refundedCents, status).Error(0)
}

func (m *paymentRepoMock) MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	args := m.Called(ctx, eventID, eventType)
	return args.Bool(0), args.Error(1)
}

type bookingRepoMock struct{ mock.Mock }

func (m *bookingRepoMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Booking)
	return res, args.Error(1)
}

func (m *bookingRepoMock) SetPayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, status domain.BookingStatus) error {
	return m.Called(ctx, id, paymentStatus, status).Error(0)
}

func (m *bookingRepoMock) SetPaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error {
	return m.Called(ctx, id, paymentStatus).Error(0)
}

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Order)
	return res, args.Error(1)
}

func (m *orderRepoMock) SetStatus(ctx context.Context, id int64, status domain.OrderStatus, paymentStatus domain.PaymentStatus) error {
	return m.Called(ctx, id, status, paymentStatus).Error(0)
}

type businessRepoMock struct{ mock.Mock }

func (m *businessRepoMock) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Business)
	return res, args.Error(1)
}

func (m *businessRepoMock) UpdateStripeStatus(ctx context.Context, status domain.ConnectedAccountStatus) error {
	return m.Called(ctx, status).Error(0)
}

type refundProviderMock struct{ mock.Mock }

func (m *refundProviderMock) Refund(ctx context.Context, req stripeconnect.RefundRequest) (*stripeconnect.Refund, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*stripeconnect.Refund)
	return res, args.Error(1)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, event domain.NotificationEvent) error {
	return m.Called(ctx, event).Error(0)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	parser     *parserMock
	payments   *paymentRepoMock
	bookings   *bookingRepoMock
	orders     *orderRepoMock
	businesses *businessRepoMock
	refunds    *refundProviderMock
	publisher  *publisherMock
	uc         *UseCase
}

var payload = []byte(`{}`)

func newFixture(event *stripeconnect.WebhookEvent) *fixture {
	f := &fixture{
		parser:     &parserMock{},
		payments:   &paymentRepoMock{},
		bookings:   &bookingRepoMock{},
		orders:     &orderRepoMock{},
		businesses: &businessRepoMock{},
		refunds:    &refundProviderMock{},
		publisher:  &publisherMock{},
	}
	f.uc = NewUseCase(f.parser, f.payments, f.bookings, f.orders, f.businesses, f.refunds, f.publisher, passthroughTx{}, nil, logger.NewNop())

	f.parser.On("ParseWebhook", payload, "sig").Return(event, nil)
	if event != nil {
		f.payments.On("MarkEventProcessed", mock.Anything, event.ID, event.Type).Return(true, nil)
	}
	f.businesses.On("GetByID", mock.Anything, int64(10)).Return(&domain.Business{ID: 10, Name: "Glow"}, nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	return f
}

func bookingPayment(status domain.PaymentRecordStatus) *domain.Payment {
	return &domain.Payment{ID: 9, BusinessID: 10, CustomerID: 5, BookingID: ptr.Ptr(int64(50)), AmountCents: 5000, ProviderIntentID: "pi_1", Status: status}
}

func TestExecute_PaymentSucceededConfirmsBooking(t *testing.T) {
	f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_1", Type: stripeconnect.EventPaymentSucceeded, IntentID: "pi_1"})
	f.payments.On("GetByIntentID", mock.Anything, "pi_1").Return(bookingPayment(domain.PaymentRecordPending), nil)
	f.payments.On("UpdateStatus", mock.Anything, int64(9), domain.PaymentRecordSucceeded).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(50)).Return(&domain.Booking{
		ID: 50, BusinessID: 10, CustomerID: 5, Status: domain.StatusPending, PaymentStatus: domain.PaymentPending,
		BookingDate: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
	}, nil)
	f.bookings.On("SetPayment", mock.Anything, int64(50), domain.PaymentPaid, domain.StatusConfirmed).Return(nil)

	require.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
	f.bookings.AssertExpectations(t)
	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e domain.NotificationEvent) bool {
		return e.Type == domain.EventPaymentSucceeded && *e.BookingID == 50 && e.BusinessName == "Glow"
	}))
}

func TestExecute_PaymentSucceededForInactiveBookingRefunds(t *testing.T) {
	tests := []struct {
		name          string
		bookingStatus domain.BookingStatus
		paymentStatus domain.PaymentRecordStatus
	}{
		{"expired with pending intent", domain.StatusExpired, domain.PaymentRecordPending},
		{"cancelled by customer after void failed", domain.StatusCancelledByUser, domain.PaymentRecordPending},
		{"cancelled with voided intent", domain.StatusCancelledByCompany, domain.PaymentRecordCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_2", Type: stripeconnect.EventPaymentSucceeded, IntentID: "pi_1"})
			f.payments.On("GetByIntentID", mock.Anything, "pi_1").Return(bookingPayment(tt.paymentStatus), nil)
			f.payments.On("UpdateStatus", mock.Anything, int64(9), domain.PaymentRecordSucceeded).Return(nil)
			f.payments.On("SetRefunded", mock.Anything, int64(9), int64(5000), domain.PaymentRecordRefunded).Return(nil)
			f.bookings.On("GetByID", mock.Anything, int64(50)).Return(&domain.Booking{ID: 50, BusinessID: 10, Status: tt.bookingStatus}, nil)
			f.bookings.On("SetPaymentStatus", mock.Anything, int64(50), domain.PaymentRefunded).Return(nil)
			f.refunds.On("Refund", mock.Anything, stripeconnect.RefundRequest{IntentID: "pi_1", IdempotencyKey: "refund-booking-50"}).
				Return(&stripeconnect.Refund{ID: "re_1", AmountCents: 5000, Status: "succeeded"}, nil)

			require.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
			f.refunds.AssertExpectations(t)
			f.payments.AssertExpectations(t)
			f.bookings.AssertNotCalled(t, "SetPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_LateRefundFailureIsRetried(t *testing.T) {
	f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_5", Type: stripeconnect.EventPaymentSucceeded, IntentID: "pi_1"})
	f.payments.On("GetByIntentID", mock.Anything, "pi_1").Return(bookingPayment(domain.PaymentRecordPending), nil)
	f.payments.On("UpdateStatus", mock.Anything, int64(9), domain.PaymentRecordSucceeded).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(50)).Return(&domain.Booking{ID: 50, BusinessID: 10, Status: domain.StatusExpired}, nil)
	f.refunds.On("Refund", mock.Anything, mock.Anything).Return(nil, errors.New("stripe unavailable"))

	err := f.uc.Execute(context.Background(), payload, "sig")
	assert.ErrorIs(t, err, ErrInternal)
	f.bookings.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_PaymentSucceededForCancelledOrderRefunds(t *testing.T) {
	f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_6", Type: stripeconnect.EventPaymentSucceeded, IntentID: "pi_2"})
	f.payments.On("GetByIntentID", mock.Anything, "pi_2").Return(&domain.Payment{ID: 11, BusinessID: 10, OrderID: ptr.Ptr(int64(300)), AmountCents: 2500, ProviderIntentID: "pi_2", Status: domain.PaymentRecordPending}, nil)
	f.payments.On("UpdateStatus", mock.Anything, int64(11), domain.PaymentRecordSucceeded).Return(nil)
	f.payments.On("SetRefunded", mock.Anything, int64(11), int64(2500), domain.PaymentRecordRefunded).Return(nil)
	f.orders.On("GetByID", mock.Anything, int64(300)).Return(&domain.Order{ID: 300, BusinessID: 10, Status: domain.OrderCancelled}, nil)
	f.orders.On("SetStatus", mock.Anything, int64(300), domain.OrderCancelled, domain.PaymentRefunded).Return(nil)
	f.refunds.On("Refund", mock.Anything, stripeconnect.RefundRequest{IntentID: "pi_2", IdempotencyKey: "refund-order-300"}).
		Return(&stripeconnect.Refund{ID: "re_2", Status: "succeeded"}, nil)

	require.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
	f.orders.AssertExpectations(t)
	f.payments.AssertExpectations(t)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestExecute_PaymentSucceededMarksOrderPaid(t *testing.T) {
	f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_3", Type: stripeconnect.EventPaymentSucceeded, IntentID: "pi_2"})
	f.payments.On("GetByIntentID", mock.Anything, "pi_2").Return(&domain.Payment{ID: 11, BusinessID: 10, OrderID: ptr.Ptr(int64(300)), Status: domain.PaymentRecordPending}, nil)
	f.payments.On("UpdateStatus", mock.Anything, int64(11), domain.PaymentRecordSucceeded).Return(nil)
	f.orders.On("GetByID", mock.Anything, int64(300)).Return(&domain.Order{ID: 300, BusinessID: 10, Status: domain.OrderPending}, nil)
	f.orders.On("SetStatus", mock.Anything, int64(300), domain.OrderPaid, domain.PaymentPaid).Return(nil)

	require.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
	f.orders.AssertExpectations(t)
}

func TestExecute_DuplicateEventIgnored(t *testing.T) {
	event := &stripeconnect.WebhookEvent{ID: "evt_1", Type: stripeconnect.EventPaymentSucceeded, IntentID: "pi_1"}
	f := newFixture(nil)
	f.parser.ExpectedCalls = nil
	f.parser.On("ParseWebhook", payload, "sig").Return(event, nil)
	f.payments.On("MarkEventProcessed", mock.Anything, "evt_1", event.Type).Return(false, nil)

	require.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
	f.payments.AssertNotCalled(t, "GetByIntentID", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestExecute_PaymentFailed(t *testing.T) {
	f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_4", Type: stripeconnect.EventPaymentFailed, IntentID: "pi_1"})
	f.payments.On("GetByIntentID", mock.Anything, "pi_1").Return(bookingPayment(domain.PaymentRecordPending), nil)
	f.payments.On("UpdateStatus", mock.Anything, int64(9), domain.PaymentRecordFailed).Return(nil)

	require.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
	f.payments.AssertExpectations(t)
	f.bookings.AssertNotCalled(t, "SetPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ChargeRefunded(t *testing.T) {
	t.Run("full refund", func(t *testing.T) {
		f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_5", Type: stripeconnect.EventChargeRefunded, IntentID: "pi_1", RefundedCents: 5000})
		f.payments.On("GetByIntentID", mock.Anything, "pi_1").Return(bookingPayment(domain.PaymentRecordSucceeded), nil)
		f.payments.On("SetRefunded", mock.Anything, int64(9), int64(5000), domain.PaymentRecordRefunded).Return(nil)
		f.bookings.On("SetPaymentStatus", mock.Anything, int64(50), domain.PaymentRefunded).Return(nil)

		require.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
		f.bookings.AssertExpectations(t)
	})

	t.Run("partial refund", func(t *testing.T) {
		f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_6", Type: stripeconnect.EventChargeRefunded, IntentID: "pi_1", RefundedCents: 1000})
		f.payments.On("GetByIntentID", mock.Anything, "pi_1").Return(bookingPayment(domain.PaymentRecordSucceeded), nil)
		f.payments.On("SetRefunded", mock.Anything, int64(9), int64(1000), domain.PaymentRecordPartiallyRefunded).Return(nil)

		require.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
		f.bookings.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExecute_AccountUpdated(t *testing.T) {
	status := domain.ConnectedAccountStatus{AccountID: "acct_1", ChargesEnabled: true, PayoutsEnabled: true}
	f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_7", Type: stripeconnect.EventAccountUpdated, Account: &status})
	f.businesses.On("UpdateStripeStatus", mock.Anything, status).Return(nil)

	require.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
	f.businesses.AssertExpectations(t)
}

func TestExecute_AccountOfUnknownBusiness(t *testing.T) {
	status := domain.ConnectedAccountStatus{AccountID: "acct_x"}
	f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_8", Type: stripeconnect.EventAccountUpdated, Account: &status})
	f.businesses.On("UpdateStripeStatus", mock.Anything, status).Return(businessRepo.ErrBusinessNotFound)

	assert.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
}

func TestExecute_UnknownIntentAcknowledged(t *testing.T) {
	f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_9", Type: stripeconnect.EventPaymentSucceeded, IntentID: "pi_other"})
	f.payments.On("GetByIntentID", mock.Anything, "pi_other").Return(nil, paymentRepo.ErrPaymentNotFound)

	assert.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
}

func TestExecute_UnsupportedEventIgnored(t *testing.T) {
	f := newFixture(nil)
	f.parser.ExpectedCalls = nil
	f.parser.On("ParseWebhook", payload, "sig").Return(&stripeconnect.WebhookEvent{ID: "evt_10", Type: "customer.created"}, nil)

	assert.NoError(t, f.uc.Execute(context.Background(), payload, "sig"))
	f.payments.AssertNotCalled(t, "MarkEventProcessed", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ParseErrors(t *testing.T) {
	f := newFixture(nil)
	f.parser.ExpectedCalls = nil
	f.parser.On("ParseWebhook", payload, "bad").Return(nil, stripeconnect.ErrInvalidSignature)
	f.parser.On("ParseWebhook", payload, "none").Return(nil, stripeconnect.ErrNotConfigured)

	assert.ErrorIs(t, f.uc.Execute(context.Background(), payload, "bad"), ErrInvalidWebhook)
	assert.ErrorIs(t, f.uc.Execute(context.Background(), payload, "none"), ErrNotConfigured)
}

func TestExecute_StorageErrorIsRetryable(t *testing.T) {
	f := newFixture(&stripeconnect.WebhookEvent{ID: "evt_11", Type: stripeconnect.EventPaymentFailed, IntentID: "pi_1"})
	f.payments.On("GetByIntentID", mock.Anything, "pi_1").Return(nil, errors.New("db down"))

	assert.ErrorIs(t, f.uc.Execute(context.Background(), payload, "sig"), ErrInternal)
}
