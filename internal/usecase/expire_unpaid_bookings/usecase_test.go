package expire_unpaid_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	paymentRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/payment"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

type bookingRepoMock struct{ mock.Mock }

func (m *bookingRepoMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Booking)
	return res, args.Error(1)
}

func (m *bookingRepoMock) ListExpiredUnpaid(ctx context.Context, before time.Time, limit int) ([]*domain.Booking, error) {
	args := m.Called(ctx, before, limit)
	res, _ := args.Get(0).([]*domain.Booking)
	return res, args.Error(1)
}

func (m *bookingRepoMock) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type promotionRepoMock struct{ mock.Mock }

func (m *promotionRepoMock) ReleaseForBooking(ctx context.Context, bookingID int64) ([]int64, error) {
	args := m.Called(ctx, bookingID)
	res, _ := args.Get(0).([]int64)
	return res, args.Error(1)
}

type paymentRepoMock struct{ mock.Mock }

func (m *paymentRepoMock) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	res, _ := args.Get(0).(*domain.Payment)
	return res, args.Error(1)
}

type voiderMock struct{ mock.Mock }

func (m *voiderMock) Void(ctx context.Context, payment *domain.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

func newUseCase(bookings *bookingRepoMock, promotions *promotionRepoMock, payments *paymentRepoMock, voider *voiderMock) *UseCase {
	uc := NewUseCase(bookings, promotions, payments, voider, passthroughTx{}, 30*time.Minute, nil, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func intent(bookingID int64) *domain.Payment {
	return &domain.Payment{ID: 100 + bookingID, BookingID: &bookingID, ProviderIntentID: "pi_x", Status: domain.PaymentRecordPending}
}

func unpaid(id int64) *domain.Booking {
	return &domain.Booking{ID: id, Status: domain.StatusPending, PaymentStatus: domain.PaymentPending}
}

func TestExecute_ExpiresStillUnpaidBookings(t *testing.T) {
	bookings := &bookingRepoMock{}
	promotions := &promotionRepoMock{}

	bookings.On("ListExpiredUnpaid", mock.Anything, now.Add(-30*time.Minute), batchSize).
		Return([]*domain.Booking{unpaid(1), unpaid(2), unpaid(3)}, nil)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(unpaid(1), nil)
	// Оплата пришла между выборкой и транзакцией
	bookings.On("GetByID", mock.Anything, int64(2)).Return(&domain.Booking{ID: 2, Status: domain.StatusConfirmed, PaymentStatus: domain.PaymentPaid}, nil)
	bookings.On("GetByID", mock.Anything, int64(3)).Return(unpaid(3), nil)

	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.StatusExpired).Return(nil)
	bookings.On("UpdateStatus", mock.Anything, int64(3), domain.StatusExpired).Return(errors.New("db down"))
	promotions.On("ReleaseForBooking", mock.Anything, int64(1)).Return([]int64{4}, nil)

	payments := &paymentRepoMock{}
	voider := &voiderMock{}
	payment := intent(1)
	payments.On("GetByBookingID", mock.Anything, int64(1)).Return(payment, nil)
	voider.On("Void", mock.Anything, payment).Return(nil)

	expired, err := newUseCase(bookings, promotions, payments, voider).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, int64(2), mock.Anything)
	promotions.AssertNotCalled(t, "ReleaseForBooking", mock.Anything, int64(3))
	voider.AssertExpectations(t)
	voider.AssertNumberOfCalls(t, "Void", 1)
}

func TestExecute_VoidFailureStillExpires(t *testing.T) {
	bookings := &bookingRepoMock{}
	promotions := &promotionRepoMock{}
	payments := &paymentRepoMock{}
	voider := &voiderMock{}

	bookings.On("ListExpiredUnpaid", mock.Anything, mock.Anything, batchSize).Return([]*domain.Booking{unpaid(1), unpaid(2)}, nil)
	bookings.On("GetByID", mock.Anything, int64(1)).Return(unpaid(1), nil)
	bookings.On("GetByID", mock.Anything, int64(2)).Return(unpaid(2), nil)
	bookings.On("UpdateStatus", mock.Anything, mock.Anything, domain.StatusExpired).Return(nil)
	promotions.On("ReleaseForBooking", mock.Anything, mock.Anything).Return([]int64{}, nil)
	payments.On("GetByBookingID", mock.Anything, int64(1)).Return(intent(1), nil)
	payments.On("GetByBookingID", mock.Anything, int64(2)).Return(nil, paymentRepo.ErrPaymentNotFound)
	voider.On("Void", mock.Anything, mock.Anything).Return(errors.New("stripe unavailable"))

	expired, err := newUseCase(bookings, promotions, payments, voider).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	voider.AssertNumberOfCalls(t, "Void", 1)
}

func TestExecute_NothingToExpire(t *testing.T) {
	bookings := &bookingRepoMock{}
	bookings.On("ListExpiredUnpaid", mock.Anything, mock.Anything, batchSize).Return([]*domain.Booking{}, nil)

	expired, err := newUseCase(bookings, &promotionRepoMock{}, &paymentRepoMock{}, &voiderMock{}).Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestExecute_ListFailure(t *testing.T) {
	bookings := &bookingRepoMock{}
	bookings.On("ListExpiredUnpaid", mock.Anything, mock.Anything, batchSize).Return(nil, errors.New("db down"))

	_, err := newUseCase(bookings, &promotionRepoMock{}, &paymentRepoMock{}, &voiderMock{}).Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
