package business_analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

type analyticsRepoMock struct{ mock.Mock }

func (m *analyticsRepoMock) BookingsByStatus(ctx context.Context, businessID int64, from, to time.Time) (map[domain.BookingStatus]int, error) {
	args := m.Called(ctx, businessID, from, to)
	res, _ := args.Get(0).(map[domain.BookingStatus]int)
	return res, args.Error(1)
}

func (m *analyticsRepoMock) PaymentTotals(ctx context.Context, businessID int64, from, to time.Time) (*domain.PaymentTotals, error) {
	args := m.Called(ctx, businessID, from, to)
	res, _ := args.Get(0).(*domain.PaymentTotals)
	return res, args.Error(1)
}

func (m *analyticsRepoMock) DiscountsTotal(ctx context.Context, businessID int64, from, to time.Time) (int64, error) {
	args := m.Called(ctx, businessID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *analyticsRepoMock) OrderRevenue(ctx context.Context, businessID int64, from, to time.Time) (int64, error) {
	args := m.Called(ctx, businessID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *analyticsRepoMock) CustomerCounts(ctx context.Context, businessID int64, from, to time.Time) (*domain.CustomerCounts, error) {
	args := m.Called(ctx, businessID, from, to)
	res, _ := args.Get(0).(*domain.CustomerCounts)
	return res, args.Error(1)
}

func (m *analyticsRepoMock) ReviewStats(ctx context.Context, businessID int64, from, to time.Time) (float64, int, error) {
	args := m.Called(ctx, businessID, from, to)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *analyticsRepoMock) TopServices(ctx context.Context, businessID int64, from, to time.Time, limit int) ([]domain.ServiceStat, error) {
	args := m.Called(ctx, businessID, from, to, limit)
	res, _ := args.Get(0).([]domain.ServiceStat)
	return res, args.Error(1)
}

func (m *analyticsRepoMock) Daily(ctx context.Context, businessID int64, from, to time.Time) ([]domain.DailyStat, error) {
	args := m.Called(ctx, businessID, from, to)
	res, _ := args.Get(0).([]domain.DailyStat)
	return res, args.Error(1)
}

type businessRepoMock struct{ mock.Mock }

func (m *businessRepoMock) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Business)
	return res, args.Error(1)
}

type readOnlyTx struct{}

func (readOnlyTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	from = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
)

func newBusinesses() *businessRepoMock {
	businesses := &businessRepoMock{}
	businesses.On("GetByID", mock.Anything, int64(10)).Return(&domain.Business{ID: 10, OwnerID: 1}, nil)
	return businesses
}

func TestExecute_CollectsEverything(t *testing.T) {
	repo := &analyticsRepoMock{}
	repo.On("BookingsByStatus", mock.Anything, int64(10), from, to).Return(map[domain.BookingStatus]int{
		domain.StatusCompleted: 12, domain.StatusCancelledByUser: 2,
	}, nil)
	repo.On("PaymentTotals", mock.Anything, int64(10), from, to).Return(&domain.PaymentTotals{
		GrossCents: 60000, PlatformFeeCents: 6000, ProcessorFeeCents: 2100, PayoutCents: 51900,
	}, nil)
	repo.On("DiscountsTotal", mock.Anything, int64(10), from, to).Return(int64(1500), nil)
	repo.On("OrderRevenue", mock.Anything, int64(10), from, to).Return(int64(8000), nil)
	repo.On("CustomerCounts", mock.Anything, int64(10), from, to).Return(&domain.CustomerCounts{Unique: 9, Returning: 3}, nil)
	repo.On("ReviewStats", mock.Anything, int64(10), from, to).Return(4.5, 6, nil)
	repo.On("TopServices", mock.Anything, int64(10), from, to, domain.AnalyticsTopServicesLimit).Return([]domain.ServiceStat{
		{ServiceID: 3, ServiceName: "Haircut", Bookings: 10, RevenueCents: 50000},
	}, nil)
	repo.On("Daily", mock.Anything, int64(10), from, to).Return([]domain.DailyStat{}, nil)

	uc := NewUseCase(repo, newBusinesses(), readOnlyTx{}, logger.NewNop())
	result, err := uc.Execute(context.Background(), &Request{
		BusinessID: 10, UserID: 1, From: from.Add(15 * time.Hour), To: to,
	})
	require.NoError(t, err)

	assert.Equal(t, 12, result.CompletedBookings)
	assert.Equal(t, int64(60000), result.GrossRevenueCents)
	assert.Equal(t, int64(51900), result.PayoutsCents)
	assert.Equal(t, int64(1500), result.DiscountsCents)
	assert.Equal(t, int64(8000), result.OrderRevenueCents)
	assert.Equal(t, 3, result.ReturningCustomers)
	assert.Equal(t, 4.5, result.AverageRating)
	assert.Equal(t, 6, result.ReviewCount)
	require.Len(t, result.TopServices, 1)
	repo.AssertExpectations(t)
}

func TestExecute_RangeValidation(t *testing.T) {
	uc := NewUseCase(&analyticsRepoMock{}, newBusinesses(), readOnlyTx{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 10, UserID: 1, From: to, To: from})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 10, UserID: 1, From: from, To: from.AddDate(0, 0, MaxRangeDays)})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 10, UserID: 1})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_ManagerOnly(t *testing.T) {
	uc := NewUseCase(&analyticsRepoMock{}, newBusinesses(), readOnlyTx{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 10, UserID: 2, From: from, To: to})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_StorageError(t *testing.T) {
	repo := &analyticsRepoMock{}
	repo.On("BookingsByStatus", mock.Anything, int64(10), from, to).Return(nil, errors.New("db down"))

	uc := NewUseCase(repo, newBusinesses(), readOnlyTx{}, logger.NewNop())
	_, err := uc.Execute(context.Background(), &Request{BusinessID: 10, UserID: 1, From: from, To: to})
	assert.ErrorIs(t, err, ErrInternal)
}
