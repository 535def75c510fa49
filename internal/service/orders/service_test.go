package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	orderRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/order"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Order)
	return res, args.Error(1)
}

func (m *orderRepoMock) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	args := m.Called(ctx, customerID)
	res, _ := args.Get(0).([]*domain.Order)
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

func newService() (*Service, *orderRepoMock) {
	orders := &orderRepoMock{}
	businesses := &businessRepoMock{}
	businesses.On("GetByID", mock.Anything, int64(10)).Return(&domain.Business{ID: 10, OwnerID: 1, IsActive: true}, nil)
	return NewService(orders, businesses, logger.NewNop()), orders
}

func order(status domain.OrderStatus, payment domain.PaymentStatus) *domain.Order {
	return &domain.Order{
		ID: 7, BusinessID: 10, CustomerID: 5, Status: status, PaymentStatus: payment,
		Items: []domain.OrderItem{{ProductID: 1, ProductName: "Oil", UnitPriceCents: 500, Quantity: 2}},
	}
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{"customer", 5, nil},
		{"manager", 1, nil},
		{"stranger", 9, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders := newService()
			orders.On("GetByID", mock.Anything, int64(7)).Return(order(domain.OrderPending, domain.PaymentPending), nil)

			resp, err := svc.GetByID(context.Background(), 7, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1000), resp.Items[0].TotalCents)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, orders := newService()
	orders.On("GetByID", mock.Anything, int64(7)).Return(nil, orderRepo.ErrOrderNotFound)

	_, err := svc.GetByID(context.Background(), 7, 5)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestFulfill(t *testing.T) {
	t.Run("pay at pickup", func(t *testing.T) {
		svc, orders := newService()
		orders.On("GetByID", mock.Anything, int64(7)).Return(order(domain.OrderPending, domain.PaymentNotRequired), nil)
		orders.On("SetStatus", mock.Anything, int64(7), domain.OrderFulfilled, domain.PaymentPaid).Return(nil)

		resp, err := svc.Fulfill(context.Background(), 7, 1)
		require.NoError(t, err)
		assert.Equal(t, string(domain.OrderFulfilled), resp.Status)
	})

	t.Run("awaiting online payment", func(t *testing.T) {
		svc, orders := newService()
		orders.On("GetByID", mock.Anything, int64(7)).Return(order(domain.OrderPending, domain.PaymentPending), nil)

		_, err := svc.Fulfill(context.Background(), 7, 1)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("customer cannot fulfill", func(t *testing.T) {
		svc, orders := newService()
		orders.On("GetByID", mock.Anything, int64(7)).Return(order(domain.OrderPaid, domain.PaymentPaid), nil)

		_, err := svc.Fulfill(context.Background(), 7, 5)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
