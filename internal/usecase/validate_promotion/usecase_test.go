package validate_promotion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	promotionRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/promotion"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
)

type promotionRepoMock struct{ mock.Mock }

func (m *promotionRepoMock) GetByCode(ctx context.Context, businessID int64, code string) (*domain.Promotion, error) {
	args := m.Called(ctx, businessID, code)
	res, _ := args.Get(0).(*domain.Promotion)
	return res, args.Error(1)
}

func (m *promotionRepoMock) CustomerUsage(ctx context.Context, promotionID, businessID, customerID int64) (domain.CustomerUsage, error) {
	args := m.Called(ctx, promotionID, businessID, customerID)
	return args.Get(0).(domain.CustomerUsage), args.Error(1)
}

type serviceRepoMock struct{ mock.Mock }

func (m *serviceRepoMock) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	args := m.Called(ctx, ids)
	res, _ := args.Get(0).([]*domain.Service)
	return res, args.Error(1)
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	args := m.Called(ctx, ids)
	res, _ := args.Get(0).([]*domain.Product)
	return res, args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newUseCase(promotions *promotionRepoMock) *UseCase {
	services := &serviceRepoMock{}
	services.On("ListByIDs", mock.Anything, []int64{3}).Return([]*domain.Service{
		{ID: 3, BusinessID: 10, PriceCents: 6000, IsActive: true},
	}, nil)
	products := &productRepoMock{}
	products.On("ListByIDs", mock.Anything, []int64{7}).Return([]*domain.Product{
		{ID: 7, BusinessID: 10, PriceCents: 2000, IsActive: true},
	}, nil)

	uc := NewUseCase(promotions, services, products, logger.NewNop())
	uc.timeProvider = fixedTime{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_BundleDiscount(t *testing.T) {
	promotions := &promotionRepoMock{}
	promotions.On("GetByCode", mock.Anything, int64(10), "combo").Return(&domain.Promotion{
		ID: 4, BusinessID: 10, Code: ptr.Ptr("COMBO"), Name: "Cut + care", Type: domain.PromotionBundle, Scope: domain.ScopeOrder,
		Value: 25, IsActive: true,
		BundleItems: []domain.BundleItem{{Kind: domain.ItemService, ItemID: 3}, {Kind: domain.ItemProduct, ItemID: 7}},
	}, nil)
	promotions.On("CustomerUsage", mock.Anything, int64(4), int64(10), int64(5)).Return(domain.CustomerUsage{}, nil)

	resp, err := newUseCase(promotions).Execute(context.Background(), &Request{
		BusinessID: 10, CustomerID: 5, Code: "combo",
		Items: []CartItem{{Kind: domain.ItemService, ItemID: 3, Quantity: 1}, {Kind: domain.ItemProduct, ItemID: 7, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "COMBO", resp.Code)
	assert.Equal(t, int64(8000), resp.SubtotalCents)
	assert.Equal(t, int64(2000), resp.DiscountCents)
	assert.Equal(t, int64(6000), resp.TotalCents)
}

func TestExecute_BelowMinimum(t *testing.T) {
	promotions := &promotionRepoMock{}
	promotions.On("GetByCode", mock.Anything, int64(10), "BIG").Return(&domain.Promotion{
		ID: 5, BusinessID: 10, Name: "Big spender", Type: domain.PromotionPercentage, Scope: domain.ScopeOrder,
		Value: 10, MinOrderCents: 10000, IsActive: true,
	}, nil)
	promotions.On("CustomerUsage", mock.Anything, int64(5), int64(10), int64(5)).Return(domain.CustomerUsage{}, nil)

	_, err := newUseCase(promotions).Execute(context.Background(), &Request{
		BusinessID: 10, CustomerID: 5, Code: "BIG",
		Items: []CartItem{{Kind: domain.ItemService, ItemID: 3, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrPromotionRejected)
	assert.Contains(t, err.Error(), "minimum")
}

func TestExecute_UnknownCode(t *testing.T) {
	promotions := &promotionRepoMock{}
	promotions.On("GetByCode", mock.Anything, int64(10), "NOPE").Return(nil, promotionRepo.ErrPromotionNotFound)

	_, err := newUseCase(promotions).Execute(context.Background(), &Request{
		BusinessID: 10, CustomerID: 5, Code: "NOPE",
		Items: []CartItem{{Kind: domain.ItemProduct, ItemID: 7, Quantity: 2}},
	})
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func TestExecute_ItemOfAnotherBusiness(t *testing.T) {
	services := &serviceRepoMock{}
	services.On("ListByIDs", mock.Anything, []int64{9}).Return([]*domain.Service{{ID: 9, BusinessID: 11, IsActive: true}}, nil)
	uc := NewUseCase(&promotionRepoMock{}, services, &productRepoMock{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 10, CustomerID: 5, Code: "ANY",
		Items: []CartItem{{Kind: domain.ItemService, ItemID: 9, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&promotionRepoMock{}, &serviceRepoMock{}, &productRepoMock{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 10, Code: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 10, Code: "X", Items: []CartItem{{Kind: "gift", ItemID: 1, Quantity: 1}}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_QuantityAboveLimit(t *testing.T) {
	promotions := &promotionRepoMock{}
	products := &productRepoMock{}
	uc := NewUseCase(promotions, &serviceRepoMock{}, products, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 10,
		Code:       "BOGO",
		Items:      []CartItem{{Kind: domain.ItemProduct, ItemID: 1, Quantity: 50_000_000}},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	promotions.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything)
}
