package promo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	promotionRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/promotion"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
)

type repoMock struct{ mock.Mock }

func (m *repoMock) GetByCode(ctx context.Context, businessID int64, code string) (*domain.Promotion, error) {
	args := m.Called(ctx, businessID, code)
	res, _ := args.Get(0).(*domain.Promotion)
	return res, args.Error(1)
}

func (m *repoMock) CustomerUsage(ctx context.Context, promotionID, businessID, customerID int64) (domain.CustomerUsage, error) {
	args := m.Called(ctx, promotionID, businessID, customerID)
	return args.Get(0).(domain.CustomerUsage), args.Error(1)
}

func (m *repoMock) IncrementUsage(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) CreateRedemption(ctx context.Context, red *domain.Redemption) (*domain.Redemption, error) {
	args := m.Called(ctx, red)
	res, _ := args.Get(0).(*domain.Redemption)
	return res, args.Error(1)
}

var now = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

func cart() domain.Cart {
	return domain.Cart{Lines: []domain.CartLine{{Kind: domain.ItemService, ItemID: 3, UnitPriceCents: 5000, Quantity: 1}}}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("percentage discount", func(t *testing.T) {
		repo := &repoMock{}
		repo.On("GetByCode", ctx, int64(10), "fall").Return(&domain.Promotion{
			ID: 4, BusinessID: 10, Type: domain.PromotionPercentage, Scope: domain.ScopeService, Value: 20, IsActive: true,
		}, nil)
		repo.On("CustomerUsage", ctx, int64(4), int64(10), int64(5)).Return(domain.CustomerUsage{}, nil)

		applied, err := Apply(ctx, repo, 10, 5, "fall", cart(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), applied.Result.DiscountCents)
		assert.Equal(t, int64(4000), applied.Result.TotalCents)
	})

	t.Run("unknown code", func(t *testing.T) {
		repo := &repoMock{}
		repo.On("GetByCode", ctx, int64(10), "nope").Return(nil, promotionRepo.ErrPromotionNotFound)

		_, err := Apply(ctx, repo, 10, 5, "nope", cart(), now)
		assert.ErrorIs(t, err, ErrCodeNotFound)
		assert.True(t, IsRejection(err))
	})

	t.Run("per customer limit", func(t *testing.T) {
		repo := &repoMock{}
		repo.On("GetByCode", ctx, int64(10), "once").Return(&domain.Promotion{
			ID: 4, Type: domain.PromotionFixedAmount, Scope: domain.ScopeOrder, Value: 500, IsActive: true,
			PerCustomerLimit: ptr.Ptr(1),
		}, nil)
		repo.On("CustomerUsage", ctx, int64(4), int64(10), int64(5)).Return(domain.CustomerUsage{Redemptions: 1}, nil)

		_, err := Apply(ctx, repo, 10, 5, "once", cart(), now)
		assert.ErrorIs(t, err, domain.ErrPromotionCustomerLimitReached)
		assert.Equal(t, "вы уже использовали эту промоакцию", Reason(err))
	})

	t.Run("storage failure is not a rejection", func(t *testing.T) {
		repo := &repoMock{}
		repo.On("GetByCode", ctx, int64(10), "fall").Return(nil, errors.New("connection reset"))

		_, err := Apply(ctx, repo, 10, 5, "fall", cart(), now)
		assert.ErrorIs(t, err, ErrLookup)
		assert.False(t, IsRejection(err))
	})
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{}
	applied := &Applied{
		Promotion: &domain.Promotion{ID: 4},
		Result:    &domain.DiscountResult{DiscountCents: 1000},
	}

	repo.On("IncrementUsage", ctx, int64(4)).Return(nil)
	repo.On("CreateRedemption", ctx, mock.MatchedBy(func(r *domain.Redemption) bool {
		return r.PromotionID == 4 && r.CustomerID == 5 && *r.BookingID == 7 && r.OrderID == nil && r.DiscountCents == 1000
	})).Return(&domain.Redemption{ID: 1}, nil)

	require.NoError(t, Redeem(ctx, repo, applied, 5, ptr.Ptr(int64(7)), nil))
	repo.AssertExpectations(t)
}
