package businesses

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/business"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/businesses/models"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
)

type businessRepoMock struct{ mock.Mock }

func (m *businessRepoMock) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	args := m.Called(ctx, b)
	res, _ := args.Get(0).(*domain.Business)
	return res, args.Error(1)
}

func (m *businessRepoMock) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Business)
	return res, args.Error(1)
}

func (m *businessRepoMock) Search(ctx context.Context, filter domain.BusinessSearchFilter) ([]*domain.Business, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]*domain.Business)
	return res, args.Error(1)
}

func (m *businessRepoMock) Update(ctx context.Context, b *domain.Business) error {
	return m.Called(ctx, b).Error(0)
}

type cdn struct{}

func (cdn) PublicURL(key string) string { return "https://cdn.test/" + key }

func validCreateRequest() *models.CreateBusinessRequest {
	return &models.CreateBusinessRequest{
		UserID:   1,
		Name:     "Glow Studio",
		Category: "hair",
		Address:  "1 Main St",
		City:     "Austin",
		Timezone: "America/Chicago",
	}
}

func TestCreate(t *testing.T) {
	repo := &businessRepoMock{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Business) bool {
		return b.Slug == "glow-studio" && b.OwnerID == 1 && b.IsActive
	})).Return(&domain.Business{ID: 7, OwnerID: 1, Name: "Glow Studio", Slug: "glow-studio", Category: domain.CategoryHair}, nil)

	svc := NewService(repo, cdn{}, logger.NewNop())
	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "glow-studio", resp.Slug)
	repo.AssertExpectations(t)
}

func TestCreate_SlugFallback(t *testing.T) {
	repo := &businessRepoMock{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Business) bool {
		return len(b.Slug) == len("business-")+8
	})).Return(&domain.Business{ID: 8}, nil)

	req := validCreateRequest()
	req.Name = "Салон красоты"

	svc := NewService(repo, nil, logger.NewNop())
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreate_Errors(t *testing.T) {
	t.Run("unknown timezone", func(t *testing.T) {
		req := validCreateRequest()
		req.Timezone = "Mars/Olympus"

		svc := NewService(&businessRepoMock{}, nil, logger.NewNop())
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("slug taken", func(t *testing.T) {
		repo := &businessRepoMock{}
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, businessRepo.ErrSlugTaken)

		svc := NewService(repo, nil, logger.NewNop())
		_, err := svc.Create(context.Background(), validCreateRequest())
		assert.ErrorIs(t, err, ErrSlugTaken)
	})
}

func TestGetByID_InactiveVisibleToOwnerOnly(t *testing.T) {
	repo := &businessRepoMock{}
	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{
		ID: 7, OwnerID: 1, IsActive: false, CoverImageKey: ptr.Ptr("businesses/7/cover/a.jpg"),
	}, nil)

	svc := NewService(repo, cdn{}, logger.NewNop())

	_, err := svc.GetByID(context.Background(), 7, nil)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	_, err = svc.GetByID(context.Background(), 7, ptr.Ptr(int64(2)))
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	resp, err := svc.GetByID(context.Background(), 7, ptr.Ptr(int64(1)))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/businesses/7/cover/a.jpg", *resp.CoverImageURL)
}

func TestSearch_ClampsLimit(t *testing.T) {
	repo := &businessRepoMock{}
	repo.On("Search", mock.Anything, mock.MatchedBy(func(f domain.BusinessSearchFilter) bool {
		return f.Limit == domain.MaxPageLimit && *f.Category == domain.CategoryNails
	})).Return([]*domain.Business{{ID: 1}, {ID: 2}}, nil)

	svc := NewService(repo, nil, logger.NewNop())
	resp, err := svc.Search(context.Background(), &models.SearchRequest{Category: ptr.Ptr("nails"), Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, resp.Businesses, 2)

	_, err = svc.Search(context.Background(), &models.SearchRequest{Category: ptr.Ptr("tattoo")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate(t *testing.T) {
	repo := &businessRepoMock{}
	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{
		ID: 7, OwnerID: 1, Name: "Glow", Category: domain.CategoryHair,
		Address: "1 Main St", City: "Austin", Timezone: "UTC", IsActive: true,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Business) bool {
		return b.City == "Dallas"
	})).Return(nil)

	svc := NewService(repo, nil, logger.NewNop())

	resp, err := svc.Update(context.Background(), 7, &models.UpdateBusinessRequest{UserID: 1, City: ptr.Ptr("Dallas")})
	require.NoError(t, err)
	assert.Equal(t, "Dallas", resp.City)

	_, err = svc.Update(context.Background(), 7, &models.UpdateBusinessRequest{UserID: 2, City: ptr.Ptr("Dallas")})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
