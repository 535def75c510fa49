package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	reviewRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/review"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/reviews/models"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
)

type reviewRepoMock struct{ mock.Mock }

func (m *reviewRepoMock) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	args := m.Called(ctx, rv)
	res, _ := args.Get(0).(*domain.Review)
	return res, args.Error(1)
}

func (m *reviewRepoMock) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Review)
	return res, args.Error(1)
}

func (m *reviewRepoMock) ListByBusiness(ctx context.Context, businessID int64, limit, offset int) ([]*domain.Review, error) {
	args := m.Called(ctx, businessID, limit, offset)
	res, _ := args.Get(0).([]*domain.Review)
	return res, args.Error(1)
}

func (m *reviewRepoMock) Summary(ctx context.Context, businessID int64) (*domain.ReviewSummary, error) {
	args := m.Called(ctx, businessID)
	res, _ := args.Get(0).(*domain.ReviewSummary)
	return res, args.Error(1)
}

func (m *reviewRepoMock) Reply(ctx context.Context, id int64, reply string) error {
	return m.Called(ctx, id, reply).Error(0)
}

type bookingRepoMock struct{ mock.Mock }

func (m *bookingRepoMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Booking)
	return res, args.Error(1)
}

type businessRepoMock struct{ mock.Mock }

func (m *businessRepoMock) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Business)
	return res, args.Error(1)
}

func (m *businessRepoMock) RefreshRating(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	reviews    *reviewRepoMock
	bookings   *bookingRepoMock
	businesses *businessRepoMock
	svc        *Service
}

func newFixture() *fixture {
	f := &fixture{reviews: &reviewRepoMock{}, bookings: &bookingRepoMock{}, businesses: &businessRepoMock{}}
	f.businesses.On("GetByID", mock.Anything, int64(10)).Return(&domain.Business{ID: 10, OwnerID: 1, IsActive: true}, nil)
	f.svc = NewService(f.reviews, f.bookings, f.businesses, passthroughTx{}, logger.NewNop())
	return f
}

func completedBooking() *domain.Booking {
	return &domain.Booking{ID: 100, CustomerID: 5, BusinessID: 10, StaffID: 3, Status: domain.StatusCompleted}
}

func TestCreate_RefreshesRating(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(100)).Return(completedBooking(), nil)
	f.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return r.StaffID == 3 && r.BusinessID == 10 && r.Rating == 5 && *r.Comment == "Great"
	})).Return(&domain.Review{ID: 1, BookingID: 100, BusinessID: 10, StaffID: 3, CustomerID: 5, Rating: 5}, nil)
	f.businesses.On("RefreshRating", mock.Anything, int64(10)).Return(nil)

	resp, err := f.svc.Create(context.Background(), &models.CreateReviewRequest{UserID: 5, BookingID: 100, Rating: 5, Comment: ptr.Ptr(" Great ")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	f.businesses.AssertExpectations(t)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		req     models.CreateReviewRequest
		wantErr error
	}{
		{"bad rating", completedBooking(), models.CreateReviewRequest{UserID: 5, BookingID: 100, Rating: 6}, ErrInvalidInput},
		{"foreign booking", completedBooking(), models.CreateReviewRequest{UserID: 6, BookingID: 100, Rating: 4}, ErrBookingNotFound},
		{"not completed", &domain.Booking{ID: 100, CustomerID: 5, Status: domain.StatusConfirmed}, models.CreateReviewRequest{UserID: 5, BookingID: 100, Rating: 4}, ErrBookingNotCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.bookings.On("GetByID", mock.Anything, int64(100)).Return(tt.booking, nil)

			_, err := f.svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_Duplicate(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(100)).Return(completedBooking(), nil)
	f.reviews.On("Create", mock.Anything, mock.Anything).Return(nil, reviewRepo.ErrReviewExists)

	_, err := f.svc.Create(context.Background(), &models.CreateReviewRequest{UserID: 5, BookingID: 100, Rating: 4})
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestList_ClampsLimitAndFillsDistribution(t *testing.T) {
	f := newFixture()
	f.reviews.On("ListByBusiness", mock.Anything, int64(10), domain.MaxPageLimit, 0).Return([]*domain.Review{{ID: 1, Rating: 5}}, nil)
	f.reviews.On("Summary", mock.Anything, int64(10)).Return(&domain.ReviewSummary{Average: 5, Count: 1, Distribution: map[int]int{5: 1}}, nil)

	resp, err := f.svc.List(context.Background(), &models.ListReviewsRequest{BusinessID: 10, Limit: 1000, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageLimit, resp.Limit)
	assert.Len(t, resp.Summary.Distribution, 5)
	assert.Equal(t, 1, resp.Summary.Distribution["5"])
	assert.Equal(t, 0, resp.Summary.Distribution["1"])
}

func TestReply(t *testing.T) {
	repliedAt := time.Now()

	t.Run("manager replies once", func(t *testing.T) {
		f := newFixture()
		f.reviews.On("GetByID", mock.Anything, int64(1)).Return(&domain.Review{ID: 1, BusinessID: 10}, nil).Once()
		f.reviews.On("Reply", mock.Anything, int64(1), "Thanks!").Return(nil)
		f.reviews.On("GetByID", mock.Anything, int64(1)).Return(&domain.Review{ID: 1, BusinessID: 10, Reply: ptr.Ptr("Thanks!"), RepliedAt: &repliedAt}, nil).Once()

		resp, err := f.svc.Reply(context.Background(), 1, &models.ReplyRequest{UserID: 1, Reply: " Thanks! "})
		require.NoError(t, err)
		assert.Equal(t, "Thanks!", *resp.Reply)
	})

	t.Run("already replied", func(t *testing.T) {
		f := newFixture()
		f.reviews.On("GetByID", mock.Anything, int64(1)).Return(&domain.Review{ID: 1, BusinessID: 10, Reply: ptr.Ptr("Hi")}, nil)

		_, err := f.svc.Reply(context.Background(), 1, &models.ReplyRequest{UserID: 1, Reply: "Again"})
		assert.ErrorIs(t, err, ErrAlreadyReplied)
	})

	t.Run("not manager", func(t *testing.T) {
		f := newFixture()
		f.reviews.On("GetByID", mock.Anything, int64(1)).Return(&domain.Review{ID: 1, BusinessID: 10}, nil)

		_, err := f.svc.Reply(context.Background(), 1, &models.ReplyRequest{UserID: 9, Reply: "Hi"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
