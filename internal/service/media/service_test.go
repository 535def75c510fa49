package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/objectstorage"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/media/models"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

type businessRepoMock struct{ mock.Mock }

func (m *businessRepoMock) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Business)
	return res, args.Error(1)
}

func (m *businessRepoMock) SetCoverImage(ctx context.Context, id int64, key string) error {
	return m.Called(ctx, id, key).Error(0)
}

type storageMock struct{ mock.Mock }

func (m *storageMock) PresignUpload(ctx context.Context, key, contentType string) (*objectstorage.PresignedUpload, error) {
	args := m.Called(ctx, key, contentType)
	res, _ := args.Get(0).(*objectstorage.PresignedUpload)
	return res, args.Error(1)
}

func (m *storageMock) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func newService() (*Service, *businessRepoMock, *storageMock) {
	businesses := &businessRepoMock{}
	businesses.On("GetByID", mock.Anything, int64(10)).Return(&domain.Business{ID: 10, OwnerID: 1, IsActive: true}, nil)
	storage := &storageMock{}
	svc := NewService(businesses, storage, logger.NewNop())
	svc.newName = func() string { return "abc" }
	return svc, businesses, storage
}

func TestCreateUploadURL(t *testing.T) {
	svc, _, storage := newService()
	expires := time.Date(2026, 1, 1, 0, 15, 0, 0, time.UTC)
	storage.On("PresignUpload", mock.Anything, "businesses/10/gallery/abc.webp", "image/webp").
		Return(&objectstorage.PresignedUpload{URL: "https://s3.test/put", Method: "PUT", ExpiresAt: expires}, nil)

	resp, err := svc.CreateUploadURL(context.Background(), &models.CreateUploadURLRequest{
		UserID: 1, BusinessID: 10, Kind: "gallery", ContentType: "IMAGE/WEBP",
	})
	require.NoError(t, err)
	assert.Equal(t, "businesses/10/gallery/abc.webp", resp.Key)
	assert.Equal(t, "https://cdn.test/businesses/10/gallery/abc.webp", resp.PublicURL)
	assert.Equal(t, expires, resp.ExpiresAt)
}

func TestCreateUploadURL_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateUploadURLRequest
		wantErr error
	}{
		{"gif", models.CreateUploadURLRequest{UserID: 1, BusinessID: 10, Kind: "cover", ContentType: "image/gif"}, ErrUnsupportedContentType},
		{"unknown kind", models.CreateUploadURLRequest{UserID: 1, BusinessID: 10, Kind: "avatar", ContentType: "image/png"}, ErrInvalidInput},
		{"not manager", models.CreateUploadURLRequest{UserID: 2, BusinessID: 10, Kind: "cover", ContentType: "image/png"}, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, storage := newService()
			_, err := svc.CreateUploadURL(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			storage.AssertNotCalled(t, "PresignUpload", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUploadURL_PresignFails(t *testing.T) {
	svc, _, storage := newService()
	storage.On("PresignUpload", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := svc.CreateUploadURL(context.Background(), &models.CreateUploadURLRequest{UserID: 1, BusinessID: 10, Kind: "cover", ContentType: "image/png"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSetCover(t *testing.T) {
	t.Run("foreign key", func(t *testing.T) {
		svc, businesses, _ := newService()
		_, err := svc.SetCover(context.Background(), &models.SetCoverRequest{UserID: 1, BusinessID: 10, Key: "businesses/11/cover/x.png"})
		assert.ErrorIs(t, err, ErrInvalidKey)
		businesses.AssertNotCalled(t, "SetCoverImage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("path traversal", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.SetCover(context.Background(), &models.SetCoverRequest{UserID: 1, BusinessID: 10, Key: "businesses/10/../11/cover/x.png"})
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("ok", func(t *testing.T) {
		svc, businesses, _ := newService()
		businesses.On("SetCoverImage", mock.Anything, int64(10), "businesses/10/cover/x.png").Return(nil)

		resp, err := svc.SetCover(context.Background(), &models.SetCoverRequest{UserID: 1, BusinessID: 10, Key: "businesses/10/cover/x.png"})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.test/businesses/10/cover/x.png", resp.URL)
	})
}

func TestDisabledStorage(t *testing.T) {
	svc := NewService(&businessRepoMock{}, nil, logger.NewNop())
	_, err := svc.CreateUploadURL(context.Background(), &models.CreateUploadURLRequest{UserID: 1, BusinessID: 10, Kind: "cover", ContentType: "image/png"})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
