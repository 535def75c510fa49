package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	settingsRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/settings/models"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
)

type settingsRepoMock struct{ mock.Mock }

func (m *settingsRepoMock) GetWithHierarchy(ctx context.Context, businessID int64, serviceID *int64) (*domain.BookingSettings, error) {
	args := m.Called(ctx, businessID, serviceID)
	res, _ := args.Get(0).(*domain.BookingSettings)
	return res, args.Error(1)
}

func (m *settingsRepoMock) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.BookingSettings, error) {
	args := m.Called(ctx, businessID)
	res, _ := args.Get(0).([]*domain.BookingSettings)
	return res, args.Error(1)
}

func (m *settingsRepoMock) Upsert(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	args := m.Called(ctx, s)
	res, _ := args.Get(0).(*domain.BookingSettings)
	return res, args.Error(1)
}

func (m *settingsRepoMock) Delete(ctx context.Context, businessID int64, serviceID *int64) error {
	return m.Called(ctx, businessID, serviceID).Error(0)
}

type serviceRepoMock struct{ mock.Mock }

func (m *serviceRepoMock) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Service)
	return res, args.Error(1)
}

type businessRepoMock struct{ mock.Mock }

func (m *businessRepoMock) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Business)
	return res, args.Error(1)
}

func newService() (*Service, *settingsRepoMock, *serviceRepoMock) {
	settings := &settingsRepoMock{}
	services := &serviceRepoMock{}
	businesses := &businessRepoMock{}
	businesses.On("GetByID", mock.Anything, int64(10)).Return(&domain.Business{ID: 10, OwnerID: 1, IsActive: true}, nil)
	return NewService(settings, services, businesses, logger.NewNop()), settings, services
}

func TestGet_Defaults(t *testing.T) {
	svc, settings, _ := newService()
	settings.On("GetWithHierarchy", mock.Anything, int64(10), (*int64)(nil)).Return(domain.DefaultBookingSettings(10), nil)

	resp, err := svc.Get(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.Equal(t, models.LevelDefault, resp.Level)
	assert.Equal(t, domain.DefaultSlotStepMinutes, resp.SlotStepMinutes)
	assert.Equal(t, domain.DefaultCancellationNoticeHours, resp.CancellationNoticeHours)
}

func TestGet_ForeignService(t *testing.T) {
	svc, _, services := newService()
	services.On("GetByID", mock.Anything, int64(4)).Return(&domain.Service{ID: 4, BusinessID: 99}, nil)

	_, err := svc.Get(context.Background(), 10, ptr.Ptr(int64(4)))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUpsert_InheritsUnsetFields(t *testing.T) {
	svc, settings, services := newService()
	services.On("GetByID", mock.Anything, int64(4)).Return(&domain.Service{ID: 4, BusinessID: 10}, nil)
	settings.On("GetWithHierarchy", mock.Anything, int64(10), ptr.Ptr(int64(4))).Return(&domain.BookingSettings{
		ID: 1, BusinessID: 10, SlotStepMinutes: 30, AdvanceBookingDays: 14, MinBookingNoticeMinutes: 120,
		CancellationNoticeHours: 48,
	}, nil)
	settings.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.BookingSettings) bool {
		return s.SlotStepMinutes == 30 && s.AdvanceBookingDays == 14 && s.RequirePrepayment &&
			s.ServiceID != nil && *s.ServiceID == 4
	})).Return(&domain.BookingSettings{ID: 2, BusinessID: 10, ServiceID: ptr.Ptr(int64(4)), SlotStepMinutes: 30, RequirePrepayment: true}, nil)

	resp, err := svc.Upsert(context.Background(), &models.UpsertSettingsRequest{
		UserID: 1, BusinessID: 10, ServiceID: ptr.Ptr(int64(4)), RequirePrepayment: ptr.Ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelService, resp.Level)
	settings.AssertExpectations(t)
}

func TestUpsert_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpsertSettingsRequest
	}{
		{"step too small", models.UpsertSettingsRequest{SlotStepMinutes: ptr.Ptr(1)}},
		{"step too big", models.UpsertSettingsRequest{SlotStepMinutes: ptr.Ptr(300)}},
		{"advance too far", models.UpsertSettingsRequest{AdvanceBookingDays: ptr.Ptr(400)}},
		{"negative notice", models.UpsertSettingsRequest{MinBookingNoticeMinutes: ptr.Ptr(-1)}},
		{"cancellation too long", models.UpsertSettingsRequest{CancellationNoticeHours: ptr.Ptr(721)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, settings, _ := newService()
			settings.On("GetWithHierarchy", mock.Anything, int64(10), (*int64)(nil)).Return(domain.DefaultBookingSettings(10), nil)

			req := tt.req
			req.UserID, req.BusinessID = 1, 10
			_, err := svc.Upsert(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestUpsert_NotManager(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Upsert(context.Background(), &models.UpsertSettingsRequest{UserID: 5, BusinessID: 10})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete_NotFound(t *testing.T) {
	svc, settings, _ := newService()
	settings.On("Delete", mock.Anything, int64(10), (*int64)(nil)).Return(settingsRepo.ErrSettingsNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), 10, 1, nil), ErrSettingsNotFound)
}
