package staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	staffRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/staff/models"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
)

type staffRepoMock struct{ mock.Mock }

func (m *staffRepoMock) Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error) {
	args := m.Called(ctx, s)
	res, _ := args.Get(0).(*domain.Staff)
	return res, args.Error(1)
}

func (m *staffRepoMock) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Staff)
	return res, args.Error(1)
}

func (m *staffRepoMock) ListByBusiness(ctx context.Context, businessID int64, includeInactive bool) ([]*domain.Staff, error) {
	args := m.Called(ctx, businessID, includeInactive)
	res, _ := args.Get(0).([]*domain.Staff)
	return res, args.Error(1)
}

func (m *staffRepoMock) ListForService(ctx context.Context, businessID, serviceID int64) ([]*domain.Staff, error) {
	args := m.Called(ctx, businessID, serviceID)
	res, _ := args.Get(0).([]*domain.Staff)
	return res, args.Error(1)
}

func (m *staffRepoMock) Update(ctx context.Context, s *domain.Staff) error {
	return m.Called(ctx, s).Error(0)
}

func (m *staffRepoMock) ReplaceServices(ctx context.Context, staffID int64, serviceIDs []int64) error {
	return m.Called(ctx, staffID, serviceIDs).Error(0)
}

func (m *staffRepoMock) GetSchedule(ctx context.Context, staffID int64) (*domain.WeeklySchedule, error) {
	args := m.Called(ctx, staffID)
	res, _ := args.Get(0).(*domain.WeeklySchedule)
	return res, args.Error(1)
}

func (m *staffRepoMock) ReplaceSchedule(ctx context.Context, schedule *domain.WeeklySchedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *staffRepoMock) AddTimeOff(ctx context.Context, t *domain.TimeOff) (*domain.TimeOff, error) {
	args := m.Called(ctx, t)
	res, _ := args.Get(0).(*domain.TimeOff)
	return res, args.Error(1)
}

func (m *staffRepoMock) ListTimeOff(ctx context.Context, staffID int64, from time.Time) ([]*domain.TimeOff, error) {
	args := m.Called(ctx, staffID, from)
	res, _ := args.Get(0).([]*domain.TimeOff)
	return res, args.Error(1)
}

func (m *staffRepoMock) DeleteTimeOff(ctx context.Context, staffID, timeOffID int64) error {
	return m.Called(ctx, staffID, timeOffID).Error(0)
}

type serviceRepoMock struct{ mock.Mock }

func (m *serviceRepoMock) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	args := m.Called(ctx, ids)
	res, _ := args.Get(0).([]*domain.Service)
	return res, args.Error(1)
}

type businessRepoMock struct{ mock.Mock }

func (m *businessRepoMock) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Business)
	return res, args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	staff      *staffRepoMock
	services   *serviceRepoMock
	businesses *businessRepoMock
	svc        *Service
}

func newFixture(now time.Time) *fixture {
	f := &fixture{staff: &staffRepoMock{}, services: &serviceRepoMock{}, businesses: &businessRepoMock{}}
	f.businesses.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Business{ID: 10, OwnerID: 1, Timezone: "UTC", IsActive: true}, nil)
	f.svc = NewService(f.staff, f.services, f.businesses, passthroughTx{}, fixedTime{now: now}, logger.NewNop())
	return f
}

func TestCreate_ForeignService(t *testing.T) {
	f := newFixture(time.Now())
	f.services.On("ListByIDs", mock.Anything, []int64{1, 2}).
		Return([]*domain.Service{{ID: 1, BusinessID: 10}, {ID: 2, BusinessID: 77}}, nil)

	_, err := f.svc.Create(context.Background(), &models.CreateStaffRequest{
		UserID: 1, BusinessID: 10, Name: "Anna", ServiceIDs: []int64{1, 2, 2},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	f.staff.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Success(t *testing.T) {
	f := newFixture(time.Now())
	f.services.On("ListByIDs", mock.Anything, []int64{1}).Return([]*domain.Service{{ID: 1, BusinessID: 10}}, nil)
	f.staff.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Staff) bool {
		return s.Name == "Anna" && s.IsActive && len(s.ServiceIDs) == 1
	})).Return(&domain.Staff{ID: 5, BusinessID: 10, Name: "Anna", ServiceIDs: []int64{1}, IsActive: true}, nil)

	resp, err := f.svc.Create(context.Background(), &models.CreateStaffRequest{
		UserID: 1, BusinessID: 10, Name: " Anna ", ServiceIDs: []int64{1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, []int64{1}, resp.ServiceIDs)
}

func TestUpdate_ReplacesServices(t *testing.T) {
	f := newFixture(time.Now())
	f.staff.On("GetByID", mock.Anything, int64(5)).Return(&domain.Staff{ID: 5, BusinessID: 10, Name: "Anna", IsActive: true}, nil)
	f.services.On("ListByIDs", mock.Anything, []int64{3}).Return([]*domain.Service{{ID: 3, BusinessID: 10}}, nil)
	f.staff.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.staff.On("ReplaceServices", mock.Anything, int64(5), []int64{3}).Return(nil)

	resp, err := f.svc.Update(context.Background(), 10, 5, &models.UpdateStaffRequest{UserID: 1, ServiceIDs: &[]int64{3}})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, resp.ServiceIDs)
	f.staff.AssertExpectations(t)
}

func TestSetSchedule(t *testing.T) {
	tests := []struct {
		name    string
		days    []models.DayScheduleRequest
		wantErr error
	}{
		{
			name: "valid",
			days: []models.DayScheduleRequest{
				{Weekday: 1, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
				{Weekday: 0, IsOpen: false},
			},
		},
		{
			name:    "close before open",
			days:    []models.DayScheduleRequest{{Weekday: 1, IsOpen: true, OpenTime: "18:00", CloseTime: "09:00"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duplicate weekday",
			days:    []models.DayScheduleRequest{{Weekday: 2}, {Weekday: 2}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad weekday",
			days:    []models.DayScheduleRequest{{Weekday: 7}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(time.Now())
			f.staff.On("GetByID", mock.Anything, int64(5)).Return(&domain.Staff{ID: 5, BusinessID: 10}, nil)
			f.staff.On("ReplaceSchedule", mock.Anything, mock.Anything).Return(nil)

			resp, err := f.svc.SetSchedule(context.Background(), 10, 5, &models.SetScheduleRequest{UserID: 1, Days: tt.days})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, resp.Days, 7)
			assert.True(t, resp.Days[1].IsOpen)
			assert.Equal(t, "09:00", resp.Days[1].OpenTime)
			assert.False(t, resp.Days[3].IsOpen)
		})
	}
}

func TestAddTimeOff(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("past date", func(t *testing.T) {
		f := newFixture(now)
		f.staff.On("GetByID", mock.Anything, int64(5)).Return(&domain.Staff{ID: 5, BusinessID: 10}, nil)

		_, err := f.svc.AddTimeOff(context.Background(), 10, 5, &models.AddTimeOffRequest{UserID: 1, Date: "2026-03-09"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("today is allowed", func(t *testing.T) {
		f := newFixture(now)
		f.staff.On("GetByID", mock.Anything, int64(5)).Return(&domain.Staff{ID: 5, BusinessID: 10}, nil)
		f.staff.On("AddTimeOff", mock.Anything, mock.Anything).
			Return(&domain.TimeOff{ID: 1, StaffID: 5, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}, nil)

		resp, err := f.svc.AddTimeOff(context.Background(), 10, 5, &models.AddTimeOffRequest{UserID: 1, Date: "2026-03-10"})
		require.NoError(t, err)
		assert.Equal(t, "2026-03-10", resp.Date)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newFixture(now)
		f.staff.On("GetByID", mock.Anything, int64(5)).Return(&domain.Staff{ID: 5, BusinessID: 10}, nil)
		f.staff.On("AddTimeOff", mock.Anything, mock.Anything).Return(nil, staffRepo.ErrTimeOffExists)

		_, err := f.svc.AddTimeOff(context.Background(), 10, 5, &models.AddTimeOffRequest{UserID: 1, Date: "2026-03-12", Reason: ptr.Ptr("vacation")})
		assert.ErrorIs(t, err, ErrTimeOffExists)
	})
}

func TestDeleteTimeOff_NotFound(t *testing.T) {
	f := newFixture(time.Now())
	f.staff.On("GetByID", mock.Anything, int64(5)).Return(&domain.Staff{ID: 5, BusinessID: 10}, nil)
	f.staff.On("DeleteTimeOff", mock.Anything, int64(5), int64(9)).Return(staffRepo.ErrTimeOffNotFound)

	assert.ErrorIs(t, f.svc.DeleteTimeOff(context.Background(), 10, 5, 9, 1), ErrTimeOffNotFound)
}

func TestGetSchedule_OtherBusiness(t *testing.T) {
	f := newFixture(time.Now())
	f.staff.On("GetByID", mock.Anything, int64(5)).Return(&domain.Staff{ID: 5, BusinessID: 11}, nil)

	_, err := f.svc.GetSchedule(context.Background(), 10, 5)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
