package reschedule_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

type bookingRepoMock struct{ mock.Mock }

func (m *bookingRepoMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Booking)
	return res, args.Error(1)
}

func (m *bookingRepoMock) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]*domain.Booking)
	return res, args.Error(1)
}

func (m *bookingRepoMock) Reschedule(ctx context.Context, id int64, date time.Time, start types.TimeString) error {
	return m.Called(ctx, id, date, start).Error(0)
}

type businessRepoMock struct{ mock.Mock }

func (m *businessRepoMock) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Business)
	return res, args.Error(1)
}

type settingsRepoMock struct{ mock.Mock }

func (m *settingsRepoMock) GetWithHierarchy(ctx context.Context, businessID int64, serviceID *int64) (*domain.BookingSettings, error) {
	args := m.Called(ctx, businessID, serviceID)
	res, _ := args.Get(0).(*domain.BookingSettings)
	return res, args.Error(1)
}

type staffRepoMock struct{ mock.Mock }

func (m *staffRepoMock) ListForService(ctx context.Context, businessID, serviceID int64) ([]*domain.Staff, error) {
	args := m.Called(ctx, businessID, serviceID)
	res, _ := args.Get(0).([]*domain.Staff)
	return res, args.Error(1)
}

func (m *staffRepoMock) GetSchedule(ctx context.Context, staffID int64) (*domain.WeeklySchedule, error) {
	args := m.Called(ctx, staffID)
	res, _ := args.Get(0).(*domain.WeeklySchedule)
	return res, args.Error(1)
}

func (m *staffRepoMock) HasTimeOff(ctx context.Context, staffID int64, date time.Time) (bool, error) {
	args := m.Called(ctx, staffID, date)
	return args.Bool(0), args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func ts(s string) types.TimeString {
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	monday   = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	bookings *bookingRepoMock
	staff    *staffRepoMock
	uc       *UseCase
}

func newFixture(booking *domain.Booking) *fixture {
	f := &fixture{bookings: &bookingRepoMock{}, staff: &staffRepoMock{}}
	businesses := &businessRepoMock{}
	settings := &settingsRepoMock{}

	f.uc = NewUseCase(f.bookings, businesses, settings, f.staff, passthroughTx{}, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)}

	f.bookings.On("GetByID", mock.Anything, int64(50)).Return(booking, nil)
	businesses.On("GetByID", mock.Anything, int64(10)).Return(&domain.Business{ID: 10, OwnerID: 1, Name: "Glow", Timezone: "UTC", IsActive: true}, nil)
	settings.On("GetWithHierarchy", mock.Anything, int64(10), mock.Anything).Return(domain.DefaultBookingSettings(10), nil)

	f.staff.On("ListForService", mock.Anything, int64(10), int64(3)).Return([]*domain.Staff{{ID: 2, Name: "Bella"}}, nil)
	f.staff.On("GetSchedule", mock.Anything, int64(2)).Return(&domain.WeeklySchedule{StaffID: 2, Days: []domain.DaySchedule{
		{Weekday: time.Thursday, IsOpen: true, OpenTime: ts("10:00"), CloseTime: ts("16:00")},
	}}, nil)
	f.staff.On("HasTimeOff", mock.Anything, int64(2), mock.Anything).Return(false, nil)
	return f
}

func confirmed() *domain.Booking {
	return &domain.Booking{
		ID: 50, CustomerID: 5, BusinessID: 10, ServiceID: 3, StaffID: 2,
		BookingDate: monday, StartTime: ts("12:00"), DurationMinutes: 60, Status: domain.StatusConfirmed,
	}
}

func request(userID int64, start string) *Request {
	return &Request{BookingID: 50, UserID: userID, Date: thursday, StartTime: ts(start)}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(confirmed())
	f.bookings.On("GetByBusinessWithFilter", mock.Anything, mock.MatchedBy(func(filter domain.BusinessBookingsFilter) bool {
		return filter.ExcludeID != nil && *filter.ExcludeID == 50 && len(filter.StaffIDs) == 1 && filter.StaffIDs[0] == 2
	})).Return([]*domain.Booking{
		{ID: 51, StaffID: 2, StartTime: ts("10:00"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}, nil)
	f.bookings.On("Reschedule", mock.Anything, int64(50), thursday, ts("11:00")).Return(nil)

	booking, err := f.uc.Execute(context.Background(), request(5, "11:00"))
	require.NoError(t, err)
	assert.Equal(t, thursday, booking.BookingDate)
	assert.Equal(t, ts("11:00"), booking.StartTime)
	f.bookings.AssertExpectations(t)
}

func TestExecute_ManagerCanReschedule(t *testing.T) {
	f := newFixture(confirmed())
	f.bookings.On("GetByBusinessWithFilter", mock.Anything, mock.Anything).Return(nil, nil)
	f.bookings.On("Reschedule", mock.Anything, int64(50), thursday, ts("14:00")).Return(nil)

	_, err := f.uc.Execute(context.Background(), request(1, "14:00"))
	require.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		booking  func() *domain.Booking
		userID   int64
		start    string
		existing []*domain.Booking
		wantErr  error
	}{
		{
			name:    "stranger",
			booking: confirmed,
			userID:  99,
			start:   "11:00",
			wantErr: ErrAccessDenied,
		},
		{
			name: "completed booking",
			booking: func() *domain.Booking {
				b := confirmed()
				b.Status = domain.StatusCompleted
				return b
			},
			userID:  5,
			start:   "11:00",
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "outside working hours",
			booking: confirmed,
			userID:  5,
			start:   "15:30",
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "off the slot grid",
			booking: confirmed,
			userID:  5,
			start:   "11:05",
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "overlaps another booking",
			booking: confirmed,
			userID:  5,
			start:   "11:00",
			existing: []*domain.Booking{
				{ID: 51, StaffID: 2, StartTime: ts("11:30"), DurationMinutes: 30, Status: domain.StatusPending},
			},
			wantErr: ErrSlotNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.booking())
			f.bookings.On("GetByBusinessWithFilter", mock.Anything, mock.Anything).Return(tt.existing, nil)

			_, err := f.uc.Execute(context.Background(), request(tt.userID, tt.start))
			assert.ErrorIs(t, err, tt.wantErr)
			f.bookings.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_StaffNoLongerWorksThatDay(t *testing.T) {
	f := newFixture(confirmed())

	req := request(5, "11:00")
	req.Date = thursday.AddDate(0, 0, 1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := &fixture{bookings: &bookingRepoMock{}}
	uc := NewUseCase(f.bookings, &businessRepoMock{}, &settingsRepoMock{}, &staffRepoMock{}, passthroughTx{}, logger.NewNop())
	f.bookings.On("GetByID", mock.Anything, int64(50)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := uc.Execute(context.Background(), request(5, "11:00"))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_StorageError(t *testing.T) {
	f := newFixture(confirmed())
	f.bookings.On("GetByBusinessWithFilter", mock.Anything, mock.Anything).Return(nil, nil)
	f.bookings.On("Reschedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := f.uc.Execute(context.Background(), request(5, "11:00"))
	assert.ErrorIs(t, err, ErrInternal)
}
