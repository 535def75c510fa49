package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

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

type bookingRepoMock struct{ mock.Mock }

func (m *bookingRepoMock) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]*domain.Booking)
	return res, args.Error(1)
}

func ts(s string) types.TimeString {
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

func hours(open, close string) domain.DaySchedule {
	return domain.DaySchedule{IsOpen: true, OpenTime: ts(open), CloseTime: ts(close)}
}

func booking(staffID int64, start string, minutes int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{StaffID: staffID, StartTime: ts(start), DurationMinutes: minutes, Status: status}
}

// 2025-10-15, среда
var day = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func TestCandidateStarts(t *testing.T) {
	farAway := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	t.Run("service must end before close", func(t *testing.T) {
		starts, err := CandidateStarts(hours("09:00", "11:00"), 30, 45, day, farAway, time.UTC, 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{ts("09:00"), ts("09:30"), ts("10:00")}, starts)
	})

	t.Run("closed day", func(t *testing.T) {
		starts, err := CandidateStarts(domain.DaySchedule{}, 30, 45, day, farAway, time.UTC, 60)
		require.NoError(t, err)
		assert.Empty(t, starts)
	})

	t.Run("today respects notice in business timezone", func(t *testing.T) {
		loc, err := time.LoadLocation("Europe/Berlin")
		require.NoError(t, err)
		// 07:10 UTC = 09:10 в Берлине
		now := time.Date(2025, 10, 15, 7, 10, 0, 0, time.UTC)

		starts, err := CandidateStarts(hours("09:00", "12:00"), 30, 30, day, now, loc, 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{ts("10:30"), ts("11:00"), ts("11:30")}, starts)
	})
}

func TestIsFree(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "10:00", 60, domain.StatusConfirmed),
		booking(1, "13:00", 60, domain.StatusCancelledByUser),
	}

	tests := []struct {
		name  string
		start string
		total int
		want  bool
	}{
		{"ends where booking starts", "09:00", 60, true},
		{"starts where booking ends", "11:00", 30, true},
		{"overlaps the start", "09:30", 60, false},
		{"inside booking", "10:15", 15, false},
		{"cancelled booking is ignored", "13:00", 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free, err := IsFree(ts(tt.start), tt.total, bookings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, free)
		})
	}
}

func TestValidateDate(t *testing.T) {
	today := day

	assert.ErrorIs(t, ValidateDate(today.AddDate(0, 0, -1), today, 0), ErrInvalidDate)
	assert.NoError(t, ValidateDate(today, today, 0))
	assert.NoError(t, ValidateDate(today.AddDate(0, 0, 30), today, 30))
	assert.ErrorIs(t, ValidateDate(today.AddDate(0, 0, 31), today, 30), ErrDateTooFarInFuture)
	assert.NoError(t, ValidateDate(today.AddDate(1, 0, 0), today, 0))
}

func TestToday_UsesBusinessTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC 16 октября = 22:00 15 октября в Нью-Йорке
	now := time.Date(2025, 10, 16, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, day, Today(now, loc))
}

func TestFitsHoursAndStep(t *testing.T) {
	h := hours("09:00", "18:00")

	assert.True(t, FitsHours(h, ts("17:00"), 60))
	assert.False(t, FitsHours(h, ts("17:30"), 60))
	assert.False(t, FitsHours(h, ts("08:30"), 30))
	assert.True(t, OnStep(h, ts("09:45"), 15))
	assert.False(t, OnStep(h, ts("09:40"), 15))
}

func TestPlanner_WorkingStaff(t *testing.T) {
	ctx := context.Background()
	staff := &staffRepoMock{}
	planner := NewPlanner(staff, &bookingRepoMock{})

	staff.On("ListForService", ctx, int64(10), int64(3)).Return([]*domain.Staff{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
	staff.On("GetSchedule", ctx, int64(1)).Return(&domain.WeeklySchedule{StaffID: 1, Days: []domain.DaySchedule{
		{Weekday: time.Wednesday, IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("17:00")},
	}}, nil)
	staff.On("GetSchedule", ctx, int64(2)).Return(&domain.WeeklySchedule{StaffID: 2, Days: []domain.DaySchedule{
		{Weekday: time.Monday, IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("17:00")},
	}}, nil)
	staff.On("GetSchedule", ctx, int64(3)).Return(&domain.WeeklySchedule{StaffID: 3, Days: []domain.DaySchedule{
		{Weekday: time.Wednesday, IsOpen: true, OpenTime: ts("12:00"), CloseTime: ts("20:00")},
	}}, nil)
	staff.On("HasTimeOff", ctx, int64(1), day).Return(false, nil)
	staff.On("HasTimeOff", ctx, int64(3), day).Return(true, nil)

	t.Run("all qualified", func(t *testing.T) {
		days, err := planner.WorkingStaff(ctx, 10, 3, nil, day)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, StaffIDs(days))
	})

	t.Run("requested staff not qualified", func(t *testing.T) {
		_, err := planner.WorkingStaff(ctx, 10, 3, ptr.Ptr(int64(9)), day)
		assert.ErrorIs(t, err, ErrStaffNotQualified)
	})
}

func TestPlanner_BusyByStaff(t *testing.T) {
	ctx := context.Background()
	bookings := &bookingRepoMock{}
	planner := NewPlanner(&staffRepoMock{}, bookings)

	bookings.On("GetByBusinessWithFilter", ctx, mock.MatchedBy(func(f domain.BusinessBookingsFilter) bool {
		return f.IsSingleDay() && !f.IncludeInactive && f.ExcludeID != nil && *f.ExcludeID == 77
	})).Return([]*domain.Booking{
		booking(1, "10:00", 60, domain.StatusConfirmed),
		booking(2, "11:00", 30, domain.StatusPending),
		booking(1, "12:00", 30, domain.StatusConfirmed),
	}, nil)

	busy, err := planner.BusyByStaff(ctx, 10, []int64{1, 2}, day, ptr.Ptr(int64(77)))
	require.NoError(t, err)
	assert.Len(t, busy[1], 2)
	assert.Len(t, busy[2], 1)
}
