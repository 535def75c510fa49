package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	allowed := [][2]BookingStatus{
		{StatusPending, StatusConfirmed},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusNoShow},
		{StatusConfirmed, StatusCompleted},
		{StatusInProgress, StatusCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, tr[0].CanTransitionTo(tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]BookingStatus{
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusConfirmed},
		{StatusCancelledByUser, StatusConfirmed},
		{StatusExpired, StatusConfirmed},
		{StatusInProgress, StatusNoShow},
	}
	for _, tr := range denied {
		assert.False(t, tr[0].CanTransitionTo(tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestBookingStatus_IsInactive(t *testing.T) {
	assert.True(t, StatusExpired.IsInactive())
	assert.True(t, StatusNoShow.IsInactive())
	assert.True(t, StatusCancelledByCompany.IsInactive())
	assert.False(t, StatusPending.IsInactive())
	assert.False(t, StatusCompleted.IsInactive())
}

func TestBooking_EndTimeAndStartsAt(t *testing.T) {
	b := &Booking{
		BookingDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:30"),
		DurationMinutes: 75,
	}

	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:45"), end)

	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	startsAt := b.StartsAt(loc)
	assert.Equal(t, 10, startsAt.Hour())
	assert.Equal(t, loc, startsAt.Location())
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps("10:00", "11:00", "10:30", "11:30"))
	assert.False(t, Overlaps("10:00", "11:00", "11:00", "12:00"))
	assert.False(t, Overlaps("12:00", "13:00", "11:00", "12:00"))
	assert.True(t, Overlaps("10:00", "12:00", "10:30", "11:00"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "studio-nails-42", Slugify("  Studio Nails #42!"))
	assert.Equal(t, "a-b", Slugify("A---B"))
	assert.Equal(t, "", Slugify("Салон"))
}

func TestMediaKeys(t *testing.T) {
	key := BusinessMediaKey(7, MediaCover, "abc", "jpg")
	assert.Equal(t, "businesses/7/cover/abc.jpg", key)
	assert.True(t, BelongsToBusiness(key, 7))
	assert.False(t, BelongsToBusiness(key, 70))
	assert.False(t, BelongsToBusiness("businesses/7/../8/x.jpg", 7))

	ext, ok := ImageExtension("IMAGE/PNG")
	assert.True(t, ok)
	assert.Equal(t, "png", ext)
}
