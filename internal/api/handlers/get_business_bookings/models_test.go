package get_business_bookings

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	t.Run("single date overrides range", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?date=2025-10-15&from=2025-10-01&to=2025-10-31&staffId=4&status=confirmed", nil)

		req, err := ToServiceRequest(r, 10, 1)
		require.NoError(t, err)

		day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
		require.NotNil(t, req.StartDate)
		require.NotNil(t, req.EndDate)
		assert.Equal(t, day, *req.StartDate)
		assert.Equal(t, day, *req.EndDate)
		assert.Equal(t, int64(4), *req.StaffID)
		assert.Equal(t, "confirmed", *req.Status)
		assert.Equal(t, int64(10), req.BusinessID)
		assert.Equal(t, int64(1), req.UserID)
	})

	t.Run("open range", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?from=2025-10-01&includeInactive=true", nil)

		req, err := ToServiceRequest(r, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), *req.StartDate)
		assert.Nil(t, req.EndDate)
		assert.True(t, req.IncludeInactive)
		assert.Nil(t, req.StaffID)
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, query := range []string{"?date=15.10.2025", "?to=tomorrow", "?staffId=x", "?includeInactive=maybe"} {
			r := httptest.NewRequest(http.MethodGet, "/"+query, nil)
			_, err := ToServiceRequest(r, 10, 1)
			assert.Error(t, err, query)
		}
	})
}
