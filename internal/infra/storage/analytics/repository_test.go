package analytics

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

var (
	from = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
)

func TestBookingsByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM bookings WHERE business_id = $1 AND (booking_date >= $2 AND booking_date <= $3) GROUP BY status")).
		WithArgs(int64(1), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("completed", 7).
			AddRow("no_show", 1))

	repo := NewRepository(db)
	byStatus, err := repo.BookingsByStatus(context.Background(), 1, from, to)
	require.NoError(t, err)
	assert.Equal(t, map[domain.BookingStatus]int{domain.StatusCompleted: 7, domain.StatusNoShow: 1}, byStatus)
}

func TestPaymentTotals_UsesHalfOpenCreatedAtRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE business_id = $1 AND status IN ($2,$3) AND (created_at >= $4 AND created_at < $5)")).
		WithArgs(int64(1), "succeeded", "partially_refunded", from, to.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"gross", "platform", "processor", "payout"}).
			AddRow(int64(20000), int64(2000), int64(640), int64(17360)))

	repo := NewRepository(db)
	totals, err := repo.PaymentTotals(context.Background(), 1, from, to)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentTotals{GrossCents: 20000, PlatformFeeCents: 2000, ProcessorFeeCents: 640, PayoutCents: 17360}, *totals)
}

func TestCustomerCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM (SELECT customer_id, COUNT(*) AS n FROM bookings")).
		WillReturnRows(sqlmock.NewRows([]string{"unique", "returning"}).AddRow(12, 5))

	repo := NewRepository(db)
	counts, err := repo.CustomerCounts(context.Background(), 1, from, to)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerCounts{Unique: 12, Returning: 5}, *counts)
}

func TestTopServices(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY service_id ORDER BY COUNT(*) DESC, service_id ASC LIMIT 5")).
		WillReturnRows(sqlmock.NewRows([]string{"service_id", "name", "count", "revenue"}).
			AddRow(int64(10), "Haircut", 9, int64(27000)).
			AddRow(int64(11), "Coloring", 4, int64(32000)))

	repo := NewRepository(db)
	top, err := repo.TopServices(context.Background(), 1, from, to, domain.AnalyticsTopServicesLimit)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Haircut", top[0].ServiceName)
	assert.Equal(t, int64(32000), top[1].RevenueCents)
}
