package settings

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
)

func settingsRow(id, businessID int64, serviceID interface{}, step int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(columns).
		AddRow(id, businessID, serviceID, step, 30, 120, 12, true, now, now)
}

func TestGetWithHierarchy_ServiceLevel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_settings WHERE business_id = $1 AND service_id = $2")).
		WithArgs(int64(1), int64(5)).
		WillReturnRows(settingsRow(10, 1, int64(5), 20))

	repo := NewRepository(db)
	s, err := repo.GetWithHierarchy(context.Background(), 1, ptr.Ptr(int64(5)))
	require.NoError(t, err)

	assert.Equal(t, int64(10), s.ID)
	assert.Equal(t, 20, s.SlotStepMinutes)
	require.NotNil(t, s.ServiceID)
	assert.Equal(t, int64(5), *s.ServiceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWithHierarchy_FallsBackToBusinessLevel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("service_id = $2")).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery(regexp.QuoteMeta("service_id IS NULL")).
		WithArgs(int64(1)).
		WillReturnRows(settingsRow(3, 1, nil, 30))

	repo := NewRepository(db)
	s, err := repo.GetWithHierarchy(context.Background(), 1, ptr.Ptr(int64(5)))
	require.NoError(t, err)

	assert.True(t, s.IsGlobal())
	assert.Equal(t, 30, s.SlotStepMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWithHierarchy_Defaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM booking_settings").WillReturnRows(sqlmock.NewRows(columns))

	repo := NewRepository(db)
	s, err := repo.GetWithHierarchy(context.Background(), 7, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultBookingSettings(7), s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO booking_settings .* ON CONFLICT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(4), now, now))

	repo := NewRepository(db)
	s, err := repo.Upsert(context.Background(), &domain.BookingSettings{BusinessID: 1, SlotStepMinutes: 15})
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM booking_settings").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	err = repo.Delete(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}
