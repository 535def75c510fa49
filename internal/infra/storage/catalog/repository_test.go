package catalog

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

func serviceRow(id int64, name string, active bool) []driver.Value {
	now := time.Now()
	return []driver.Value{id, int64(1), name, nil, nil, 45, 15, int64(3500), "usd", active, now, now}
}

func TestListByBusiness_ActiveOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM services WHERE business_id = $1 AND is_active = $2 ORDER BY name ASC, id ASC")).
		WithArgs(int64(1), true).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(serviceRow(3, "Haircut", true)...))

	repo := NewRepository(db)
	services, err := repo.ListByBusiness(context.Background(), 1, false)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, 60, services[0].TotalMinutes())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByIDs_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	services, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, services)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE services").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	err = repo.Update(context.Background(), &domain.Service{ID: 9})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
