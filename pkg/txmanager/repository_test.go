package txmanager_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/pgerr"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/txmanager"
)

var errUseCaseInternal = errors.New("usecase: internal error")

// Конфликт сериализации приходит из запроса репозитория, а use case оборачивает ошибку через %v
func TestDoSerializable_RetriesConflictFromRepository(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := dbmetrics.Wrap(sqlDB, nil)
	manager := txmanager.NewTransactionManager(db)
	repo := bookingRepo.NewRepository(db)

	conflict := &pq.Error{
		Code:    pgerr.SerializationFailure,
		Message: "could not serialize access due to concurrent update",
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id = \\$1 FOR UPDATE").WithArgs(int64(7)).WillReturnError(conflict)
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id = \\$1 FOR UPDATE").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	attempts := 0
	err = manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if _, err := repo.GetByID(ctx, 7); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return err
			}
			return fmt.Errorf("%w: failed to get booking: %v", errUseCaseInternal, err)
		}
		return nil
	})

	assert.Equal(t, 2, attempts)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryErrorKeepsDriverError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := bookingRepo.NewRepository(dbmetrics.Wrap(sqlDB, nil))
	mock.ExpectQuery("FROM bookings WHERE id = \\$1").WillReturnError(&pq.Error{Code: pgerr.SerializationFailure})

	_, err = repo.GetByID(context.Background(), 7)

	require.Error(t, err)
	assert.ErrorIs(t, err, bookingRepo.ErrScanRow)
	assert.True(t, txmanager.IsSerializationFailure(err))
}
