package product

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/ptr"
)

func TestCreate_DuplicateSKU(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO products").
		WillReturnError(&pq.Error{Code: "23505"})

	repo := NewRepository(db)
	_, err = repo.Create(context.Background(), &domain.Product{BusinessID: 1, Name: "Shampoo", SKU: ptr.Ptr("SH-1")})
	assert.ErrorIs(t, err, ErrSKUTaken)
}

func TestListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id IN ($1,$2) ORDER BY id ASC")).
		WithArgs(int64(3), int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(3), int64(1), "Shampoo", nil, nil, int64(1500), "usd", 4, true, now, now).
			AddRow(int64(5), int64(1), "Mask", nil, "MK-1", int64(2500), "usd", 0, true, now, now))

	repo := NewRepository(db)
	products, err := repo.ListByIDs(context.Background(), []int64{3, 5})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[0].InStock(4))
	assert.False(t, products[1].InStock(1))
	assert.Equal(t, "MK-1", *products[1].SKU)
}

func TestListByIDs_Empty(t *testing.T) {
	repo := NewRepository(nil)
	products, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestDecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := regexp.QuoteMeta("UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW() WHERE id = $2 AND stock_quantity >= $3")

	mock.ExpectExec(query).
		WithArgs(2, int64(3), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).
		WithArgs(5, int64(3), 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	require.NoError(t, repo.DecrementStock(context.Background(), 3, 2))
	assert.ErrorIs(t, repo.DecrementStock(context.Background(), 3, 5), ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
