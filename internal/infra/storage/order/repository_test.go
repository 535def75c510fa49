package order

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

func TestCreate_WithItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(int64(11), int64(3), "Shampoo", int64(1500), 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(int64(11), int64(5), "Mask", int64(2500), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))

	repo := NewRepository(db)
	o, err := repo.Create(context.Background(), &domain.Order{
		BusinessID: 1,
		CustomerID: 100,
		Items: []domain.OrderItem{
			{ProductID: 3, ProductName: "Shampoo", UnitPriceCents: 1500, Quantity: 2},
			{ProductID: 5, ProductName: "Mask", UnitPriceCents: 2500, Quantity: 1},
		},
		SubtotalCents: 5500,
		TotalCents:    5500,
		Currency:      "usd",
		Status:        domain.OrderPending,
		PaymentStatus: domain.PaymentPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), o.ID)
	assert.Equal(t, int64(11), o.Items[1].OrderID)
	assert.Equal(t, int64(2), o.Items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE customer_id = $1 ORDER BY created_at DESC, id DESC")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(12), int64(1), int64(100), int64(1500), int64(0), int64(1500), "usd", nil, "paid", "paid", now, now).
			AddRow(int64(11), int64(1), int64(100), int64(5500), int64(550), int64(4950), "usd", int64(4), "pending", "pending", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items WHERE order_id IN ($1,$2) ORDER BY id ASC")).
		WithArgs(int64(12), int64(11)).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(int64(1), int64(11), int64(3), "Shampoo", int64(1500), 2).
			AddRow(int64(2), int64(11), int64(5), "Mask", int64(2500), 1).
			AddRow(int64(3), int64(12), int64(3), "Shampoo", int64(1500), 1))

	repo := NewRepository(db)
	orders, err := repo.ListByCustomer(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].Items, 1)
	assert.Len(t, orders[1].Items, 2)
	assert.Equal(t, domain.OrderPaid, orders[0].Status)
	assert.Equal(t, int64(4), *orders[1].PromotionID)
	assert.Equal(t, int64(3000), orders[1].Items[0].TotalCents())
}

func TestSetStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	err = repo.SetStatus(context.Background(), 1, domain.OrderPaid, domain.PaymentPaid)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
