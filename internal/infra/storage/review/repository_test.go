package review

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

func TestCreate_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO reviews").WillReturnError(&pq.Error{Code: "23505"})

	repo := NewRepository(db)
	_, err = repo.Create(context.Background(), &domain.Review{BookingID: 1, Rating: 5})
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT rating, COUNT(*) FROM reviews WHERE business_id = $1 GROUP BY rating ORDER BY rating ASC")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).
			AddRow(3, 1).
			AddRow(5, 3))

	repo := NewRepository(db)
	summary, err := repo.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 0.001)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 3}, summary.Distribution)
}

func TestSummary_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM reviews").WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}))

	repo := NewRepository(db)
	summary, err := repo.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.Average)
}

func TestReply_AlreadyReplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reviews SET reply = $1, replied_at = NOW(), updated_at = NOW() WHERE id = $2 AND reply IS NULL")).
		WithArgs("thanks", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	assert.ErrorIs(t, repo.Reply(context.Background(), 3, "thanks"), ErrAlreadyReplied)
}
