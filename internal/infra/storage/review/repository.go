package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/pgerr"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"booking_id",
	"business_id",
	"staff_id",
	"customer_id",
	"rating",
	"comment",
	"reply",
	"replied_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв (один на бронирование)
func (r *Repository) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("booking_id", "business_id", "staff_id", "customer_id", "rating", "comment").
		Values(rv.BookingID, rv.BusinessID, rv.StaffID, rv.CustomerID, rv.Rating, rv.Comment).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrReviewExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return rv, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	rv, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %w", ErrScanRow, err)
	}

	return rv, nil
}

// ListByBusiness получает отзывы бизнеса, сначала новые
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, limit, offset int) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("reviews").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %w", ErrScanRow, err)
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Summary считает среднюю оценку и распределение по звёздам
func (r *Repository) Summary(ctx context.Context, businessID int64) (*domain.ReviewSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rating", "COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{"business_id": businessID}).
		GroupBy("rating").
		OrderBy("rating ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	summary := &domain.ReviewSummary{Distribution: make(map[int]int, domain.MaxRating)}
	for star := domain.MinRating; star <= domain.MaxRating; star++ {
		summary.Distribution[star] = 0
	}

	var total int
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("%w: Summary - scan row: %w", ErrScanRow, err)
		}
		summary.Distribution[rating] = count
		summary.Count += count
		total += rating * count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Summary - rows error: %w", ErrScanRow, err)
	}

	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}

	return summary, nil
}

// Reply сохраняет ответ бизнеса; ответить можно только один раз
func (r *Repository) Reply(ctx context.Context, id int64, reply string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews").
		Set("reply", reply).
		Set("replied_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "reply": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reply - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reply - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reply - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyReplied
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var rv domain.Review
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rv.ID,
		&rv.BookingID,
		&rv.BusinessID,
		&rv.StaffID,
		&rv.CustomerID,
		&rv.Rating,
		&rv.Comment,
		&rv.Reply,
		&rv.RepliedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rv.CreatedAt = createdAt.Time
	rv.UpdatedAt = updatedAt.Time

	return &rv, nil
}
