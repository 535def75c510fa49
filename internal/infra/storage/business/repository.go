package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/pgerr"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"owner_id",
	"name",
	"slug",
	"description",
	"category",
	"address",
	"city",
	"phone",
	"email",
	"timezone",
	"cover_image_key",
	"stripe_account_id",
	"charges_enabled",
	"payouts_enabled",
	"rating_average",
	"rating_count",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий бизнесов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бизнес
func (r *Repository) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("businesses").
		Columns(
			"owner_id",
			"name",
			"slug",
			"description",
			"category",
			"address",
			"city",
			"phone",
			"email",
			"timezone",
			"is_active",
		).
		Values(
			b.OwnerID,
			b.Name,
			b.Slug,
			b.Description,
			b.Category,
			b.Address,
			b.City,
			b.Phone,
			b.Email,
			b.Timezone,
			b.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бизнес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает бизнес по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// GetByStripeAccountID получает бизнес по подключённому аккаунту Stripe
func (r *Repository) GetByStripeAccountID(ctx context.Context, accountID string) (*domain.Business, error) {
	return r.getOne(ctx, "GetByStripeAccountID", squirrel.Eq{"stripe_account_id": accountID})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("businesses").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	b, err := scanBusiness(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %w", ErrScanRow, method, err)
	}

	return b, nil
}

// Search ищет активные бизнесы, сортировка по рейтингу, затем по названию
func (r *Repository) Search(ctx context.Context, filter domain.BusinessSearchFilter) ([]*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("businesses").
		Where(squirrel.Eq{"is_active": true})

	if filter.City != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("LOWER(city) = ?", strings.ToLower(*filter.City)))
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Query != nil && *filter.Query != "" {
		pattern := "%" + escapeLike(*filter.Query) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	query, args, err := selectBuilder.
		OrderBy("rating_average DESC", "name ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Business, 0)
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %w", ErrScanRow, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Update обновляет профиль бизнеса
func (r *Repository) Update(ctx context.Context, b *domain.Business) error {
	return r.update(ctx, "Update", b.ID, map[string]interface{}{
		"name":        b.Name,
		"description": b.Description,
		"category":    b.Category,
		"address":     b.Address,
		"city":        b.City,
		"phone":       b.Phone,
		"email":       b.Email,
		"timezone":    b.Timezone,
		"is_active":   b.IsActive,
	})
}

// SetStripeAccount сохраняет ID подключённого аккаунта
func (r *Repository) SetStripeAccount(ctx context.Context, id int64, accountID string) error {
	return r.update(ctx, "SetStripeAccount", id, map[string]interface{}{
		"stripe_account_id": accountID,
	})
}

// SetCoverImage сохраняет ключ обложки
func (r *Repository) SetCoverImage(ctx context.Context, id int64, key string) error {
	return r.update(ctx, "SetCoverImage", id, map[string]interface{}{
		"cover_image_key": key,
	})
}

// UpdateStripeStatus обновляет флаги возможности принимать платежи и получать выплаты
func (r *Repository) UpdateStripeStatus(ctx context.Context, status domain.ConnectedAccountStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("businesses").
		Set("charges_enabled", status.ChargesEnabled).
		Set("payouts_enabled", status.PayoutsEnabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"stripe_account_id": status.AccountID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStripeStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffected(ctx, executor, "UpdateStripeStatus", query, args)
}

// RefreshRating пересчитывает денормализованный рейтинг по отзывам
func (r *Repository) RefreshRating(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("businesses").
		Set("rating_average", squirrel.Expr("(SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0) FROM reviews WHERE business_id = ?)", id)).
		Set("rating_count", squirrel.Expr("(SELECT COUNT(*) FROM reviews WHERE business_id = ?)", id)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RefreshRating - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffected(ctx, executor, "RefreshRating", query, args)
}

func (r *Repository) update(ctx context.Context, method string, id int64, fields map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("businesses").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, method, err)
	}

	return r.execAffected(ctx, executor, method, query, args)
}

func (r *Repository) execAffected(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsUniqueViolation(err) {
		return ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBusinessNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row rowScanner) (*domain.Business, error) {
	var b domain.Business
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.Name,
		&b.Slug,
		&b.Description,
		&b.Category,
		&b.Address,
		&b.City,
		&b.Phone,
		&b.Email,
		&b.Timezone,
		&b.CoverImageKey,
		&b.StripeAccountID,
		&b.ChargesEnabled,
		&b.PayoutsEnabled,
		&b.RatingAverage,
		&b.RatingCount,
		&b.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
