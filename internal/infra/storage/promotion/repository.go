package promotion

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/pgerr"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"business_id",
	"code",
	"name",
	"description",
	"type",
	"scope",
	"value",
	"target_ids",
	"bundle_items",
	"buy_quantity",
	"get_quantity",
	"get_discount_percent",
	"min_order_cents",
	"max_discount_cents",
	"usage_limit",
	"per_customer_limit",
	"usage_count",
	"first_time_only",
	"starts_at",
	"ends_at",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий промоакций и их использований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промоакций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает промоакцию
func (r *Repository) Create(ctx context.Context, p *domain.Promotion) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	bundle, err := json.Marshal(bundleItems(p.BundleItems))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal bundle items: %w", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("promotions").
		Columns(
			"business_id",
			"code",
			"name",
			"description",
			"type",
			"scope",
			"value",
			"target_ids",
			"bundle_items",
			"buy_quantity",
			"get_quantity",
			"get_discount_percent",
			"min_order_cents",
			"max_discount_cents",
			"usage_limit",
			"per_customer_limit",
			"first_time_only",
			"starts_at",
			"ends_at",
			"is_active",
		).
		Values(
			p.BusinessID,
			p.Code,
			p.Name,
			p.Description,
			p.Type,
			p.Scope,
			p.Value,
			pq.Array(targetIDs(p.TargetIDs)),
			string(bundle),
			p.BuyQuantity,
			p.GetQuantity,
			p.GetDiscountPercent,
			p.MinOrderCents,
			p.MaxDiscountCents,
			p.UsageLimit,
			p.PerCustomerLimit,
			p.FirstTimeOnly,
			p.StartsAt,
			p.EndsAt,
			p.IsActive,
		).
		Suffix("RETURNING id, usage_count, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.UsageCount, &p.CreatedAt, &p.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrCodeTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает промоакцию по ID
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	return r.get(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает промоакцию бизнеса по коду (код нормализуется)
// В транзакции строка блокируется (FOR UPDATE), чтобы счётчик использований не разошёлся
func (r *Repository) GetByCode(ctx context.Context, businessID int64, code string) (*domain.Promotion, error) {
	return r.get(ctx, "GetByCode", squirrel.Eq{"business_id": businessID, "code": domain.NormalizeCode(code)})
}

func (r *Repository) get(ctx context.Context, method string, where squirrel.Eq) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("promotions").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	p, err := scanPromotion(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan promotion: %w", ErrScanRow, method, err)
	}

	return p, nil
}

// ListByBusiness получает промоакции бизнеса, сначала новые
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("promotions").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at DESC", "id DESC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Promotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %w", ErrScanRow, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Update обновляет промоакцию (счётчик использований не меняется)
func (r *Repository) Update(ctx context.Context, p *domain.Promotion) error {
	bundle, err := json.Marshal(bundleItems(p.BundleItems))
	if err != nil {
		return fmt.Errorf("%w: Update - marshal bundle items: %w", ErrBuildQuery, err)
	}

	err = r.update(ctx, "Update", p.ID, map[string]interface{}{
		"code":                 p.Code,
		"name":                 p.Name,
		"description":          p.Description,
		"type":                 p.Type,
		"scope":                p.Scope,
		"value":                p.Value,
		"target_ids":           pq.Array(targetIDs(p.TargetIDs)),
		"bundle_items":         string(bundle),
		"buy_quantity":         p.BuyQuantity,
		"get_quantity":         p.GetQuantity,
		"get_discount_percent": p.GetDiscountPercent,
		"min_order_cents":      p.MinOrderCents,
		"max_discount_cents":   p.MaxDiscountCents,
		"usage_limit":          p.UsageLimit,
		"per_customer_limit":   p.PerCustomerLimit,
		"first_time_only":      p.FirstTimeOnly,
		"starts_at":            p.StartsAt,
		"ends_at":              p.EndsAt,
		"is_active":            p.IsActive,
	})
	if pgerr.IsUniqueViolation(err) {
		return ErrCodeTaken
	}
	return err
}

// Deactivate выключает промоакцию
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	return r.update(ctx, "Deactivate", id, map[string]interface{}{"is_active": false})
}

// IncrementUsage увеличивает счётчик использований
func (r *Repository) IncrementUsage(ctx context.Context, id int64) error {
	return r.update(ctx, "IncrementUsage", id, map[string]interface{}{
		"usage_count": squirrel.Expr("usage_count + 1"),
	})
}

// DecrementUsage уменьшает счётчик использований (не ниже нуля)
func (r *Repository) DecrementUsage(ctx context.Context, id int64) error {
	return r.update(ctx, "DecrementUsage", id, map[string]interface{}{
		"usage_count": squirrel.Expr("GREATEST(usage_count - 1, 0)"),
	})
}

func (r *Repository) update(ctx context.Context, method string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promotions").
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrPromotionNotFound
	}

	return nil
}

// CreateRedemption сохраняет использование промоакции
func (r *Repository) CreateRedemption(ctx context.Context, red *domain.Redemption) (*domain.Redemption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("promotion_redemptions").
		Columns("promotion_id", "customer_id", "booking_id", "order_id", "discount_cents").
		Values(red.PromotionID, red.CustomerID, red.BookingID, red.OrderID, red.DiscountCents).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRedemption - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&red.ID, &red.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateRedemption - execute insert: %w", ErrExecQuery, err)
	}

	return red, nil
}

// ReleaseForBooking отменяет использования промоакций записью и уменьшает их счётчики
// Возвращает ID промоакций, использования которых были отменены
func (r *Repository) ReleaseForBooking(ctx context.Context, bookingID int64) ([]int64, error) {
	return r.release(ctx, "ReleaseForBooking", squirrel.Eq{"booking_id": bookingID})
}

// ReleaseForOrder отменяет использования промоакций заказом и уменьшает их счётчики
func (r *Repository) ReleaseForOrder(ctx context.Context, orderID int64) ([]int64, error) {
	return r.release(ctx, "ReleaseForOrder", squirrel.Eq{"order_id": orderID})
}

func (r *Repository) release(ctx context.Context, method string, where squirrel.Eq) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promotion_redemptions").
		Set("released_at", squirrel.Expr("NOW()")).
		Where(where).
		Where(squirrel.Eq{"released_at": nil}).
		Suffix("RETURNING promotion_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	released := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		released = append(released, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}
	rows.Close()

	for _, id := range released {
		if err := r.DecrementUsage(ctx, id); err != nil {
			return nil, err
		}
	}

	return released, nil
}

// CustomerUsage собирает историю клиента для проверки ограничений промоакции:
// число действующих использований и наличие прошлых покупок у бизнеса
func (r *Repository) CustomerUsage(ctx context.Context, promotionID, businessID, customerID int64) (domain.CustomerUsage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr(
			"(SELECT COUNT(*) FROM promotion_redemptions WHERE promotion_id = ? AND customer_id = ? AND released_at IS NULL)",
			promotionID, customerID,
		)).
		Column(squirrel.Expr(
			"(EXISTS (SELECT 1 FROM bookings WHERE business_id = ? AND customer_id = ? AND status = ?)"+
				" OR EXISTS (SELECT 1 FROM orders WHERE business_id = ? AND customer_id = ? AND payment_status = ?))",
			businessID, customerID, domain.StatusCompleted,
			businessID, customerID, domain.PaymentPaid,
		)).
		ToSql()
	if err != nil {
		return domain.CustomerUsage{}, fmt.Errorf("%w: CustomerUsage - build select query: %w", ErrBuildQuery, err)
	}

	var usage domain.CustomerUsage
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&usage.Redemptions, &usage.HasPriorPurchases); err != nil {
		return domain.CustomerUsage{}, fmt.Errorf("%w: CustomerUsage - scan: %w", ErrScanRow, err)
	}

	return usage, nil
}

func targetIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func bundleItems(items []domain.BundleItem) []domain.BundleItem {
	if items == nil {
		return []domain.BundleItem{}
	}
	return items
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPromotion(row rowScanner) (*domain.Promotion, error) {
	var p domain.Promotion
	var targets pq.Int64Array
	var bundle []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&p.Code,
		&p.Name,
		&p.Description,
		&p.Type,
		&p.Scope,
		&p.Value,
		&targets,
		&bundle,
		&p.BuyQuantity,
		&p.GetQuantity,
		&p.GetDiscountPercent,
		&p.MinOrderCents,
		&p.MaxDiscountCents,
		&p.UsageLimit,
		&p.PerCustomerLimit,
		&p.UsageCount,
		&p.FirstTimeOnly,
		&p.StartsAt,
		&p.EndsAt,
		&p.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.TargetIDs = []int64(targets)
	if p.TargetIDs == nil {
		p.TargetIDs = []int64{}
	}

	p.BundleItems = []domain.BundleItem{}
	if len(bundle) > 0 {
		if err := json.Unmarshal(bundle, &p.BundleItems); err != nil {
			return nil, fmt.Errorf("unmarshal bundle items: %w", err)
		}
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
