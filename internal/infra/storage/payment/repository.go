package payment

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
	"business_id",
	"customer_id",
	"booking_id",
	"order_id",
	"amount_cents",
	"platform_fee_cents",
	"processor_fee_cents",
	"payout_cents",
	"refunded_cents",
	"currency",
	"provider_intent_id",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий онлайн-платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет платёж
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"business_id",
			"customer_id",
			"booking_id",
			"order_id",
			"amount_cents",
			"platform_fee_cents",
			"processor_fee_cents",
			"payout_cents",
			"currency",
			"provider_intent_id",
			"status",
		).
		Values(
			p.BusinessID,
			p.CustomerID,
			p.BookingID,
			p.OrderID,
			p.AmountCents,
			p.PlatformFeeCents,
			p.ProcessorFeeCents,
			p.PayoutCents,
			p.Currency,
			p.ProviderIntentID,
			p.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrDuplicateIntent
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// GetByIntentID получает платёж по ID PaymentIntent
func (r *Repository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	return r.get(ctx, "GetByIntentID", squirrel.Eq{"provider_intent_id": intentID})
}

// GetByBookingID получает последний платёж за бронирование
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.get(ctx, "GetByBookingID", squirrel.Eq{"booking_id": bookingID})
}

// GetByOrderID получает последний платёж за заказ
func (r *Repository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error) {
	return r.get(ctx, "GetByOrderID", squirrel.Eq{"order_id": orderID})
}

// get в транзакции блокирует строку (FOR UPDATE)
func (r *Repository) get(ctx context.Context, method string, where squirrel.Eq) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("payments").
		Where(where).
		OrderBy("id DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %w", ErrScanRow, method, err)
	}

	return p, nil
}

// UpdateStatus обновляет статус платежа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentRecordStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status": status,
	})
}

// SetRefunded сохраняет возвращённую сумму и статус
func (r *Repository) SetRefunded(ctx context.Context, id int64, refundedCents int64, status domain.PaymentRecordStatus) error {
	return r.update(ctx, "SetRefunded", id, map[string]interface{}{
		"refunded_cents": refundedCents,
		"status":         status,
	})
}

func (r *Repository) update(ctx context.Context, method string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// MarkEventProcessed запоминает событие вебхука
// Возвращает false, если событие уже было обработано
func (r *Repository) MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("processed_webhook_events").
		Columns("event_id", "event_type").
		Values(eventID, eventType).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkEventProcessed - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkEventProcessed - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkEventProcessed - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&p.CustomerID,
		&p.BookingID,
		&p.OrderID,
		&p.AmountCents,
		&p.PlatformFeeCents,
		&p.ProcessorFeeCents,
		&p.PayoutCents,
		&p.RefundedCents,
		&p.Currency,
		&p.ProviderIntentID,
		&p.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
