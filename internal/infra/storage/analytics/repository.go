package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/psqlbuilder"
)

// Статусы записей, которые не учитываются в клиентах, топе услуг и дневной статистике
var excludedStatuses = []string{
	string(domain.StatusCancelledByUser),
	string(domain.StatusCancelledByCompany),
	string(domain.StatusExpired),
}

// Repository агрегирующие запросы для аналитики бизнеса
// Даты from и to включительно: для бронирований сравнивается booking_date,
// для платежей, заказов и отзывов - created_at в полуинтервале [from, to+1 день)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аналитики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// BookingsByStatus количество бронирований по статусам
func (r *Repository) BookingsByStatus(ctx context.Context, businessID int64, from, to time.Time) (map[domain.BookingStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(bookingDateRange(from, to)).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: BookingsByStatus - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: BookingsByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[domain.BookingStatus]int)
	for rows.Next() {
		var status domain.BookingStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: BookingsByStatus - scan row: %w", ErrScanRow, err)
		}
		result[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: BookingsByStatus - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// PaymentTotals суммы по успешным платежам за вычетом возвратов
func (r *Repository) PaymentTotals(ctx context.Context, businessID int64, from, to time.Time) (*domain.PaymentTotals, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(SUM(amount_cents - refunded_cents), 0)",
		"COALESCE(SUM(platform_fee_cents), 0)",
		"COALESCE(SUM(processor_fee_cents), 0)",
		"COALESCE(SUM(payout_cents), 0)",
	).
		From("payments").
		Where(squirrel.Eq{
			"business_id": businessID,
			"status":      []string{string(domain.PaymentRecordSucceeded), string(domain.PaymentRecordPartiallyRefunded)},
		}).
		Where(createdAtRange(from, to)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: PaymentTotals - build select query: %w", ErrBuildQuery, err)
	}

	var totals domain.PaymentTotals
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&totals.GrossCents,
		&totals.PlatformFeeCents,
		&totals.ProcessorFeeCents,
		&totals.PayoutCents,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: PaymentTotals - scan: %w", ErrScanRow, err)
	}

	return &totals, nil
}

// DiscountsTotal сумма скидок по действующим использованиям промоакций бизнеса
func (r *Repository) DiscountsTotal(ctx context.Context, businessID int64, from, to time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(pr.discount_cents), 0)").
		From("promotion_redemptions pr").
		Join("promotions p ON p.id = pr.promotion_id").
		Where(squirrel.Eq{"p.business_id": businessID, "pr.released_at": nil}).
		Where(squirrel.GtOrEq{"pr.created_at": from}).
		Where(squirrel.Lt{"pr.created_at": nextDay(to)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DiscountsTotal - build select query: %w", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: DiscountsTotal - scan: %w", ErrScanRow, err)
	}

	return total, nil
}

// OrderRevenue выручка по оплаченным заказам товаров
func (r *Repository) OrderRevenue(ctx context.Context, businessID int64, from, to time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(total_cents), 0)").
		From("orders").
		Where(squirrel.Eq{"business_id": businessID, "payment_status": domain.PaymentPaid}).
		Where(createdAtRange(from, to)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: OrderRevenue - build select query: %w", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: OrderRevenue - scan: %w", ErrScanRow, err)
	}

	return total, nil
}

// CustomerCounts уникальные клиенты за период и вернувшиеся среди них
// Вернувшийся: больше одной записи за период или запись до начала периода
func (r *Repository) CustomerCounts(ctx context.Context, businessID int64, from, to time.Time) (*domain.CustomerCounts, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	perCustomer := psqlbuilder.Select("customer_id", "COUNT(*) AS n").
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(bookingDateRange(from, to)).
		Where(squirrel.Expr("status <> ALL(?)", pq.Array(excludedStatuses))).
		GroupBy("customer_id")

	query, args, err := psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr(
			"COUNT(*) FILTER (WHERE c.n > 1 OR EXISTS ("+
				"SELECT 1 FROM bookings p WHERE p.business_id = ? AND p.customer_id = c.customer_id"+
				" AND p.booking_date < ? AND p.status <> ALL(?)))",
			businessID, from, pq.Array(excludedStatuses),
		)).
		FromSelect(perCustomer, "c").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CustomerCounts - build select query: %w", ErrBuildQuery, err)
	}

	var counts domain.CustomerCounts
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&counts.Unique, &counts.Returning); err != nil {
		return nil, fmt.Errorf("%w: CustomerCounts - scan: %w", ErrScanRow, err)
	}

	return &counts, nil
}

// ReviewStats средняя оценка и количество отзывов за период
func (r *Repository) ReviewStats(ctx context.Context, businessID int64, from, to time.Time) (float64, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(AVG(rating), 0)", "COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(createdAtRange(from, to)).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: ReviewStats - build select query: %w", ErrBuildQuery, err)
	}

	var average float64
	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&average, &count); err != nil {
		return 0, 0, fmt.Errorf("%w: ReviewStats - scan: %w", ErrScanRow, err)
	}

	return average, count, nil
}

// TopServices самые популярные услуги по числу записей
// Выручка считается по завершённым записям
func (r *Repository) TopServices(ctx context.Context, businessID int64, from, to time.Time, limit int) ([]domain.ServiceStat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"service_id",
		"MAX(service_name)",
		"COUNT(*)",
	).
		Column(squirrel.Expr("COALESCE(SUM(total_cents) FILTER (WHERE status = ?), 0)", domain.StatusCompleted)).
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(bookingDateRange(from, to)).
		Where(squirrel.Expr("status <> ALL(?)", pq.Array(excludedStatuses))).
		GroupBy("service_id").
		OrderBy("COUNT(*) DESC", "service_id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TopServices - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TopServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.ServiceStat, 0, limit)
	for rows.Next() {
		var s domain.ServiceStat
		if err := rows.Scan(&s.ServiceID, &s.ServiceName, &s.Bookings, &s.RevenueCents); err != nil {
			return nil, fmt.Errorf("%w: TopServices - scan row: %w", ErrScanRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TopServices - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Daily число записей и выручка завершённых записей по дням
func (r *Repository) Daily(ctx context.Context, businessID int64, from, to time.Time) ([]domain.DailyStat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_date", "COUNT(*)").
		Column(squirrel.Expr("COALESCE(SUM(total_cents) FILTER (WHERE status = ?), 0)", domain.StatusCompleted)).
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(bookingDateRange(from, to)).
		Where(squirrel.Expr("status <> ALL(?)", pq.Array(excludedStatuses))).
		GroupBy("booking_date").
		OrderBy("booking_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Daily - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Daily - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.DailyStat, 0)
	for rows.Next() {
		var d domain.DailyStat
		if err := rows.Scan(&d.Date, &d.Bookings, &d.RevenueCents); err != nil {
			return nil, fmt.Errorf("%w: Daily - scan row: %w", ErrScanRow, err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Daily - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func bookingDateRange(from, to time.Time) squirrel.And {
	return squirrel.And{
		squirrel.GtOrEq{"booking_date": from},
		squirrel.LtOrEq{"booking_date": to},
	}
}

func createdAtRange(from, to time.Time) squirrel.And {
	return squirrel.And{
		squirrel.GtOrEq{"created_at": from},
		squirrel.Lt{"created_at": nextDay(to)},
	}
}

func nextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}
