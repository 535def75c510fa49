package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

var columns = []string{
	"id",
	"customer_id",
	"business_id",
	"service_id",
	"staff_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"staff_name",
	"price_cents",
	"discount_cents",
	"total_cents",
	"currency",
	"promotion_id",
	"payment_status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"reminder_sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"business_id",
			"service_id",
			"staff_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"staff_name",
			"price_cents",
			"discount_cents",
			"total_cents",
			"currency",
			"promotion_id",
			"payment_status",
			"notes",
		).
		Values(
			booking.CustomerID,
			booking.BusinessID,
			booking.ServiceID,
			booking.StaffID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.ServiceName,
			booking.StaffName,
			booking.PriceCents,
			booking.DiscountCents,
			booking.TotalCents,
			booking.Currency,
			booking.PromotionID,
			booking.PaymentStatus,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает бронирования клиента, сначала новые
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.list(ctx, "GetByCustomerID", selectBuilder)
}

// GetByBusinessWithFilter получает бронирования бизнеса с фильтрацией
//
// Для одной даты результат сортируется по времени начала, иначе сначала новые.
// Если запрос выполняется в транзакции и фильтр на одну дату, строки блокируются (FOR UPDATE):
// так create/reschedule сериализуют проверку пересечений по мастеру
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if len(filter.StaffIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": filter.StaffIDs})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	if filter.IsSingleDay() {
		selectBuilder = selectBuilder.OrderBy("start_time ASC", "staff_id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.IsSingleDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "GetByBusinessWithFilter", selectBuilder)
}

// ListExpiredUnpaid получает бронирования, ожидающие оплату, созданные раньше before
func (r *Repository) ListExpiredUnpaid(ctx context.Context, before time.Time, limit int) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusPending, "payment_status": domain.PaymentPending}).
		Where(squirrel.Lt{"created_at": before}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))

	return r.list(ctx, "ListExpiredUnpaid", selectBuilder)
}

// ListReminderCandidates получает подтвержденные бронирования без напоминания в диапазоне дат
// Точное время до начала проверяется вызывающим кодом в часовом поясе бизнеса
func (r *Repository) ListReminderCandidates(ctx context.Context, fromDate, toDate time.Time) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusConfirmed, "reminder_sent_at": nil}).
		Where(squirrel.GtOrEq{"booking_date": fromDate}).
		Where(squirrel.LtOrEq{"booking_date": toDate}).
		OrderBy("booking_date ASC", "start_time ASC")

	return r.list(ctx, "ListReminderCandidates", selectBuilder)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status": status,
	})
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	return r.update(ctx, "Cancel", id, map[string]interface{}{
		"status":              status,
		"cancellation_reason": reason,
		"cancelled_at":        squirrel.Expr("NOW()"),
	})
}

// Reschedule переносит бронирование на другую дату и время
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, start types.TimeString) error {
	return r.update(ctx, "Reschedule", id, map[string]interface{}{
		"booking_date":     date,
		"start_time":       start,
		"reminder_sent_at": nil,
	})
}

// SetPayment обновляет статус оплаты и статус бронирования
func (r *Repository) SetPayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, status domain.BookingStatus) error {
	return r.update(ctx, "SetPayment", id, map[string]interface{}{
		"payment_status": paymentStatus,
		"status":         status,
	})
}

// SetPaymentStatus обновляет только статус оплаты
func (r *Repository) SetPaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error {
	return r.update(ctx, "SetPaymentStatus", id, map[string]interface{}{
		"payment_status": paymentStatus,
	})
}

// MarkReminderSent отмечает, что напоминание отправлено
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	return r.update(ctx, "MarkReminderSent", id, map[string]interface{}{
		"reminder_sent_at": at,
	})
}

func (r *Repository) update(ctx context.Context, method string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, method string, selectBuilder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.BusinessID,
		&booking.ServiceID,
		&booking.StaffID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.ServiceName,
		&booking.StaffName,
		&booking.PriceCents,
		&booking.DiscountCents,
		&booking.TotalCents,
		&booking.Currency,
		&booking.PromotionID,
		&booking.PaymentStatus,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.ReminderSentAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
