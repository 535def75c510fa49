package staff

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
)

var columns = []string{
	"id",
	"business_id",
	"user_id",
	"name",
	"title",
	"email",
	"phone",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий мастеров, их расписаний и выходных
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает мастера вместе со списком услуг
// Вызывать внутри транзакции, чтобы мастер и услуги сохранились атомарно
func (r *Repository) Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff").
		Columns("business_id", "user_id", "name", "title", "email", "phone", "is_active").
		Values(s.BusinessID, s.UserID, s.Name, s.Title, s.Email, s.Phone, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if err := r.ReplaceServices(ctx, s.ID, s.ServiceIDs); err != nil {
		return nil, err
	}

	return s, nil
}

// GetByID получает мастера с его услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %w", ErrScanRow, err)
	}

	if err := r.attachServices(ctx, []*domain.Staff{s}); err != nil {
		return nil, err
	}

	return s, nil
}

// ListByBusiness получает мастеров бизнеса
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, includeInactive bool) ([]*domain.Staff, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("staff").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("id ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	return r.list(ctx, "ListByBusiness", selectBuilder)
}

// ListForService получает активных мастеров бизнеса, выполняющих услугу, по возрастанию ID
func (r *Repository) ListForService(ctx context.Context, businessID, serviceID int64) ([]*domain.Staff, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("staff").
		Where(squirrel.Eq{"business_id": businessID, "is_active": true}).
		Where(squirrel.Expr("EXISTS (SELECT 1 FROM staff_services ss WHERE ss.staff_id = staff.id AND ss.service_id = ?)", serviceID)).
		OrderBy("id ASC")

	return r.list(ctx, "ListForService", selectBuilder)
}

func (r *Repository) list(ctx context.Context, method string, selectBuilder squirrel.SelectBuilder) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}

	result := make([]*domain.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}
	rows.Close()

	if err := r.attachServices(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// attachServices заполняет ServiceIDs одним запросом на всех мастеров
func (r *Repository) attachServices(ctx context.Context, members []*domain.Staff) error {
	if len(members) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Staff, len(members))
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		m.ServiceIDs = make([]int64, 0)
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	query, args, err := psqlbuilder.Select("staff_id", "service_id").
		From("staff_services").
		Where(squirrel.Eq{"staff_id": ids}).
		OrderBy("staff_id ASC", "service_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachServices - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staffID, serviceID int64
		if err := rows.Scan(&staffID, &serviceID); err != nil {
			return fmt.Errorf("%w: attachServices - scan row: %w", ErrScanRow, err)
		}
		if m, ok := byID[staffID]; ok {
			m.ServiceIDs = append(m.ServiceIDs, serviceID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachServices - rows error: %w", ErrScanRow, err)
	}

	return nil
}

// Update обновляет данные мастера (без списка услуг)
func (r *Repository) Update(ctx context.Context, s *domain.Staff) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set("user_id", s.UserID).
		Set("name", s.Name).
		Set("title", s.Title).
		Set("email", s.Email).
		Set("phone", s.Phone).
		Set("is_active", s.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

// ReplaceServices заменяет список услуг мастера
func (r *Repository) ReplaceServices(ctx context.Context, staffID int64, serviceIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_services").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build delete query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - execute delete: %w", ErrExecQuery, err)
	}

	if len(serviceIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("staff_services").Columns("staff_id", "service_id")
	for _, id := range serviceIDs {
		insertBuilder = insertBuilder.Values(staffID, id)
	}
	query, args, err = insertBuilder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build insert query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetSchedule получает недельное расписание мастера
func (r *Repository) GetSchedule(ctx context.Context, staffID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "is_open", "open_time", "close_time").
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := &domain.WeeklySchedule{StaffID: staffID, Days: make([]domain.DaySchedule, 0, 7)}
	for rows.Next() {
		var day domain.DaySchedule
		var weekday int
		if err := rows.Scan(&weekday, &day.IsOpen, &day.OpenTime, &day.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetSchedule - scan row: %w", ErrScanRow, err)
		}
		day.Weekday = time.Weekday(weekday)
		schedule.Days = append(schedule.Days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - rows error: %w", ErrScanRow, err)
	}

	return schedule, nil
}

// ReplaceSchedule заменяет расписание мастера целиком
func (r *Repository) ReplaceSchedule(ctx context.Context, schedule *domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_schedules").
		Where(squirrel.Eq{"staff_id": schedule.StaffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - build delete query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - execute delete: %w", ErrExecQuery, err)
	}

	if len(schedule.Days) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("staff_schedules").
		Columns("staff_id", "weekday", "is_open", "open_time", "close_time")
	for _, d := range schedule.Days {
		insertBuilder = insertBuilder.Values(schedule.StaffID, int(d.Weekday), d.IsOpen, d.OpenTime, d.CloseTime)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - build insert query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// AddTimeOff добавляет выходной мастера
func (r *Repository) AddTimeOff(ctx context.Context, t *domain.TimeOff) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_time_off").
		Columns("staff_id", "date", "reason").
		Values(t.StaffID, t.Date, t.Reason).
		Suffix("ON CONFLICT (staff_id, date) DO NOTHING RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddTimeOff - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeOffExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: AddTimeOff - execute insert: %w", ErrExecQuery, err)
	}

	return t, nil
}

// HasTimeOff проверяет, что у мастера выходной в указанную дату
func (r *Repository) HasTimeOff(ctx context.Context, staffID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("staff_time_off").
		Where(squirrel.Eq{"staff_id": staffID, "date": date}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasTimeOff - build select query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasTimeOff - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// ListTimeOff получает выходные мастера начиная с даты from
func (r *Repository) ListTimeOff(ctx context.Context, staffID int64, from time.Time) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "date", "reason", "created_at").
		From("staff_time_off").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.TimeOff, 0)
	for rows.Next() {
		var t domain.TimeOff
		if err := rows.Scan(&t.ID, &t.StaffID, &t.Date, &t.Reason, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListTimeOff - scan row: %w", ErrScanRow, err)
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// DeleteTimeOff удаляет выходной мастера
func (r *Repository) DeleteTimeOff(ctx context.Context, staffID, timeOffID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_time_off").
		Where(squirrel.Eq{"id": timeOffID, "staff_id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTimeOffNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*domain.Staff, error) {
	var s domain.Staff
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.BusinessID,
		&s.UserID,
		&s.Name,
		&s.Title,
		&s.Email,
		&s.Phone,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
