package staff

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	ListByBusiness(ctx context.Context, businessID int64, includeInactive bool) ([]*domain.Staff, error)
	ListForService(ctx context.Context, businessID, serviceID int64) ([]*domain.Staff, error)
	Update(ctx context.Context, s *domain.Staff) error
	ReplaceServices(ctx context.Context, staffID int64, serviceIDs []int64) error
	GetSchedule(ctx context.Context, staffID int64) (*domain.WeeklySchedule, error)
	ReplaceSchedule(ctx context.Context, schedule *domain.WeeklySchedule) error
	AddTimeOff(ctx context.Context, t *domain.TimeOff) (*domain.TimeOff, error)
	ListTimeOff(ctx context.Context, staffID int64, from time.Time) ([]*domain.TimeOff, error)
	DeleteTimeOff(ctx context.Context, staffID, timeOffID int64) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

// Now текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
