package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	staffRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/staff/models"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

// Service сервис управления мастерами, их расписанием и выходными
type Service struct {
	staffRepo    StaffRepository
	serviceRepo  ServiceRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		staffRepo:    staffRepo,
		serviceRepo:  serviceRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create добавляет мастера в бизнес
func (s *Service) Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Create: adding staff %q to business=%d by user=%d", req.Name, req.BusinessID, req.UserID)

	if _, err := access.RequireManager(ctx, s.businessRepo, req.BusinessID, req.UserID); err != nil {
		return nil, s.accessError("Create", err)
	}

	member := req.ToDomainStaff()
	if member.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.checkServices(ctx, "Create", req.BusinessID, member.ServiceIDs); err != nil {
		return nil, err
	}

	var created *domain.Staff
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.staffRepo.Create(ctx, member)
		return err
	})
	if err != nil {
		s.logger.Error("Create: failed to create staff: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created staff id=%d", created.ID)
	return models.FromDomainStaff(created), nil
}

// Update обновляет мастера
func (s *Service) Update(ctx context.Context, businessID, staffID int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Update: updating staff id=%d by user=%d", staffID, req.UserID)

	member, err := s.loadManaged(ctx, "Update", businessID, staffID, req.UserID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(member)
	if member.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.ServiceIDs != nil {
		if err := s.checkServices(ctx, "Update", businessID, member.ServiceIDs); err != nil {
			return nil, err
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.staffRepo.Update(ctx, member); err != nil {
			return err
		}
		if req.ServiceIDs != nil {
			return s.staffRepo.ReplaceServices(ctx, member.ID, member.ServiceIDs)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Update: failed to update staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaff(member), nil
}

// List получает мастеров бизнеса
// serviceID сужает список до мастеров, выполняющих услугу
func (s *Service) List(ctx context.Context, businessID int64, userID *int64, serviceID *int64, includeInactive bool) (*models.StaffListResponse, error) {
	business, err := access.LoadBusiness(ctx, s.businessRepo, businessID)
	if err != nil {
		return nil, s.accessError("List", err)
	}

	if includeInactive && (userID == nil || !business.IsManagedBy(*userID)) {
		includeInactive = false
	}

	var members []*domain.Staff
	if serviceID != nil {
		members, err = s.staffRepo.ListForService(ctx, businessID, *serviceID)
	} else {
		members, err = s.staffRepo.ListByBusiness(ctx, businessID, includeInactive)
	}
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaffList(members), nil
}

// GetSchedule получает недельное расписание мастера
func (s *Service) GetSchedule(ctx context.Context, businessID, staffID int64) (*models.ScheduleResponse, error) {
	if _, err := s.loadMember(ctx, "GetSchedule", businessID, staffID); err != nil {
		return nil, err
	}

	schedule, err := s.staffRepo.GetSchedule(ctx, staffID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// SetSchedule заменяет недельное расписание мастера
func (s *Service) SetSchedule(ctx context.Context, businessID, staffID int64, req *models.SetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SetSchedule: replacing schedule for staff id=%d by user=%d", staffID, req.UserID)

	if _, err := s.loadManaged(ctx, "SetSchedule", businessID, staffID, req.UserID); err != nil {
		return nil, err
	}

	schedule, err := buildSchedule(staffID, req.Days)
	if err != nil {
		s.logger.Warn("SetSchedule: validation failed for staff id=%d: %v", staffID, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.staffRepo.ReplaceSchedule(ctx, schedule)
	})
	if err != nil {
		s.logger.Error("SetSchedule: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: SetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// AddTimeOff добавляет выходной мастеру
func (s *Service) AddTimeOff(ctx context.Context, businessID, staffID int64, req *models.AddTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("AddTimeOff: staff id=%d date=%s by user=%d", staffID, req.Date, req.UserID)

	business, err := access.RequireManager(ctx, s.businessRepo, businessID, req.UserID)
	if err != nil {
		return nil, s.accessError("AddTimeOff", err)
	}
	if _, err := s.loadMember(ctx, "AddTimeOff", businessID, staffID); err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if date.Before(s.today(business)) {
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	created, err := s.staffRepo.AddTimeOff(ctx, &domain.TimeOff{StaffID: staffID, Date: date, Reason: req.Reason})
	if err != nil {
		if errors.Is(err, staffRepo.ErrTimeOffExists) {
			s.logger.Warn("AddTimeOff: staff id=%d already off on %s", staffID, req.Date)
			return nil, ErrTimeOffExists
		}
		s.logger.Error("AddTimeOff: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddTimeOff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeOff(created), nil
}

// ListTimeOff получает предстоящие выходные мастера
func (s *Service) ListTimeOff(ctx context.Context, businessID, staffID, userID int64) (*models.TimeOffListResponse, error) {
	business, err := access.RequireManager(ctx, s.businessRepo, businessID, userID)
	if err != nil {
		return nil, s.accessError("ListTimeOff", err)
	}
	if _, err := s.loadMember(ctx, "ListTimeOff", businessID, staffID); err != nil {
		return nil, err
	}

	list, err := s.staffRepo.ListTimeOff(ctx, staffID, s.today(business))
	if err != nil {
		s.logger.Error("ListTimeOff: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListTimeOff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeOffList(list), nil
}

// DeleteTimeOff удаляет выходной мастера
func (s *Service) DeleteTimeOff(ctx context.Context, businessID, staffID, timeOffID, userID int64) error {
	s.logger.Info("DeleteTimeOff: staff id=%d time off id=%d by user=%d", staffID, timeOffID, userID)

	if _, err := s.loadManaged(ctx, "DeleteTimeOff", businessID, staffID, userID); err != nil {
		return err
	}

	if err := s.staffRepo.DeleteTimeOff(ctx, staffID, timeOffID); err != nil {
		if errors.Is(err, staffRepo.ErrTimeOffNotFound) {
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error: %v", err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %v", ErrInternal, err)
	}

	return nil
}

// today текущая дата в часовом поясе бизнеса (полночь UTC для сравнения с датами из БД)
func (s *Service) today(business *domain.Business) time.Time {
	now := s.timeProvider.Now().In(business.Location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) loadManaged(ctx context.Context, method string, businessID, staffID, userID int64) (*domain.Staff, error) {
	if _, err := access.RequireManager(ctx, s.businessRepo, businessID, userID); err != nil {
		return nil, s.accessError(method, err)
	}
	return s.loadMember(ctx, method, businessID, staffID)
}

func (s *Service) loadMember(ctx context.Context, method string, businessID, staffID int64) (*domain.Staff, error) {
	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff id=%d not found", method, staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: repository error for staff id=%d: %v", method, staffID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	if member.BusinessID != businessID {
		s.logger.Warn("%s: staff id=%d does not belong to business=%d", method, staffID, businessID)
		return nil, ErrStaffNotFound
	}
	return member, nil
}

// checkServices проверяет, что все услуги принадлежат бизнесу
func (s *Service) checkServices(ctx context.Context, method string, businessID int64, serviceIDs []int64) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	services, err := s.serviceRepo.ListByIDs(ctx, serviceIDs)
	if err != nil {
		s.logger.Error("%s: failed to load services: %v", method, err)
		return fmt.Errorf("%w: %s - load services: %v", ErrInternal, method, err)
	}

	found := make(map[int64]bool, len(services))
	for _, svc := range services {
		if svc.BusinessID == businessID {
			found[svc.ID] = true
		}
	}
	for _, id := range serviceIDs {
		if !found[id] {
			s.logger.Warn("%s: service id=%d does not belong to business=%d", method, id, businessID)
			return fmt.Errorf("%w: service %d does not belong to the business", ErrInvalidInput, id)
		}
	}
	return nil
}

func (s *Service) accessError(method string, err error) error {
	switch {
	case errors.Is(err, access.ErrBusinessNotFound):
		return ErrBusinessNotFound
	case errors.Is(err, access.ErrAccessDenied):
		s.logger.Warn("%s: access denied", method)
		return ErrAccessDenied
	default:
		s.logger.Error("%s: failed to check access: %v", method, err)
		return fmt.Errorf("%w: %s - %v", ErrInternal, method, err)
	}
}

// buildSchedule проверяет дни и собирает расписание
func buildSchedule(staffID int64, days []models.DayScheduleRequest) (*domain.WeeklySchedule, error) {
	schedule := &domain.WeeklySchedule{StaffID: staffID, Days: make([]domain.DaySchedule, 0, len(days))}
	seen := make(map[int]bool, len(days))

	for _, d := range days {
		if d.Weekday < 0 || d.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
		}
		if seen[d.Weekday] {
			return nil, fmt.Errorf("%w: weekday %d is listed twice", ErrInvalidInput, d.Weekday)
		}
		seen[d.Weekday] = true

		day := domain.DaySchedule{Weekday: time.Weekday(d.Weekday), IsOpen: d.IsOpen}
		if d.IsOpen {
			open, err := types.NewTimeStringFromString(d.OpenTime)
			if err != nil {
				return nil, fmt.Errorf("%w: openTime: %v", ErrInvalidInput, err)
			}
			closeTime, err := types.NewTimeStringFromString(d.CloseTime)
			if err != nil {
				return nil, fmt.Errorf("%w: closeTime: %v", ErrInvalidInput, err)
			}
			if !open.IsBefore(closeTime) {
				return nil, fmt.Errorf("%w: closeTime must be after openTime on weekday %d", ErrInvalidInput, d.Weekday)
			}
			day.OpenTime, day.CloseTime = open, closeTime
		}
		schedule.Days = append(schedule.Days, day)
	}

	return schedule, nil
}
