package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/scheduling"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	settingsRepo SettingsRepository
	planner      *scheduling.Planner
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	staffRepo StaffRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		settingsRepo: settingsRepo,
		planner:      scheduling.NewPlanner(staffRepo, bookingRepo),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, staff=%v, date=%s",
		req.BusinessID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	date := scheduling.DateOnly(req.Date)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бизнес
	business, err := access.LoadBusiness(ctx, uc.businessRepo, req.BusinessID)
	if err != nil {
		if errors.Is(err, access.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsActive {
		uc.logger.Warn("GetAvailableSlots: business id=%d is inactive", req.BusinessID)
		return nil, ErrBusinessNotFound
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if err := validateService(service, req.BusinessID); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not bookable at business id=%d", req.ServiceID, req.BusinessID)
		return nil, err
	}

	// 5. Получаем настройки с учетом иерархии (услуга -> бизнес -> по умолчанию)
	settings, err := uc.settingsRepo.GetWithHierarchy(ctx, req.BusinessID, &req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 6. Валидация даты в часовом поясе бизнеса
	loc := business.Location()
	if err := scheduling.ValidateDate(date, scheduling.Today(now, loc), settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Мастера, работающие в эту дату
	staffDays, err := uc.planner.WorkingStaff(ctx, req.BusinessID, req.ServiceID, req.StaffID, date)
	if err != nil {
		if errors.Is(err, scheduling.ErrStaffNotQualified) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d does not perform service id=%d", *req.StaffID, req.ServiceID)
			return nil, ErrStaffNotAvailable
		}
		uc.logger.Error("GetAvailableSlots: failed to load staff: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:       date,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Timezone:   loc.String(),
		Slots:      []domain.AvailableSlot{},
	}
	if len(staffDays) == 0 {
		uc.logger.Info("GetAvailableSlots: no staff working on %s", date.Format(domain.DateFormat))
		return resp, nil
	}

	// 8. Активные бронирования мастеров на эту дату
	busy, err := uc.planner.BusyByStaff(ctx, req.BusinessID, scheduling.StaffIDs(staffDays), date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 9. Собираем свободные слоты по всем мастерам
	slots, err := collectSlots(staffDays, busy, service.TotalMinutes(), settings, date, now, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	resp.Slots = slots

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%d, service=%d, date=%s",
		len(slots), req.BusinessID, req.ServiceID, date.Format(domain.DateFormat))

	return resp, nil
}

// collectSlots объединяет свободные начала всех мастеров; слоты без свободных мастеров не попадают в результат
func collectSlots(
	staffDays []scheduling.StaffDay,
	busy map[int64][]*domain.Booking,
	totalMinutes int,
	settings *domain.BookingSettings,
	date, now time.Time,
	loc *time.Location,
) ([]domain.AvailableSlot, error) {
	free := make(map[types.TimeString][]int64)

	for _, day := range staffDays {
		starts, err := scheduling.CandidateStarts(day.Hours, settings.SlotStepMinutes, totalMinutes, date, now, loc, settings.MinBookingNoticeMinutes)
		if err != nil {
			return nil, err
		}
		for _, start := range starts {
			ok, err := scheduling.IsFree(start, totalMinutes, busy[day.Staff.ID])
			if err != nil {
				return nil, err
			}
			if ok {
				free[start] = append(free[start], day.Staff.ID)
			}
		}
	}

	slots := make([]domain.AvailableSlot, 0, len(free))
	for start, staffIDs := range free {
		slots = append(slots, domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: totalMinutes,
			StaffIDs:        staffIDs,
		})
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}
