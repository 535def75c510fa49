package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/scheduling"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	settingsRepo SettingsRepository
	planner      *scheduling.Planner
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	settingsRepo SettingsRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		settingsRepo: settingsRepo,
		planner:      scheduling.NewPlanner(staffRepo, bookingRepo),
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронирование к тому же мастеру на новые дату и время
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, date=%s, time=%s",
		req.BookingID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}
	date := scheduling.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	var result *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result = nil

		// 1. Бронирование и права
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		business, err := access.LoadBusiness(txCtx, uc.businessRepo, booking.BusinessID)
		if err != nil {
			if errors.Is(err, access.ErrBusinessNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get business id=%d: %v", booking.BusinessID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if booking.CustomerID != req.UserID && !business.IsManagedBy(req.UserID) {
			uc.logger.Warn("RescheduleBooking: user=%d has no access to booking id=%d", req.UserID, booking.ID)
			return ErrAccessDenied
		}

		// 2. Статус
		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d has status %s", booking.ID, booking.Status)
			return ErrInvalidStatus
		}

		// 3. Дата и минимальное время до начала
		settings, err := uc.settingsRepo.GetWithHierarchy(txCtx, booking.BusinessID, &booking.ServiceID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		loc := business.Location()
		if err := scheduling.ValidateDate(date, scheduling.Today(now, loc), settings.AdvanceBookingDays); err != nil {
			return err
		}
		if err := scheduling.ValidateNotice(date, req.StartTime, now, loc, settings.MinBookingNoticeMinutes); err != nil {
			return err
		}

		// 4. Рабочие часы того же мастера
		staffDays, err := uc.planner.WorkingStaff(txCtx, booking.BusinessID, booking.ServiceID, &booking.StaffID, date)
		if err != nil {
			if errors.Is(err, scheduling.ErrStaffNotQualified) {
				return ErrStaffNotAvailable
			}
			uc.logger.Error("RescheduleBooking: failed to load staff: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if len(staffDays) == 0 {
			uc.logger.Warn("RescheduleBooking: staff id=%d does not work on %s", booking.StaffID, date.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		}
		hours := staffDays[0].Hours
		if !scheduling.FitsHours(hours, req.StartTime, booking.DurationMinutes) ||
			!scheduling.OnStep(hours, req.StartTime, settings.SlotStepMinutes) {
			return ErrInvalidTimeSlot
		}

		// 5. Пересечения без учета самого бронирования (FOR UPDATE)
		busy, err := uc.planner.BusyByStaff(txCtx, booking.BusinessID, []int64{booking.StaffID}, date, &booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		free, err := scheduling.IsFree(req.StartTime, booking.DurationMinutes, busy[booking.StaffID])
		if err != nil {
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}
		if !free {
			uc.logger.Warn("RescheduleBooking: staff id=%d is busy at %s %s", booking.StaffID, date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 6. Сохраняем
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, date, req.StartTime); err != nil {
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		booking.BookingDate = date
		booking.StartTime = req.StartTime
		booking.ReminderSentAt = nil
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s", result.ID, date.Format(domain.DateFormat), result.StartTime)
	return result, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}
