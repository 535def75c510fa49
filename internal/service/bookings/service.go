package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/bookings/models"
)

// Service сервис для просмотра бронирований и смены статуса менеджером
type Service struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	publisher    Publisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	publisher Publisher,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту, который его создал, и менеджеру бизнеса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != userID {
		if _, err := s.requireManager(ctx, "GetByID", booking.BusinessID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			if errors.Is(err, ErrBusinessNotFound) {
				return nil, ErrAccessDenied
			}
			return nil, err
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований клиента, новые первыми
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBusinessBookings получает бронирования бизнеса с фильтрацией
// по мастеру, периоду, статусу и включению неактивных бронирований.
// Доступно только менеджеру бизнеса
//
// Для одной даты (StartDate == EndDate) бронирования идут по времени начала,
// что удобно для расписания дня.
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetBusinessBookings: fetching bookings for business=%d, user=%d", req.BusinessID, req.UserID)
	if req.StaffID != nil {
		logMsg += fmt.Sprintf(", staff=%d", *req.StaffID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if _, err := s.requireManager(ctx, "GetBusinessBookings", req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус (только менеджер)
// Допустимы переходы pending→confirmed, confirmed→in_progress|completed|no_show, in_progress→completed.
// Отмена выполняется отдельным сценарием, так как требует возврата оплаты
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	business, err := s.requireManager(ctx, "UpdateStatus", booking.BusinessID, req.UserID)
	if err != nil {
		return nil, err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d", booking.Status, newStatus, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	previous := booking.Status
	booking.Status = newStatus

	if previous == domain.StatusPending && newStatus == domain.StatusConfirmed {
		event := domain.BookingEvent(domain.EventBookingConfirmed, booking, business.Name, s.timeProvider.Now())
		if err := s.publisher.Publish(ctx, event); err != nil {
			// Статус уже сохранён, уведомление не критично
			s.logger.Error("UpdateStatus: failed to publish %s for booking id=%d: %v", event.Type, bookingID, err)
		}
	}

	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s", bookingID, previous, newStatus)
	return models.FromDomainBooking(booking), nil
}

func (s *Service) getBooking(ctx context.Context, method string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

// requireManager проверяет, что пользователь управляет бизнесом
func (s *Service) requireManager(ctx context.Context, method string, businessID, userID int64) (*domain.Business, error) {
	business, err := access.RequireManager(ctx, s.businessRepo, businessID, userID)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrBusinessNotFound):
			s.logger.Warn("%s: business id=%d not found", method, businessID)
			return nil, ErrBusinessNotFound
		case errors.Is(err, access.ErrAccessDenied):
			s.logger.Warn("%s: user=%d is not a manager of business=%d", method, userID, businessID)
			return nil, ErrAccessDenied
		default:
			s.logger.Error("%s: failed to load business id=%d: %v", method, businessID, err)
			return nil, fmt.Errorf("%w: %s - %v", ErrInternal, method, err)
		}
	}
	return business, nil
}
