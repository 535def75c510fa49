package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/settings/models"
)

// Service сервис настроек бронирования
type Service struct {
	settingsRepo SettingsRepository
	serviceRepo  ServiceRepository
	businessRepo BusinessRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	serviceRepo ServiceRepository,
	businessRepo BusinessRepository,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		serviceRepo:  serviceRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// Get получает действующие настройки с учетом иерархии
// Публичный метод: клиенту нужны шаг слотов и правила отмены
func (s *Service) Get(ctx context.Context, businessID int64, serviceID *int64) (*models.SettingsResponse, error) {
	if _, err := access.LoadBusiness(ctx, s.businessRepo, businessID); err != nil {
		return nil, s.accessError("Get", err)
	}
	if serviceID != nil {
		if err := s.checkService(ctx, "Get", businessID, *serviceID); err != nil {
			return nil, err
		}
	}

	settings, err := s.settingsRepo.GetWithHierarchy(ctx, businessID, serviceID)
	if err != nil {
		s.logger.Error("Get: repository error for business=%d service=%v: %v", businessID, serviceID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainSettings(settings)
	s.logger.Info("Get: business=%d service=%v resolved from %s level", businessID, serviceID, resp.Level)
	return resp, nil
}

// List получает все сохраненные уровни настроек бизнеса
func (s *Service) List(ctx context.Context, businessID, userID int64) (*models.SettingsListResponse, error) {
	if _, err := access.RequireManager(ctx, s.businessRepo, businessID, userID); err != nil {
		return nil, s.accessError("List", err)
	}

	list, err := s.settingsRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettingsList(list), nil
}

// Upsert сохраняет настройки уровня (бизнес целиком или конкретная услуга)
func (s *Service) Upsert(ctx context.Context, req *models.UpsertSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Upsert: saving settings for business=%d service=%v by user=%d", req.BusinessID, req.ServiceID, req.UserID)

	if _, err := access.RequireManager(ctx, s.businessRepo, req.BusinessID, req.UserID); err != nil {
		return nil, s.accessError("Upsert", err)
	}
	if req.ServiceID != nil {
		if err := s.checkService(ctx, "Upsert", req.BusinessID, *req.ServiceID); err != nil {
			return nil, err
		}
	}

	base, err := s.settingsRepo.GetWithHierarchy(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		s.logger.Error("Upsert: failed to resolve current settings: %v", err)
		return nil, fmt.Errorf("%w: Upsert - resolve current: %v", ErrInternal, err)
	}

	settings := &domain.BookingSettings{
		BusinessID:              req.BusinessID,
		ServiceID:               req.ServiceID,
		SlotStepMinutes:         base.SlotStepMinutes,
		AdvanceBookingDays:      base.AdvanceBookingDays,
		MinBookingNoticeMinutes: base.MinBookingNoticeMinutes,
		CancellationNoticeHours: base.CancellationNoticeHours,
		RequirePrepayment:       base.RequirePrepayment,
	}
	req.ApplyTo(settings)

	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved settings id=%d", saved.ID)
	return models.FromDomainSettings(saved), nil
}

// Delete удаляет настройки уровня, после чего действуют настройки уровнем выше
func (s *Service) Delete(ctx context.Context, businessID, userID int64, serviceID *int64) error {
	s.logger.Info("Delete: deleting settings for business=%d service=%v by user=%d", businessID, serviceID, userID)

	if _, err := access.RequireManager(ctx, s.businessRepo, businessID, userID); err != nil {
		return s.accessError("Delete", err)
	}

	if err := s.settingsRepo.Delete(ctx, businessID, serviceID); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return ErrSettingsNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) checkService(ctx context.Context, method string, businessID, serviceID int64) error {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", method, serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("%s: failed to get service id=%d: %v", method, serviceID, err)
		return fmt.Errorf("%w: %s - get service: %v", ErrInternal, method, err)
	}
	if service.BusinessID != businessID {
		s.logger.Warn("%s: service id=%d does not belong to business=%d", method, serviceID, businessID)
		return ErrServiceNotFound
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

// validateSettings проверяет диапазоны значений
func validateSettings(s *domain.BookingSettings) error {
	if s.SlotStepMinutes < domain.MinSlotStepMinutes || s.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if s.AdvanceBookingDays < domain.MinAdvanceBookingDays || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if s.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}
	if s.CancellationNoticeHours < 0 || s.CancellationNoticeHours > domain.MaxCancellationNoticeHours {
		return fmt.Errorf("%w: cancellationNoticeHours must be between 0 and %d",
			ErrInvalidInput, domain.MaxCancellationNoticeHours)
	}
	return nil
}
