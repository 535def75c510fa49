package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo     ServiceRepository
	businessRepo    BusinessRepository
	defaultCurrency string
	logger          Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, businessRepo BusinessRepository, defaultCurrency string, logger Logger) *Service {
	return &Service{
		serviceRepo:     serviceRepo,
		businessRepo:    businessRepo,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// Create добавляет услугу в каталог бизнеса
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for business=%d by user=%d", req.Name, req.BusinessID, req.UserID)

	if _, err := access.RequireManager(ctx, s.businessRepo, req.BusinessID, req.UserID); err != nil {
		return nil, s.accessError("Create", err)
	}

	service := req.ToDomainService(s.defaultCurrency)
	if err := validateService(service); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update обновляет услугу
func (s *Service) Update(ctx context.Context, businessID, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d by user=%d", serviceID, req.UserID)

	service, err := s.loadManaged(ctx, "Update", businessID, serviceID, req.UserID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(service)
	if err := validateService(service); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", serviceID, err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// Delete выключает услугу; история бронирований сохраняется
func (s *Service) Delete(ctx context.Context, businessID, serviceID, userID int64) error {
	s.logger.Info("Delete: deactivating service id=%d by user=%d", serviceID, userID)

	service, err := s.loadManaged(ctx, "Delete", businessID, serviceID, userID)
	if err != nil {
		return err
	}

	service.IsActive = false
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// List получает услуги бизнеса
// Неактивные услуги видны только менеджеру
func (s *Service) List(ctx context.Context, businessID int64, userID *int64, includeInactive bool) (*models.ServiceListResponse, error) {
	business, err := access.LoadBusiness(ctx, s.businessRepo, businessID)
	if err != nil {
		return nil, s.accessError("List", err)
	}

	if includeInactive && (userID == nil || !business.IsManagedBy(*userID)) {
		includeInactive = false
	}

	services, err := s.serviceRepo.ListByBusiness(ctx, businessID, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d services for business=%d", len(services), businessID)
	return models.FromDomainServiceList(services), nil
}

func (s *Service) loadManaged(ctx context.Context, method string, businessID, serviceID, userID int64) (*domain.Service, error) {
	if _, err := access.RequireManager(ctx, s.businessRepo, businessID, userID); err != nil {
		return nil, s.accessError(method, err)
	}

	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", method, serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", method, serviceID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	if service.BusinessID != businessID {
		s.logger.Warn("%s: service id=%d does not belong to business=%d", method, serviceID, businessID)
		return nil, ErrServiceNotFound
	}

	return service, nil
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

// validateService проверяет ограничения услуги
func validateService(s *domain.Service) error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if s.DurationMinutes < domain.MinServiceDurationMinutes || s.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if s.BufferMinutes < 0 || s.BufferMinutes > domain.MaxServiceBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxServiceBufferMinutes)
	}
	if s.PriceCents < 0 || s.PriceCents > domain.MaxPriceCents {
		return fmt.Errorf("%w: priceCents must be between 0 and %d", ErrInvalidInput, domain.MaxPriceCents)
	}
	if len(s.Currency) != 3 {
		return fmt.Errorf("%w: currency must be an ISO 4217 code", ErrInvalidInput)
	}
	return nil
}
