package promotions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	promotionRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/promotion"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/promotions/models"
)

// Service сервис управления промоакциями бизнеса
type Service struct {
	promotionRepo PromotionRepository
	businessRepo  BusinessRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса промоакций
func NewService(promotionRepo PromotionRepository, businessRepo BusinessRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		promotionRepo: promotionRepo,
		businessRepo:  businessRepo,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Create создает промоакцию
func (s *Service) Create(ctx context.Context, req *models.CreatePromotionRequest) (*models.PromotionResponse, error) {
	s.logger.Info("Create: creating %s promotion %q for business=%d by user=%d", req.Type, req.Name, req.BusinessID, req.UserID)

	if _, err := access.RequireManager(ctx, s.businessRepo, req.BusinessID, req.UserID); err != nil {
		return nil, s.accessError("Create", err)
	}

	promotion := &domain.Promotion{BusinessID: req.BusinessID, IsActive: true}
	req.ApplyTo(promotion)

	if err := s.validate(promotion, true); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.promotionRepo.Create(ctx, promotion)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrCodeTaken) {
			s.logger.Warn("Create: code %v already taken in business=%d", promotion.Code, req.BusinessID)
			return nil, ErrCodeTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created promotion id=%d", created.ID)
	return models.FromDomainPromotion(created), nil
}

// Update заменяет определение промоакции
func (s *Service) Update(ctx context.Context, businessID, promotionID int64, req *models.UpdatePromotionRequest) (*models.PromotionResponse, error) {
	s.logger.Info("Update: updating promotion id=%d by user=%d", promotionID, req.UserID)

	promotion, err := s.loadManaged(ctx, "Update", businessID, promotionID, req.UserID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(promotion)
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	// Уже начавшуюся промоакцию можно править, поэтому starts_at в прошлом допустим
	if err := s.validate(promotion, false); err != nil {
		s.logger.Warn("Update: validation failed for promotion id=%d: %v", promotionID, err)
		return nil, err
	}

	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		switch {
		case errors.Is(err, promotionRepo.ErrCodeTaken):
			return nil, ErrCodeTaken
		case errors.Is(err, promotionRepo.ErrPromotionNotFound):
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("Update: repository error for promotion id=%d: %v", promotionID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPromotion(promotion), nil
}

// Get получает промоакцию (только менеджер)
func (s *Service) Get(ctx context.Context, businessID, promotionID, userID int64) (*models.PromotionResponse, error) {
	promotion, err := s.loadManaged(ctx, "Get", businessID, promotionID, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPromotion(promotion), nil
}

// List получает промоакции бизнеса
func (s *Service) List(ctx context.Context, businessID, userID int64, activeOnly bool) (*models.PromotionListResponse, error) {
	if _, err := access.RequireManager(ctx, s.businessRepo, businessID, userID); err != nil {
		return nil, s.accessError("List", err)
	}

	list, err := s.promotionRepo.ListByBusiness(ctx, businessID, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d promotions for business=%d", len(list), businessID)
	return models.FromDomainPromotionList(list), nil
}

// Deactivate выключает промоакцию; выданные скидки остаются в силе
func (s *Service) Deactivate(ctx context.Context, businessID, promotionID, userID int64) error {
	s.logger.Info("Deactivate: promotion id=%d by user=%d", promotionID, userID)

	if _, err := s.loadManaged(ctx, "Deactivate", businessID, promotionID, userID); err != nil {
		return err
	}

	if err := s.promotionRepo.Deactivate(ctx, promotionID); err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			return ErrPromotionNotFound
		}
		s.logger.Error("Deactivate: repository error for promotion id=%d: %v", promotionID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) loadManaged(ctx context.Context, method string, businessID, promotionID, userID int64) (*domain.Promotion, error) {
	if _, err := access.RequireManager(ctx, s.businessRepo, businessID, userID); err != nil {
		return nil, s.accessError(method, err)
	}

	promotion, err := s.promotionRepo.GetByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("%s: repository error for promotion id=%d: %v", method, promotionID, err)
		return nil, fmt.Errorf("%w: %s - get promotion: %v", ErrInternal, method, err)
	}
	if promotion.BusinessID != businessID {
		s.logger.Warn("%s: promotion id=%d does not belong to business=%d", method, promotionID, businessID)
		return nil, ErrPromotionNotFound
	}

	return promotion, nil
}

// validate проверяет определение; новая промоакция не может заканчиваться в прошлом
func (s *Service) validate(p *domain.Promotion, isNew bool) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, item := range p.BundleItems {
		if item.Kind != domain.ItemService && item.Kind != domain.ItemProduct {
			return fmt.Errorf("%w: bundle item kind must be service or product", ErrInvalidInput)
		}
	}
	if isNew && p.EndsAt != nil && p.EndsAt.Before(s.timeProvider.Now()) {
		return fmt.Errorf("%w: endsAt is in the past", ErrInvalidInput)
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
