package businesses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/business"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/businesses/models"
)

// Service сервис для работы с бизнесами
type Service struct {
	businessRepo BusinessRepository
	media        MediaURLBuilder
	logger       Logger
}

// NewService создает новый экземпляр сервиса бизнесов
// media может быть nil, тогда ссылки на обложку не заполняются
func NewService(businessRepo BusinessRepository, media MediaURLBuilder, logger Logger) *Service {
	return &Service{
		businessRepo: businessRepo,
		media:        media,
		logger:       logger,
	}
}

// Create создает бизнес, пользователь становится владельцем
func (s *Service) Create(ctx context.Context, req *models.CreateBusinessRequest) (*models.BusinessResponse, error) {
	s.logger.Info("Create: creating business name=%q by user=%d", req.Name, req.UserID)

	business := &domain.Business{
		OwnerID:     req.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    domain.BusinessCategory(req.Category),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		Phone:       req.Phone,
		Email:       req.Email,
		Timezone:    req.Timezone,
		IsActive:    true,
	}
	if err := validateBusiness(business); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	business.Slug = domain.Slugify(business.Name)
	if business.Slug == "" {
		// Название без латиницы и цифр
		business.Slug = "business-" + uuid.NewString()[:8]
	}

	created, err := s.businessRepo.Create(ctx, business)
	if err != nil {
		if errors.Is(err, businessRepo.ErrSlugTaken) {
			s.logger.Warn("Create: slug %q already taken", business.Slug)
			return nil, ErrSlugTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created business id=%d, slug=%s", created.ID, created.Slug)
	return models.FromDomainBusiness(created, s.publicURL()), nil
}

// GetByID получает бизнес
// Неактивный бизнес виден только владельцу
func (s *Service) GetByID(ctx context.Context, id int64, userID *int64) (*models.BusinessResponse, error) {
	business, err := access.LoadBusiness(ctx, s.businessRepo, id)
	if err != nil {
		if errors.Is(err, access.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetByID: failed to get business id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - %v", ErrInternal, err)
	}

	if !business.IsActive && (userID == nil || !business.IsManagedBy(*userID)) {
		s.logger.Warn("GetByID: business id=%d is inactive", id)
		return nil, ErrBusinessNotFound
	}

	return models.FromDomainBusiness(business, s.publicURL()), nil
}

// Search ищет активные бизнесы
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.BusinessListResponse, error) {
	filter := domain.BusinessSearchFilter{
		City:   req.City,
		Query:  req.Query,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Category != nil {
		category := domain.BusinessCategory(*req.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		filter.Category = &category
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultPageLimit
	}
	if filter.Limit > domain.MaxPageLimit {
		filter.Limit = domain.MaxPageLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	list, err := s.businessRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d businesses", len(list))
	return models.FromDomainBusinessList(list, s.publicURL()), nil
}

// Update обновляет профиль бизнеса
// Доступно только владельцу
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBusinessRequest) (*models.BusinessResponse, error) {
	s.logger.Info("Update: updating business id=%d by user=%d", id, req.UserID)

	business, err := access.RequireManager(ctx, s.businessRepo, id, req.UserID)
	if err != nil {
		return nil, s.accessError("Update", id, req.UserID, err)
	}

	req.ApplyTo(business)
	if err := validateBusiness(business); err != nil {
		s.logger.Warn("Update: validation failed for business id=%d: %v", id, err)
		return nil, err
	}

	if err := s.businessRepo.Update(ctx, business); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("Update: repository error for business id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated business id=%d", id)
	return models.FromDomainBusiness(business, s.publicURL()), nil
}

func (s *Service) accessError(method string, businessID, userID int64, err error) error {
	switch {
	case errors.Is(err, access.ErrBusinessNotFound):
		s.logger.Warn("%s: business id=%d not found", method, businessID)
		return ErrBusinessNotFound
	case errors.Is(err, access.ErrAccessDenied):
		s.logger.Warn("%s: user=%d is not the owner of business=%d", method, userID, businessID)
		return ErrAccessDenied
	default:
		s.logger.Error("%s: failed to check access: %v", method, err)
		return fmt.Errorf("%w: %s - %v", ErrInternal, method, err)
	}
}

func (s *Service) publicURL() func(string) string {
	if s.media == nil {
		return nil
	}
	return s.media.PublicURL
}

// validateBusiness проверяет обязательные поля профиля
func validateBusiness(b *domain.Business) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !b.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, b.Category)
	}
	if strings.TrimSpace(b.Address) == "" || strings.TrimSpace(b.City) == "" {
		return fmt.Errorf("%w: address and city are required", ErrInvalidInput)
	}
	if b.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(b.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, b.Timezone)
	}
	return nil
}
