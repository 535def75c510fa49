package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	productRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/product"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/products/models"
)

// Service сервис витрины товаров бизнеса
type Service struct {
	productRepo     ProductRepository
	businessRepo    BusinessRepository
	defaultCurrency string
	logger          Logger
}

func NewService(productRepo ProductRepository, businessRepo BusinessRepository, defaultCurrency string, logger Logger) *Service {
	return &Service{
		productRepo:     productRepo,
		businessRepo:    businessRepo,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// Create добавляет товар
func (s *Service) Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("Create: creating product %q for business=%d by user=%d", req.Name, req.BusinessID, req.UserID)

	if _, err := access.RequireManager(ctx, s.businessRepo, req.BusinessID, req.UserID); err != nil {
		return nil, s.accessError("Create", err)
	}

	product := req.ToDomainProduct(s.defaultCurrency)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		if errors.Is(err, productRepo.ErrSKUTaken) {
			s.logger.Warn("Create: sku %v already taken in business=%d", product.SKU, req.BusinessID)
			return nil, ErrSKUTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created product id=%d", created.ID)
	return models.FromDomainProduct(created), nil
}

// Update обновляет товар
func (s *Service) Update(ctx context.Context, businessID, productID int64, req *models.UpdateProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("Update: updating product id=%d by user=%d", productID, req.UserID)

	if _, err := access.RequireManager(ctx, s.businessRepo, businessID, req.UserID); err != nil {
		return nil, s.accessError("Update", err)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("Update: repository error for product id=%d: %v", productID, err)
		return nil, fmt.Errorf("%w: Update - get product: %v", ErrInternal, err)
	}
	if product.BusinessID != businessID {
		return nil, ErrProductNotFound
	}

	req.ApplyTo(product)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, productRepo.ErrSKUTaken):
			return nil, ErrSKUTaken
		case errors.Is(err, productRepo.ErrProductNotFound):
			return nil, ErrProductNotFound
		}
		s.logger.Error("Update: repository error for product id=%d: %v", productID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProduct(product), nil
}

// List получает товары бизнеса; неактивные видны только менеджеру
func (s *Service) List(ctx context.Context, businessID int64, userID *int64, includeInactive bool) (*models.ProductListResponse, error) {
	business, err := access.LoadBusiness(ctx, s.businessRepo, businessID)
	if err != nil {
		return nil, s.accessError("List", err)
	}
	if includeInactive && (userID == nil || !business.IsManagedBy(*userID)) {
		includeInactive = false
	}

	list, err := s.productRepo.ListByBusiness(ctx, businessID, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProductList(list), nil
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

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.PriceCents < 0 || p.PriceCents > domain.MaxPriceCents {
		return fmt.Errorf("%w: priceCents must be between 0 and %d", ErrInvalidInput, domain.MaxPriceCents)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stockQuantity must not be negative", ErrInvalidInput)
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("%w: currency must be an ISO 4217 code", ErrInvalidInput)
	}
	return nil
}
