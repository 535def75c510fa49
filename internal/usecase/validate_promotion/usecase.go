package validate_promotion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/promo"
)

const maxCartItems = 50

// UseCase предпросмотр скидки по промокоду без фиксации использования
type UseCase struct {
	promotionRepo PromotionRepository
	serviceRepo   ServiceRepository
	productRepo   ProductRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(promotionRepo PromotionRepository, serviceRepo ServiceRepository, productRepo ProductRepository, logger Logger) *UseCase {
	return &UseCase{
		promotionRepo: promotionRepo,
		serviceRepo:   serviceRepo,
		productRepo:   productRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute считает скидку для корзины по ценам каталога
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidatePromotion: business=%d, customer=%d, code=%q, items=%d",
		req.BusinessID, req.CustomerID, req.Code, len(req.Items))

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cart, err := uc.buildCart(ctx, req)
	if err != nil {
		return nil, err
	}

	applied, err := promo.Apply(ctx, uc.promotionRepo, req.BusinessID, req.CustomerID, req.Code, cart, uc.timeProvider.Now())
	if err != nil {
		if errors.Is(err, promo.ErrCodeNotFound) {
			uc.logger.Info("ValidatePromotion: code %q not found at business id=%d", req.Code, req.BusinessID)
			return nil, ErrPromotionNotFound
		}
		if promo.IsRejection(err) {
			uc.logger.Info("ValidatePromotion: code %q rejected: %v", req.Code, err)
			return nil, fmt.Errorf("%w: %w", ErrPromotionRejected, err)
		}
		uc.logger.Error("ValidatePromotion: failed to apply code %q: %v", req.Code, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Response{
		PromotionID:   applied.Promotion.ID,
		Code:          domain.NormalizeCode(req.Code),
		Name:          applied.Promotion.Name,
		Type:          applied.Promotion.Type,
		SubtotalCents: applied.Result.SubtotalCents,
		DiscountCents: applied.Result.DiscountCents,
		TotalCents:    applied.Result.TotalCents,
	}, nil
}

func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if len(req.Items) == 0 || len(req.Items) > maxCartItems {
		return fmt.Errorf("%w: cart must have 1..%d items", ErrInvalidInput, maxCartItems)
	}
	for _, item := range req.Items {
		if item.Kind != domain.ItemService && item.Kind != domain.ItemProduct {
			return fmt.Errorf("%w: unknown item kind %q", ErrInvalidInput, item.Kind)
		}
		if item.ItemID <= 0 || item.Quantity < 1 {
			return fmt.Errorf("%w: itemId and quantity must be positive", ErrInvalidInput)
		}
		if item.Quantity > domain.MaxLineQuantity {
			return fmt.Errorf("%w: quantity must be at most %d", ErrInvalidInput, domain.MaxLineQuantity)
		}
	}
	return nil
}

// buildCart подставляет цены активных позиций бизнеса
func (uc *UseCase) buildCart(ctx context.Context, req *Request) (domain.Cart, error) {
	var serviceIDs, productIDs []int64
	for _, item := range req.Items {
		if item.Kind == domain.ItemService {
			serviceIDs = append(serviceIDs, item.ItemID)
		} else {
			productIDs = append(productIDs, item.ItemID)
		}
	}

	prices := make(map[domain.ItemKind]map[int64]int64, 2)
	prices[domain.ItemService] = map[int64]int64{}
	prices[domain.ItemProduct] = map[int64]int64{}

	if len(serviceIDs) > 0 {
		services, err := uc.serviceRepo.ListByIDs(ctx, serviceIDs)
		if err != nil {
			uc.logger.Error("ValidatePromotion: failed to load services: %v", err)
			return domain.Cart{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		for _, s := range services {
			if s.BusinessID == req.BusinessID && s.IsActive {
				prices[domain.ItemService][s.ID] = s.PriceCents
			}
		}
	}
	if len(productIDs) > 0 {
		products, err := uc.productRepo.ListByIDs(ctx, productIDs)
		if err != nil {
			uc.logger.Error("ValidatePromotion: failed to load products: %v", err)
			return domain.Cart{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		for _, p := range products {
			if p.BusinessID == req.BusinessID && p.IsActive {
				prices[domain.ItemProduct][p.ID] = p.PriceCents
			}
		}
	}

	cart := domain.Cart{Lines: make([]domain.CartLine, 0, len(req.Items))}
	for _, item := range req.Items {
		price, ok := prices[item.Kind][item.ItemID]
		if !ok {
			return domain.Cart{}, fmt.Errorf("%w: %s %d", ErrItemNotFound, item.Kind, item.ItemID)
		}
		cart.Lines = append(cart.Lines, domain.CartLine{
			Kind:           item.Kind,
			ItemID:         item.ItemID,
			UnitPriceCents: price,
			Quantity:       item.Quantity,
		})
	}
	return cart, nil
}
