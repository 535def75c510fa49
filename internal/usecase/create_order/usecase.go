package create_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	productRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/product"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/checkout"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/promo"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/metrics"
)

// UseCase use case для создания заказа товаров
type UseCase struct {
	orderRepo     OrderRepository
	productRepo   ProductRepository
	businessRepo  BusinessRepository
	promotionRepo PromotionRepository
	checkout      Checkout
	publisher     Publisher
	txManager     TransactionManager
	metrics       *metrics.Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	businessRepo BusinessRepository,
	promotionRepo PromotionRepository,
	checkout Checkout,
	publisher Publisher,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		businessRepo:  businessRepo,
		promotionRepo: promotionRepo,
		checkout:      checkout,
		publisher:     publisher,
		txManager:     txManager,
		metrics:       m,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute создает заказ: списывает остатки, применяет промокод и при возможности создает онлайн-оплату.
// Без подключенного Stripe заказ оплачивается при получении
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: customer=%d, business=%d, items=%d", req.CustomerID, req.BusinessID, len(req.Items))

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}
	now := uc.timeProvider.Now()

	// 2. Бизнес
	business, err := access.LoadBusiness(ctx, uc.businessRepo, req.BusinessID)
	if err != nil {
		if errors.Is(err, access.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateOrder: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !business.IsActive {
		return nil, ErrBusinessNotFound
	}

	var (
		result *domain.Order
		intent *domain.PaymentIntent
		promoT domain.PromotionType
	)

	// 3. Сериализуемая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, intent, promoT = nil, nil, ""

		// 3.1. Товары с блокировкой строк (FOR UPDATE)
		order, err := uc.buildOrder(txCtx, req)
		if err != nil {
			return err
		}

		// 3.2. Списываем остатки
		for _, item := range order.Items {
			if err := uc.productRepo.DecrementStock(txCtx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, productRepo.ErrInsufficientStock) {
					uc.logger.Warn("CreateOrder: product id=%d out of stock", item.ProductID)
					return fmt.Errorf("%w: %s", ErrInsufficientStock, item.ProductName)
				}
				uc.logger.Error("CreateOrder: failed to decrement stock of product id=%d: %v", item.ProductID, err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		// 3.3. Промокод
		var applied *promo.Applied
		if req.PromoCode != nil {
			applied, err = promo.Apply(txCtx, uc.promotionRepo, req.BusinessID, req.CustomerID, *req.PromoCode, order.Cart(), now)
			if err != nil {
				if promo.IsRejection(err) {
					uc.logger.Warn("CreateOrder: promo code %q rejected: %v", *req.PromoCode, err)
					return fmt.Errorf("%w: %w", ErrPromotionRejected, err)
				}
				uc.logger.Error("CreateOrder: failed to apply promo code: %v", err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			order.PromotionID = &applied.Promotion.ID
			order.DiscountCents = applied.Result.DiscountCents
			order.TotalCents = applied.Result.TotalCents
		}

		// 3.4. Онлайн-оплата или оплата при получении
		online := order.TotalCents > 0 && business.CanAcceptOnlinePayments()
		order.Status = domain.OrderPending
		if online {
			order.PaymentStatus = domain.PaymentPending
		} else {
			order.PaymentStatus = domain.PaymentNotRequired
		}

		created, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		if applied != nil {
			if err := promo.Redeem(txCtx, uc.promotionRepo, applied, req.CustomerID, nil, &created.ID); err != nil {
				uc.logger.Error("CreateOrder: failed to redeem promotion id=%d: %v", applied.Promotion.ID, err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			promoT = applied.Promotion.Type
		}

		if online {
			intent, _, err = uc.checkout.Start(txCtx, checkout.Target{
				Business:   business,
				CustomerID: req.CustomerID,
				OrderID:    &created.ID,
				TotalCents: created.TotalCents,
				Currency:   created.Currency,
			})
			if err != nil {
				uc.logger.Error("CreateOrder: failed to start payment for order id=%d: %v", created.ID, err)
				return fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateOrder: created order id=%d, total=%d, payment=%s", result.ID, result.TotalCents, result.PaymentStatus)

	if uc.metrics != nil {
		uc.metrics.OrdersCreated.Inc()
		if promoT != "" {
			uc.metrics.PromotionsRedeemed.WithLabelValues(string(promoT)).Inc()
		}
	}

	event := domain.OrderEvent(domain.EventOrderCreated, result, business.Name, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateOrder: failed to publish %s for order id=%d: %v", event.Type, result.ID, err)
	}

	resp := &Response{Order: result}
	if intent != nil {
		resp.PaymentIntentID = &intent.ID
		resp.PaymentClientSecret = &intent.ClientSecret
	}
	return resp, nil
}

// buildOrder собирает позиции заказа по текущим ценам товаров
func (uc *UseCase) buildOrder(ctx context.Context, req *Request) (*domain.Order, error) {
	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := uc.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("CreateOrder: failed to load products: %v", err)
		return nil, fmt.Errorf("%w: failed to load products: %v", ErrInternal, err)
	}
	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	order := &domain.Order{
		BusinessID: req.BusinessID,
		CustomerID: req.CustomerID,
		Items:      make([]domain.OrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		p, ok := byID[item.ProductID]
		if !ok || !p.IsActive || p.BusinessID != req.BusinessID {
			uc.logger.Warn("CreateOrder: product id=%d is not available at business id=%d", item.ProductID, req.BusinessID)
			return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, item.ProductID)
		}
		if !p.InStock(item.Quantity) {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
		}
		if order.Currency == "" {
			order.Currency = p.Currency
		} else if order.Currency != p.Currency {
			return nil, ErrMixedCurrency
		}

		line := domain.OrderItem{
			ProductID:      p.ID,
			ProductName:    p.Name,
			UnitPriceCents: p.PriceCents,
			Quantity:       item.Quantity,
		}
		order.Items = append(order.Items, line)
		order.SubtotalCents += line.TotalCents()
	}
	order.TotalCents = order.SubtotalCents

	return order, nil
}
