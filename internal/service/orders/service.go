package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	orderRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/order"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/orders/models"
)

// Service сервис просмотра и выдачи заказов
type Service struct {
	orderRepo    OrderRepository
	businessRepo BusinessRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, businessRepo BusinessRepository, logger Logger) *Service {
	return &Service{
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// GetByID получает заказ; доступен клиенту и менеджеру бизнеса
func (s *Service) GetByID(ctx context.Context, orderID, userID int64) (*models.OrderResponse, error) {
	order, err := s.loadVisible(ctx, "GetByID", orderID, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainOrder(order), nil
}

// ListByCustomer получает заказы клиента, новые первыми
func (s *Service) ListByCustomer(ctx context.Context, userID int64) (*models.OrderListResponse, error) {
	list, err := s.orderRepo.ListByCustomer(ctx, userID)
	if err != nil {
		s.logger.Error("ListByCustomer: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByCustomer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByCustomer: fetched %d orders for user=%d", len(list), userID)
	return models.FromDomainOrderList(list), nil
}

// Fulfill отмечает заказ выданным (только менеджер)
// Выдать можно оплаченный заказ или заказ с оплатой на месте
func (s *Service) Fulfill(ctx context.Context, orderID, userID int64) (*models.OrderResponse, error) {
	s.logger.Info("Fulfill: order id=%d by user=%d", orderID, userID)

	order, err := s.getOrder(ctx, "Fulfill", orderID)
	if err != nil {
		return nil, err
	}

	if _, err := access.RequireManager(ctx, s.businessRepo, order.BusinessID, userID); err != nil {
		if errors.Is(err, access.ErrAccessDenied) || errors.Is(err, access.ErrBusinessNotFound) {
			s.logger.Warn("Fulfill: user=%d cannot manage order id=%d", userID, orderID)
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: Fulfill - %v", ErrInternal, err)
	}

	paymentStatus := order.PaymentStatus
	switch {
	case order.Status == domain.OrderPaid:
	case order.Status == domain.OrderPending && order.PaymentStatus == domain.PaymentNotRequired:
		paymentStatus = domain.PaymentPaid
	default:
		s.logger.Warn("Fulfill: order id=%d has status=%s payment=%s", orderID, order.Status, order.PaymentStatus)
		return nil, ErrInvalidStatus
	}

	if err := s.orderRepo.SetStatus(ctx, orderID, domain.OrderFulfilled, paymentStatus); err != nil {
		s.logger.Error("Fulfill: repository error for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: Fulfill - repository error: %v", ErrInternal, err)
	}

	order.Status = domain.OrderFulfilled
	order.PaymentStatus = paymentStatus
	return models.FromDomainOrder(order), nil
}

func (s *Service) loadVisible(ctx context.Context, method string, orderID, userID int64) (*domain.Order, error) {
	order, err := s.getOrder(ctx, method, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID == userID {
		return order, nil
	}

	if _, err := access.RequireManager(ctx, s.businessRepo, order.BusinessID, userID); err != nil {
		if errors.Is(err, access.ErrAccessDenied) || errors.Is(err, access.ErrBusinessNotFound) {
			s.logger.Warn("%s: user=%d has no access to order id=%d", method, userID, orderID)
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: %s - %v", ErrInternal, method, err)
	}
	return order, nil
}

func (s *Service) getOrder(ctx context.Context, method string, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%d not found", method, orderID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: repository error for order id=%d: %v", method, orderID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return order, nil
}
