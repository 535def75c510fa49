package business_analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

// MaxRangeDays максимальная длина периода отчета
const MaxRangeDays = 366

// Request период отчета; даты включительно
type Request struct {
	BusinessID int64
	UserID     int64
	From       time.Time
	To         time.Time
}

// UseCase собирает сводку показателей бизнеса
type UseCase struct {
	analyticsRepo AnalyticsRepository
	businessRepo  BusinessRepository
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(analyticsRepo AnalyticsRepository, businessRepo BusinessRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		analyticsRepo: analyticsRepo,
		businessRepo:  businessRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute возвращает показатели за период. Все агрегаты читаются из одного снимка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.BusinessAnalytics, error) {
	from := dateOnly(req.From)
	to := dateOnly(req.To)
	uc.logger.Info("BusinessAnalytics: business=%d, user=%d, from=%s, to=%s",
		req.BusinessID, req.UserID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidRange)
	}
	if to.Sub(from) >= MaxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: at most %d days", ErrInvalidRange, MaxRangeDays)
	}

	if _, err := access.RequireManager(ctx, uc.businessRepo, req.BusinessID, req.UserID); err != nil {
		if errors.Is(err, access.ErrBusinessNotFound) || errors.Is(err, access.ErrAccessDenied) {
			uc.logger.Warn("BusinessAnalytics: %v, business=%d, user=%d", err, req.BusinessID, req.UserID)
			return nil, err
		}
		uc.logger.Error("BusinessAnalytics: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	result := &domain.BusinessAnalytics{BusinessID: req.BusinessID, From: from, To: to}
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		return uc.collect(txCtx, result)
	})
	if err != nil {
		uc.logger.Error("BusinessAnalytics: failed to collect for business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return result, nil
}

func (uc *UseCase) collect(ctx context.Context, a *domain.BusinessAnalytics) error {
	var err error
	id, from, to := a.BusinessID, a.From, a.To

	if a.BookingsByStatus, err = uc.analyticsRepo.BookingsByStatus(ctx, id, from, to); err != nil {
		return fmt.Errorf("bookings by status: %w", err)
	}
	a.CompletedBookings = a.BookingsByStatus[domain.StatusCompleted]

	totals, err := uc.analyticsRepo.PaymentTotals(ctx, id, from, to)
	if err != nil {
		return fmt.Errorf("payment totals: %w", err)
	}
	a.GrossRevenueCents = totals.GrossCents
	a.PlatformFeesCents = totals.PlatformFeeCents
	a.ProcessorFeesCents = totals.ProcessorFeeCents
	a.PayoutsCents = totals.PayoutCents

	if a.DiscountsCents, err = uc.analyticsRepo.DiscountsTotal(ctx, id, from, to); err != nil {
		return fmt.Errorf("discounts: %w", err)
	}
	if a.OrderRevenueCents, err = uc.analyticsRepo.OrderRevenue(ctx, id, from, to); err != nil {
		return fmt.Errorf("order revenue: %w", err)
	}

	customers, err := uc.analyticsRepo.CustomerCounts(ctx, id, from, to)
	if err != nil {
		return fmt.Errorf("customers: %w", err)
	}
	a.UniqueCustomers = customers.Unique
	a.ReturningCustomers = customers.Returning

	if a.AverageRating, a.ReviewCount, err = uc.analyticsRepo.ReviewStats(ctx, id, from, to); err != nil {
		return fmt.Errorf("reviews: %w", err)
	}
	if a.TopServices, err = uc.analyticsRepo.TopServices(ctx, id, from, to, domain.AnalyticsTopServicesLimit); err != nil {
		return fmt.Errorf("top services: %w", err)
	}
	if a.Daily, err = uc.analyticsRepo.Daily(ctx, id, from, to); err != nil {
		return fmt.Errorf("daily: %w", err)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
