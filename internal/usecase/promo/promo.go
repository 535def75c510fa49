// Package promo находит промоакцию по коду, применяет её к корзине и фиксирует использование
package promo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	promotionRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/promotion"
)

var (
	// ErrCodeNotFound промоакция с таким кодом у бизнеса не найдена
	ErrCodeNotFound = errors.New("promo: code not found")

	// ErrLookup ошибка чтения или записи промоакции
	ErrLookup = errors.New("promo: storage error")
)

// Finder поиск промоакции и истории клиента
type Finder interface {
	GetByCode(ctx context.Context, businessID int64, code string) (*domain.Promotion, error)
	CustomerUsage(ctx context.Context, promotionID, businessID, customerID int64) (domain.CustomerUsage, error)
}

// Repository хранилище промоакций
type Repository interface {
	Finder
	IncrementUsage(ctx context.Context, id int64) error
	CreateRedemption(ctx context.Context, red *domain.Redemption) (*domain.Redemption, error)
}

// Applied промоакция и рассчитанная скидка
type Applied struct {
	Promotion *domain.Promotion
	Result    *domain.DiscountResult
}

// Apply находит промоакцию по коду и считает скидку для корзины.
// В транзакции строка промоакции блокируется до коммита
func Apply(ctx context.Context, repo Finder, businessID, customerID int64, code string, cart domain.Cart, now time.Time) (*Applied, error) {
	promotion, err := repo.GetByCode(ctx, businessID, code)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("%w: get by code: %v", ErrLookup, err)
	}

	usage, err := repo.CustomerUsage(ctx, promotion.ID, businessID, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: customer usage: %v", ErrLookup, err)
	}

	result, err := promotion.Evaluate(cart, usage, now)
	if err != nil {
		return nil, err
	}

	return &Applied{Promotion: promotion, Result: result}, nil
}

// Redeem увеличивает счётчик использований и сохраняет использование
// Ровно одно из bookingID / orderID должно быть задано
func Redeem(ctx context.Context, repo Repository, applied *Applied, customerID int64, bookingID, orderID *int64) error {
	if err := repo.IncrementUsage(ctx, applied.Promotion.ID); err != nil {
		return fmt.Errorf("%w: increment usage: %v", ErrLookup, err)
	}

	_, err := repo.CreateRedemption(ctx, &domain.Redemption{
		PromotionID:   applied.Promotion.ID,
		CustomerID:    customerID,
		BookingID:     bookingID,
		OrderID:       orderID,
		DiscountCents: applied.Result.DiscountCents,
	})
	if err != nil {
		return fmt.Errorf("%w: create redemption: %v", ErrLookup, err)
	}
	return nil
}

// IsRejection ошибка означает, что промоакцию нельзя применить (а не сбой хранилища)
func IsRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var rejections = []error{
	ErrCodeNotFound,
	domain.ErrPromotionInactive,
	domain.ErrPromotionNotStarted,
	domain.ErrPromotionExpired,
	domain.ErrPromotionUsageLimitReached,
	domain.ErrPromotionCustomerLimitReached,
	domain.ErrPromotionNotEligible,
	domain.ErrPromotionBelowMinimum,
	domain.ErrPromotionNotApplicable,
	domain.ErrPromotionInvalid,
}

// Reason короткая причина отказа для клиента
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrCodeNotFound):
		return "промокод не найден"
	case errors.Is(err, domain.ErrPromotionInactive):
		return "промоакция не активна"
	case errors.Is(err, domain.ErrPromotionNotStarted):
		return "промоакция еще не началась"
	case errors.Is(err, domain.ErrPromotionExpired):
		return "срок промоакции истек"
	case errors.Is(err, domain.ErrPromotionUsageLimitReached):
		return "лимит использований промоакции исчерпан"
	case errors.Is(err, domain.ErrPromotionCustomerLimitReached):
		return "вы уже использовали эту промоакцию"
	case errors.Is(err, domain.ErrPromotionNotEligible):
		return "промоакция только для новых клиентов"
	case errors.Is(err, domain.ErrPromotionBelowMinimum):
		return "сумма заказа меньше минимальной для промоакции"
	case errors.Is(err, domain.ErrPromotionNotApplicable):
		return "промоакция не применяется к этим позициям"
	default:
		return "промокод нельзя применить"
	}
}
