package start_payout_onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

// Response ссылка на онбординг Stripe Express
type Response struct {
	AccountID      string `json:"accountId"`
	OnboardingURL  string `json:"onboardingUrl"`
	ChargesEnabled bool   `json:"chargesEnabled"`
	PayoutsEnabled bool   `json:"payoutsEnabled"`
}

// UseCase подключает бизнес к выплатам через Stripe Connect
type UseCase struct {
	businessRepo BusinessRepository
	connect      ConnectProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(businessRepo BusinessRepository, connect ConnectProvider, logger Logger) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		connect:      connect,
		logger:       logger,
	}
}

// Execute создает Express аккаунт, если его еще нет, и возвращает ссылку на онбординг.
// Повторный вызов выдает новую ссылку для того же аккаунта
func (uc *UseCase) Execute(ctx context.Context, businessID, userID int64) (*Response, error) {
	uc.logger.Info("StartPayoutOnboarding: business=%d, user=%d", businessID, userID)

	business, err := access.RequireManager(ctx, uc.businessRepo, businessID, userID)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrBusinessNotFound), errors.Is(err, access.ErrAccessDenied):
			uc.logger.Warn("StartPayoutOnboarding: %v, business=%d, user=%d", err, businessID, userID)
			return nil, err
		default:
			uc.logger.Error("StartPayoutOnboarding: failed to get business id=%d: %v", businessID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	var accountID string
	if business.StripeAccountID != nil && *business.StripeAccountID != "" {
		accountID = *business.StripeAccountID
	} else {
		accountID, err = uc.connect.CreateConnectedAccount(ctx, business.ID, business.Email)
		if err != nil {
			uc.logger.Error("StartPayoutOnboarding: failed to create account for business id=%d: %v", business.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentsUnavailable, err)
		}
		if err := uc.businessRepo.SetStripeAccount(ctx, business.ID, accountID); err != nil {
			uc.logger.Error("StartPayoutOnboarding: failed to store account %s for business id=%d: %v", accountID, business.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.logger.Info("StartPayoutOnboarding: business id=%d linked to account %s", business.ID, accountID)
	}

	url, err := uc.connect.CreateOnboardingLink(ctx, accountID)
	if err != nil {
		uc.logger.Error("StartPayoutOnboarding: failed to create onboarding link for account %s: %v", accountID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentsUnavailable, err)
	}

	return &Response{
		AccountID:      accountID,
		OnboardingURL:  url,
		ChargesEnabled: business.ChargesEnabled,
		PayoutsEnabled: business.PayoutsEnabled,
	}, nil
}
