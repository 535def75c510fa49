package start_payout_onboarding

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/start_payout_onboarding"
)

type UseCase interface {
	Execute(ctx context.Context, businessID, userID int64) (*start_payout_onboarding.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
