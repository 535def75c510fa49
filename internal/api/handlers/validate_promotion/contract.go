package validate_promotion

import (
	"context"

	validatePromotion "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/validate_promotion"
)

type ValidatePromotionUseCase interface {
	Execute(ctx context.Context, req *validatePromotion.Request) (*validatePromotion.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
