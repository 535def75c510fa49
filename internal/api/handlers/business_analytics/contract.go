package business_analytics

import (
	"context"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/business_analytics"
)

type UseCase interface {
	Execute(ctx context.Context, req *business_analytics.Request) (*domain.BusinessAnalytics, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
