package start_payout_onboarding

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = access.ErrBusinessNotFound

	// ErrAccessDenied возвращается, когда пользователь не управляет бизнесом
	ErrAccessDenied = access.ErrAccessDenied

	// ErrPaymentsUnavailable возвращается, когда Stripe не настроен или недоступен
	ErrPaymentsUnavailable = errors.New("payments provider is unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("payout onboarding: internal error")
)
