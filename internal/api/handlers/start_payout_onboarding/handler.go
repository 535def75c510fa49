package start_payout_onboarding

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/start_payout_onboarding"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgBusinessNotFound    = "бизнес не найден"
	msgForbidden           = "доступ запрещен"
	msgPaymentsUnavailable = "платежный провайдер недоступен"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/payouts/onboarding
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), businessID, userID)
	if err != nil {
		switch {
		case errors.Is(err, start_payout_onboarding.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, start_payout_onboarding.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, start_payout_onboarding.ErrPaymentsUnavailable):
			h.logger.Warn("POST /businesses/{id}/payouts/onboarding - Provider unavailable: business_id=%d, error=%v", businessID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentsUnavailable)
		default:
			h.logger.Error("POST /businesses/{id}/payouts/onboarding - Failed to start onboarding: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/payouts/onboarding - Onboarding link issued: business_id=%d, account_id=%s", businessID, result.AccountID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
