package business_analytics

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/business_analytics"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidRange      = "некорректный период: даты в формате YYYY-MM-DD, не более года"
	msgBusinessNotFound  = "бизнес не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/businesses/{businessId}/analytics
// Query params: from, to (YYYY-MM-DD, включительно)
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

	from, to, err := parseRange(r, time.Now().UTC())
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &business_analytics.Request{
		BusinessID: businessID,
		UserID:     userID,
		From:       from,
		To:         to,
	})
	if err != nil {
		switch {
		case errors.Is(err, business_analytics.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, business_analytics.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, business_analytics.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /businesses/{id}/analytics - Failed to build analytics: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}
