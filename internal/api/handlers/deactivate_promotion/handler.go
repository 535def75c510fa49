package deactivate_promotion

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/promotions"
)

const (
	msgInvalidID         = "некорректный ID"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgBusinessNotFound  = "бизнес не найден"
	msgPromotionNotFound = "промоакция не найдена"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service PromotionService
	logger  Logger
}

func NewHandler(service PromotionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/businesses/{businessId}/promotions/{promotionId}
// Промоакция выключается, история использований сохраняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	promotionID, err := handlers.PathInt64(r, "promotionId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Deactivate(r.Context(), businessID, promotionID, userID); err != nil {
		switch {
		case errors.Is(err, promotions.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, promotions.ErrPromotionNotFound):
			handlers.RespondNotFound(w, msgPromotionNotFound)
		case errors.Is(err, promotions.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /businesses/{id}/promotions/{id} - Failed to deactivate: promotion_id=%d, error=%v", promotionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/promotions/{id} - Promotion deactivated: promotion_id=%d", promotionID)
	w.WriteHeader(http.StatusNoContent)
}
