package update_promotion

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/promotions"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/promotions/models"
)

const (
	msgInvalidID          = "некорректный ID"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgPromotionNotFound  = "промоакция не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidPromotion   = "некорректные условия промоакции"
	msgCodeTaken          = "промокод уже используется"
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

// Handle PUT /api/v1/businesses/{businessId}/promotions/{promotionId}
// Определение промоакции заменяется целиком
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

	var req models.UpdatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/promotions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), businessID, promotionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, promotions.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, promotions.ErrPromotionNotFound):
			handlers.RespondNotFound(w, msgPromotionNotFound)
		case errors.Is(err, promotions.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, promotions.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPromotion)
		case errors.Is(err, promotions.ErrCodeTaken):
			handlers.RespondConflict(w, msgCodeTaken)
		default:
			h.logger.Error("PUT /businesses/{id}/promotions/{id} - Failed to update promotion: promotion_id=%d, error=%v", promotionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/promotions/{id} - Promotion updated: promotion_id=%d", promotionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
