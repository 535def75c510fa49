package validate_promotion

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/promo"
	validatePromotion "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/validate_promotion"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPromotionNotFound  = "промокод не найден"
	msgItemNotFound       = "позиция корзины не найдена"
	msgInvalidCart        = "некорректная корзина"
)

type Handler struct {
	useCase ValidatePromotionUseCase
	logger  Logger
}

func NewHandler(useCase ValidatePromotionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/promotions/validate
// Предпросмотр скидки: промокод не списывается
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

	var req ValidatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/promotions/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(businessID, userID))
	if err != nil {
		switch {
		case errors.Is(err, validatePromotion.ErrPromotionNotFound):
			handlers.RespondNotFound(w, msgPromotionNotFound)
		case errors.Is(err, validatePromotion.ErrPromotionRejected):
			handlers.RespondError(w, http.StatusUnprocessableEntity, promo.Reason(err))
		case errors.Is(err, validatePromotion.ErrItemNotFound):
			handlers.RespondNotFound(w, msgItemNotFound)
		case errors.Is(err, validatePromotion.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidCart)
		default:
			h.logger.Error("POST /businesses/{id}/promotions/validate - Failed to validate: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
