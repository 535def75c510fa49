package set_cover

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/media"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/media/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidKey         = "файл не принадлежит бизнесу"
	msgStorageUnavailable = "хранилище файлов недоступно"
)

type Handler struct {
	service MediaService
	logger  Logger
}

func NewHandler(service MediaService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/cover
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

	var req models.SetCoverRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BusinessID = businessID
	req.UserID = userID

	result, err := h.service.SetCover(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, media.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, media.ErrInvalidKey), errors.Is(err, media.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidKey)
		case errors.Is(err, media.ErrStorageUnavailable):
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)
		default:
			h.logger.Error("PUT /businesses/{id}/cover - Failed to set cover: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/cover - Cover updated: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
