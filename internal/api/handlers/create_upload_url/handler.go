package create_upload_url

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/media"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/media/models"
)

const (
	msgInvalidBusinessID      = "некорректный ID бизнеса"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgBusinessNotFound       = "бизнес не найден"
	msgForbidden              = "доступ запрещен"
	msgUnsupportedContentType = "поддерживаются только изображения jpeg, png и webp"
	msgInvalidKind            = "некорректный тип файла"
	msgStorageUnavailable     = "загрузка файлов временно недоступна"
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

// Handle POST /api/v1/businesses/{businessId}/media/upload-url
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

	var req models.CreateUploadURLRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BusinessID = businessID
	req.UserID = userID

	result, err := h.service.CreateUploadURL(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, media.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, media.ErrUnsupportedContentType):
			handlers.RespondError(w, http.StatusUnsupportedMediaType, msgUnsupportedContentType)
		case errors.Is(err, media.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidKind)
		case errors.Is(err, media.ErrStorageUnavailable):
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)
		default:
			h.logger.Error("POST /businesses/{id}/media/upload-url - Failed to presign upload: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/media/upload-url - Upload URL issued: business_id=%d, key=%s", businessID, result.Key)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
