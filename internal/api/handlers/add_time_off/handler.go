package add_time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/staff"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/staff/models"
)

const (
	msgInvalidID          = "некорректный ID"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgStaffNotFound      = "мастер не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidTimeOff     = "некорректная дата выходного"
	msgTimeOffExists      = "выходной на эту дату уже есть"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/staff/{staffId}/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/staff/{id}/time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.AddTimeOff(r.Context(), businessID, staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, staff.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, staff.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, staff.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTimeOff)
		case errors.Is(err, staff.ErrTimeOffExists):
			handlers.RespondConflict(w, msgTimeOffExists)
		default:
			h.logger.Error("POST /businesses/{id}/staff/{id}/time-off - Failed to add time off: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/staff/{id}/time-off - Time off added: staff_id=%d, date=%s", staffID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
