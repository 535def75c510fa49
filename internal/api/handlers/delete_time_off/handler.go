package delete_time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/staff"
)

const (
	msgInvalidID        = "некорректный ID"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgBusinessNotFound = "бизнес не найден"
	msgStaffNotFound    = "мастер не найден"
	msgTimeOffNotFound  = "выходной не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/businesses/{businessId}/staff/{staffId}/time-off/{timeOffId}
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
	timeOffID, err := handlers.PathInt64(r, "timeOffId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteTimeOff(r.Context(), businessID, staffID, timeOffID, userID); err != nil {
		switch {
		case errors.Is(err, staff.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, staff.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, staff.ErrTimeOffNotFound):
			handlers.RespondNotFound(w, msgTimeOffNotFound)
		case errors.Is(err, staff.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /businesses/{id}/staff/{id}/time-off/{id} - Failed to delete time off: id=%d, error=%v", timeOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/staff/{id}/time-off/{id} - Time off deleted: id=%d", timeOffID)
	w.WriteHeader(http.StatusNoContent)
}
