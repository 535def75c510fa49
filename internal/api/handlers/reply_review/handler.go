package reply_review

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/reviews"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/reviews/models"
)

const (
	msgInvalidReviewID    = "некорректный ID отзыва"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgReviewNotFound     = "отзыв не найден"
	msgForbidden          = "доступ запрещен"
	msgAlreadyReplied     = "на отзыв уже дан ответ"
	msgInvalidReply       = "ответ не может быть пустым"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reviews/{reviewId}/reply
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewID, err := handlers.PathInt64(r, "reviewId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ReplyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Reply(r.Context(), reviewID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound), errors.Is(err, reviews.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgReviewNotFound)
		case errors.Is(err, reviews.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, reviews.ErrAlreadyReplied):
			handlers.RespondConflict(w, msgAlreadyReplied)
		case errors.Is(err, reviews.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReply)
		default:
			h.logger.Error("POST /reviews/{id}/reply - Failed to reply: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews/{id}/reply - Reply added: review_id=%d", reviewID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
