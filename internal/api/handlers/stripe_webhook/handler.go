package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/handle_stripe_webhook"
)

const (
	msgInvalidPayload = "некорректное событие"
	msgNotConfigured  = "прием платежных событий не настроен"

	signatureHeader = "Stripe-Signature"
	maxBodyBytes    = 65536
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

// Handle POST /api/v1/payments/stripe/webhook
// Тело читается целиком: подпись проверяется по исходным байтам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		h.logger.Warn("POST /payments/stripe/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}
	if len(payload) > maxBodyBytes {
		handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgInvalidPayload)
		return
	}

	err = h.useCase.Execute(r.Context(), payload, r.Header.Get(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, handle_stripe_webhook.ErrInvalidWebhook):
			h.logger.Warn("POST /payments/stripe/webhook - Rejected event: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
		case errors.Is(err, handle_stripe_webhook.ErrNotConfigured):
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)
		default:
			h.logger.Error("POST /payments/stripe/webhook - Failed to process event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
