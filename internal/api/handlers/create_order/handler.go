package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	createOrder "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/create_order"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/promo"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgProductNotFound    = "товар не найден"
	msgInsufficientStock  = "недостаточно товара на складе"
	msgMixedCurrency      = "товары заказа должны быть в одной валюте"
	msgPaymentUnavailable = "онлайн-оплата временно недоступна"
	msgInvalidOrder       = "некорректные данные заказа"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, createOrder.ErrProductNotFound):
			handlers.RespondNotFound(w, msgProductNotFound)
		case errors.Is(err, createOrder.ErrInsufficientStock):
			h.logger.Warn("POST /orders - Insufficient stock: user_id=%d, business_id=%d", userID, req.BusinessID)
			handlers.RespondConflict(w, msgInsufficientStock)
		case errors.Is(err, createOrder.ErrMixedCurrency):
			handlers.RespondBadRequest(w, msgMixedCurrency)
		case errors.Is(err, createOrder.ErrPromotionRejected):
			handlers.RespondError(w, http.StatusUnprocessableEntity, promo.Reason(err))
		case errors.Is(err, createOrder.ErrPaymentUnavailable):
			h.logger.Error("POST /orders - Payment unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)
		case errors.Is(err, createOrder.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidOrder)
		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%d, business_id=%d, error=%v",
				userID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created: order_id=%d, user_id=%d, total=%d",
		result.Order.ID, userID, result.Order.TotalCents)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
