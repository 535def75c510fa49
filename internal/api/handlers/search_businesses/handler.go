package search_businesses

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/businesses"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/businesses/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses
// Query params: city, category, q, limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := handlers.Pagination(r, defaultLimit, maxLimit)
	if err != nil {
		h.logger.Warn("GET /businesses - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.SearchRequest{
		City:     handlers.QueryString(r, "city"),
		Category: handlers.QueryString(r, "category"),
		Query:    handlers.QueryString(r, "q"),
		Limit:    limit,
		Offset:   offset,
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		if errors.Is(err, businesses.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /businesses - Failed to search businesses: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses - Search done: count=%d", len(result.Businesses))
	handlers.RespondJSON(w, http.StatusOK, result)
}
