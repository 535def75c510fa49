package validate_promotion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	validatePromotion "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/validate_promotion"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *validatePromotion.Request) (*validatePromotion.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*validatePromotion.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

const cartBody = `{"code":"spring","items":[{"kind":"service","itemId":3,"quantity":1},{"kind":"product","itemId":8,"quantity":2}]}`

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/businesses/{businessId}/promotions/validate", h.Handle).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/businesses/10/promotions/validate", strings.NewReader(body))
	r = r.WithContext(middleware.WithUserID(r.Context(), 7))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandle_Preview(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, logger.NewNop())

	uc.On("Execute", mock.Anything, &validatePromotion.Request{
		BusinessID: 10,
		CustomerID: 7,
		Code:       "spring",
		Items: []validatePromotion.CartItem{
			{Kind: domain.ItemService, ItemID: 3, Quantity: 1},
			{Kind: domain.ItemProduct, ItemID: 8, Quantity: 2},
		},
	}).Return(&validatePromotion.Response{
		PromotionID:   1,
		Code:          "SPRING",
		Type:          domain.PromotionPercentage,
		SubtotalCents: 10000,
		DiscountCents: 1000,
		TotalCents:    9000,
	}, nil)

	rec := serve(h, cartBody)

	require.Equal(t, http.StatusOK, rec.Code)
	var body validatePromotion.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(1000), body.DiscountCents)
	assert.Equal(t, int64(9000), body.TotalCents)
	uc.AssertExpectations(t)
}

func TestHandle_RejectedWithReason(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, logger.NewNop())

	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", validatePromotion.ErrPromotionRejected, domain.ErrPromotionBelowMinimum))

	rec := serve(h, cartBody)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "сумма заказа меньше минимальной для промоакции", body.Message)
}

func TestHandle_NotFound(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, logger.NewNop())

	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, validatePromotion.ErrPromotionNotFound)

	rec := serve(h, cartBody)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
