package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	cancelBooking "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*cancelBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

// serve прогоняет запрос через роутер, чтобы заполнить переменные пути
func serve(h *Handler, r *http.Request) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func newRequest(path, body string, userID int64) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

func TestHandle_EmptyBody(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, logger.NewNop())

	uc.On("Execute", mock.Anything, &cancelBooking.Request{BookingID: 12, UserID: 7}).
		Return(&cancelBooking.Response{
			Booking:     &domain.Booking{ID: 12, Status: domain.StatusCancelledByUser, PaymentStatus: domain.PaymentRefunded},
			RefundCents: 4500,
		}, nil)

	rec := serve(h, newRequest("/api/v1/bookings/12/cancel", "", 7))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Booking struct {
			Status string `json:"status"`
		} `json:"booking"`
		RefundCents int64 `json:"refundCents"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "cancelled_by_user", body.Booking.Status)
	assert.Equal(t, int64(4500), body.RefundCents)
	uc.AssertExpectations(t)
}

func TestHandle_WithReason(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, logger.NewNop())

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *cancelBooking.Request) bool {
		return req.Reason != nil && *req.Reason == "заболел"
	})).Return(&cancelBooking.Response{Booking: &domain.Booking{ID: 12}}, nil)

	rec := serve(h, newRequest("/api/v1/bookings/12/cancel", `{"cancellationReason":"заболел"}`, 7))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", cancelBooking.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", cancelBooking.ErrAccessDenied, http.StatusForbidden},
		{"already completed", cancelBooking.ErrInvalidStatus, http.StatusBadRequest},
		{"refund failed", cancelBooking.ErrRefundFailed, http.StatusBadGateway},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &useCaseMock{}
			h := NewHandler(uc, logger.NewNop())
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := serve(h, newRequest("/api/v1/bookings/12/cancel", "", 7))

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandle_InvalidBookingID(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, logger.NewNop())

	rec := serve(h, newRequest("/api/v1/bookings/abc/cancel", "", 7))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
