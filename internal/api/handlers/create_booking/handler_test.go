package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	createBooking "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

const validBody = `{"businessId":10,"serviceId":3,"bookingDate":"2025-10-15","startTime":"10:00","promoCode":"WELCOME"}`

func newRequest(body string, userID *int64) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != nil {
		r = r.WithContext(middleware.WithUserID(r.Context(), *userID))
	}
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHandle_Created(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, logger.NewNop())
	userID := int64(7)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	start, _ := types.NewTimeStringFromString("10:00")
	secret := "pi_1_secret"
	intent := "pi_1"

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.CustomerID == userID && req.BusinessID == 10 && req.ServiceID == 3 &&
			req.Date.Equal(date) && req.StartTime == start &&
			req.PromoCode != nil && *req.PromoCode == "WELCOME" && req.StaffID == nil
	})).Return(&createBooking.Response{
		Booking: &domain.Booking{
			ID:            55,
			CustomerID:    userID,
			BusinessID:    10,
			ServiceID:     3,
			StaffID:       4,
			BookingDate:   date,
			StartTime:     start,
			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentPending,
			TotalCents:    4500,
			Currency:      "USD",
		},
		PaymentIntentID:     &intent,
		PaymentClientSecret: &secret,
	}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(validBody, &userID))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Booking struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"booking"`
		PaymentIntentID     string `json:"paymentIntentId"`
		PaymentClientSecret string `json:"paymentClientSecret"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(55), body.Booking.ID)
	assert.Equal(t, "pending", body.Booking.Status)
	assert.Equal(t, intent, body.PaymentIntentID)
	assert.Equal(t, secret, body.PaymentClientSecret)
	uc.AssertExpectations(t)
}

func TestHandle_Unauthorized(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(validBody, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_BadInput(t *testing.T) {
	userID := int64(7)
	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"unknown field", `{"businessId":10,"foo":1}`, msgInvalidRequestBody},
		{"bad date", `{"businessId":10,"serviceId":3,"bookingDate":"15.10.2025","startTime":"10:00"}`, msgInvalidDate},
		{"bad time", `{"businessId":10,"serviceId":3,"bookingDate":"2025-10-15","startTime":"25:99"}`, msgInvalidTime},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &useCaseMock{}
			h := NewHandler(uc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tc.body, &userID))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.msg, decodeError(t, rec).Message)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	userID := int64(7)
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"slot taken", createBooking.ErrSlotNotAvailable, http.StatusConflict, msgSlotNotAvailable},
		{"no business", createBooking.ErrBusinessNotFound, http.StatusNotFound, msgBusinessNotFound},
		{"too late", createBooking.ErrTooLateToBook, http.StatusBadRequest, msgTooLateToBook},
		{
			"promotion expired",
			fmt.Errorf("%w: %w", createBooking.ErrPromotionRejected, domain.ErrPromotionExpired),
			http.StatusUnprocessableEntity,
			"срок промоакции истек",
		},
		{"payments down", createBooking.ErrPaymentUnavailable, http.StatusBadGateway, msgPaymentUnavailable},
		{"unexpected", assert.AnError, http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &useCaseMock{}
			h := NewHandler(uc, logger.NewNop())
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(validBody, &userID))

			assert.Equal(t, tc.status, rec.Code)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, decodeError(t, rec).Message)
			}
		})
	}
}
