package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID  int64   `json:"businessId"`
	ServiceID   int64   `json:"serviceId"`
	StaffID     *int64  `json:"staffId,omitempty"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	PromoCode   *string `json:"promoCode,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// CreateBookingResponse бронирование и данные для оплаты на клиенте
type CreateBookingResponse struct {
	Booking             *models.BookingResponse `json:"booking"`
	PaymentIntentID     *string                 `json:"paymentIntentId,omitempty"`
	PaymentClientSecret *string                 `json:"paymentClientSecret,omitempty"`
}

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		CustomerID: customerID,
		BusinessID: r.BusinessID,
		ServiceID:  r.ServiceID,
		StaffID:    r.StaffID,
		Date:       bookingDate,
		StartTime:  startTime,
		PromoCode:  r.PromoCode,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:             models.FromDomainBooking(resp.Booking),
		PaymentIntentID:     resp.PaymentIntentID,
		PaymentClientSecret: resp.PaymentClientSecret,
	}
}
