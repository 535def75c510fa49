package cancel_booking

import (
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelBookingResponse отмененное бронирование и сумма возврата
type CancelBookingResponse struct {
	Booking     *models.BookingResponse `json:"booking"`
	RefundCents int64                   `json:"refundCents"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, userID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Reason:    r.CancellationReason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking:     models.FromDomainBooking(resp.Booking),
		RefundCents: resp.RefundCents,
	}
}
