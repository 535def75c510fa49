package cancel_booking

import "github.com/m04kA/SMC-BeautyMarketplace/internal/domain"

// Request запрос на отмену бронирования
type Request struct {
	BookingID int64
	UserID    int64
	Reason    *string
}

// Response отмененное бронирование и сумма возврата
type Response struct {
	Booking     *domain.Booking
	RefundCents int64
}
