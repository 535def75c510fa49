package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/pkg/types"
)

// Request запрос на перенос бронирования
type Request struct {
	BookingID int64
	UserID    int64
	Date      time.Time
	StartTime types.TimeString
}
