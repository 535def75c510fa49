package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	StaffID    *int64    // Конкретный мастер (опционально)
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time
	BusinessID int64
	ServiceID  int64
	Timezone   string
	Slots      []domain.AvailableSlot // По возрастанию времени начала
}
