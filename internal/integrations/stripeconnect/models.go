package stripeconnect

import "github.com/m04kA/SMC-BeautyMarketplace/internal/domain"

// Типы событий вебхука, которые обрабатывает платформа
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventAccountUpdated   = "account.updated"
	EventChargeRefunded   = "charge.refunded"
)

// Метаданные PaymentIntent
const (
	MetadataBusinessID = "business_id"
	MetadataBookingID  = "booking_id"
	MetadataOrderID    = "order_id"
)

// PaymentIntentRequest параметры destination charge
type PaymentIntentRequest struct {
	AmountCents         int64
	Currency            string
	ApplicationFeeCents int64  // Комиссия платформы + процессинг
	DestinationAccount  string // Connected account бизнеса
	IdempotencyKey      string
	Metadata            map[string]string
}

// RefundRequest параметры возврата
// AmountCents = 0 - полный возврат
type RefundRequest struct {
	IntentID       string
	AmountCents    int64
	IdempotencyKey string
}

// Refund результат возврата
type Refund struct {
	ID          string
	AmountCents int64
	Status      string
}

// WebhookEvent разобранное событие вебхука
type WebhookEvent struct {
	ID   string
	Type string

	// payment_intent.*, charge.refunded
	IntentID      string
	AmountCents   int64
	RefundedCents int64
	Metadata      map[string]string

	// account.updated
	Account *domain.ConnectedAccountStatus
}

// IsSupported событие из списка обрабатываемых
func (e *WebhookEvent) IsSupported() bool {
	switch e.Type {
	case EventPaymentSucceeded, EventPaymentFailed, EventAccountUpdated, EventChargeRefunded:
		return true
	default:
		return false
	}
}
