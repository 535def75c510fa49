package domain

import "time"

// PaymentRecordStatus статус платежа в платёжной системе
type PaymentRecordStatus string

const (
	PaymentRecordPending           PaymentRecordStatus = "pending"
	PaymentRecordSucceeded         PaymentRecordStatus = "succeeded"
	PaymentRecordFailed            PaymentRecordStatus = "failed"
	PaymentRecordRefunded          PaymentRecordStatus = "refunded"
	PaymentRecordPartiallyRefunded PaymentRecordStatus = "partially_refunded"
	PaymentRecordCanceled          PaymentRecordStatus = "canceled" // PaymentIntent отменен до оплаты
)

// Payment онлайн-платёж за бронирование или заказ
// Ровно одно из BookingID / OrderID заполнено
type Payment struct {
	ID                int64
	BusinessID        int64
	CustomerID        int64
	BookingID         *int64
	OrderID           *int64
	AmountCents       int64
	PlatformFeeCents  int64
	ProcessorFeeCents int64
	PayoutCents       int64
	RefundedCents     int64
	Currency          string
	ProviderIntentID  string
	Status            PaymentRecordStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ApplyFees заполняет суммы платежа из расчёта комиссий
func (p *Payment) ApplyFees(split FeeSplit) {
	p.AmountCents = split.TotalCents
	p.PlatformFeeCents = split.PlatformFeeCents
	p.ProcessorFeeCents = split.ProcessorFeeCents
	p.PayoutCents = split.PayoutCents
}

// IsRefundable платёж прошёл и ещё не возвращён полностью
func (p *Payment) IsRefundable() bool {
	return p.Status == PaymentRecordSucceeded || p.Status == PaymentRecordPartiallyRefunded
}

// PaymentIntent созданное намерение оплаты, возвращаемое клиенту
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// ConnectedAccountStatus состояние подключённого аккаунта бизнеса
type ConnectedAccountStatus struct {
	AccountID      string
	ChargesEnabled bool
	PayoutsEnabled bool
}
