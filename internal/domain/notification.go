package domain

import "time"

// EventType тип события для уведомлений
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingReminder  EventType = "booking.reminder"
	EventPaymentSucceeded EventType = "payment.succeeded"
	EventOrderCreated     EventType = "order.created"
)

// NotificationEvent событие, по которому клиенту отправляется уведомление
type NotificationEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	BusinessID int64     `json:"businessId"`
	CustomerID int64     `json:"customerId"`
	BookingID  *int64    `json:"bookingId,omitempty"`
	OrderID    *int64    `json:"orderId,omitempty"`

	BusinessName string `json:"businessName"`
	ServiceName  string `json:"serviceName,omitempty"`
	StaffName    string `json:"staffName,omitempty"`
	Date         string `json:"date,omitempty"`
	StartTime    string `json:"startTime,omitempty"`
	TotalCents   int64  `json:"totalCents"`
	Currency     string `json:"currency"`
	Reason       string `json:"reason,omitempty"`
	RefundCents  int64  `json:"refundCents,omitempty"`

	OccurredAt time.Time `json:"occurredAt"`
}

// BookingEvent собирает событие по бронированию
func BookingEvent(eventType EventType, b *Booking, businessName string, at time.Time) NotificationEvent {
	bookingID := b.ID
	event := NotificationEvent{
		Type:         eventType,
		BusinessID:   b.BusinessID,
		CustomerID:   b.CustomerID,
		BookingID:    &bookingID,
		BusinessName: businessName,
		ServiceName:  b.ServiceName,
		StaffName:    b.StaffName,
		Date:         b.BookingDate.Format(DateFormat),
		StartTime:    b.StartTime.String(),
		TotalCents:   b.TotalCents,
		Currency:     b.Currency,
		OccurredAt:   at,
	}
	if b.CancellationReason != nil {
		event.Reason = *b.CancellationReason
	}
	return event
}

// OrderEvent собирает событие по заказу
func OrderEvent(eventType EventType, o *Order, businessName string, at time.Time) NotificationEvent {
	orderID := o.ID
	return NotificationEvent{
		Type:         eventType,
		BusinessID:   o.BusinessID,
		CustomerID:   o.CustomerID,
		OrderID:      &orderID,
		BusinessName: businessName,
		TotalCents:   o.TotalCents,
		Currency:     o.Currency,
		OccurredAt:   at,
	}
}

// ContactProfile контакты клиента для уведомлений
type ContactProfile struct {
	UserID     int64
	Name       string
	Email      *string
	Phone      *string
	Locale     string
	EmailOptIn bool
	SMSOptIn   bool
}
