package stripeconnect

import "errors"

var (
	// ErrNotConfigured возвращается, когда ключ Stripe не задан
	ErrNotConfigured = errors.New("stripe client: not configured")

	// ErrRequest возвращается при ошибке вызова Stripe API
	ErrRequest = errors.New("stripe client: request failed")

	// ErrInvalidSignature возвращается, когда подпись вебхука не прошла проверку
	ErrInvalidSignature = errors.New("stripe client: invalid webhook signature")

	// ErrInvalidPayload возвращается, когда данные события не удалось разобрать
	ErrInvalidPayload = errors.New("stripe client: invalid webhook payload")
)
