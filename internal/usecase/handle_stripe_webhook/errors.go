package handle_stripe_webhook

import "errors"

var (
	// ErrInvalidWebhook возвращается при неверной подписи или теле события
	ErrInvalidWebhook = errors.New("invalid webhook")

	// ErrNotConfigured возвращается, если секрет вебхука не задан
	ErrNotConfigured = errors.New("stripe webhooks are not configured")

	// ErrInternal возвращается при внутренних ошибках (Stripe повторит доставку)
	ErrInternal = errors.New("stripe webhook: internal error")
)
