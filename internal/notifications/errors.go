package notifications

import "errors"

var (
	// ErrUnknownEvent тип события без шаблона
	ErrUnknownEvent = errors.New("notifications: unknown event type")

	// ErrRender ошибка рендеринга шаблона
	ErrRender = errors.New("notifications: failed to render template")

	// ErrDelivery ни один канал не доставил уведомление
	ErrDelivery = errors.New("notifications: delivery failed")

	// ErrContactsUnavailable контакты клиента временно недоступны
	ErrContactsUnavailable = errors.New("notifications: contacts unavailable")
)
