package email

import "errors"

var (
	// ErrNoRecipient возвращается, когда адрес получателя пустой
	ErrNoRecipient = errors.New("email client: empty recipient")

	// ErrSend возвращается при ошибке отправки письма
	ErrSend = errors.New("email client: send failed")
)
