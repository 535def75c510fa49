package sms

import "errors"

var (
	// ErrNoRecipient возвращается, когда номер получателя пустой
	ErrNoRecipient = errors.New("sms client: empty recipient")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("sms client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("sms client: invalid response")
)
