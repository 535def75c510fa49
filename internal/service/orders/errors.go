package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrAccessDenied возвращается, когда пользователь не клиент и не менеджер бизнеса
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus заказ нельзя выдать в текущем статусе
	ErrInvalidStatus = errors.New("order cannot be fulfilled in current status")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders service: internal error")
)
