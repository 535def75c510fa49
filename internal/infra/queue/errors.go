package queue

import "errors"

var (
	// ErrPublish ошибка отправки события в очередь
	ErrPublish = errors.New("queue: failed to publish event")

	// ErrReceive ошибка получения сообщений из очереди
	ErrReceive = errors.New("queue: failed to receive messages")
)
