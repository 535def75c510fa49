package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

const receiveErrorBackoff = 5 * time.Second

// Consumer читает события из SQS и передает их в Dispatcher
type Consumer struct {
	client      SQSAPI
	queueURL    string
	dispatcher  Dispatcher
	waitTime    int32
	maxMessages int32
	log         Logger
}

// NewConsumer создает consumer с long polling
func NewConsumer(client SQSAPI, queueURL string, dispatcher Dispatcher, waitTime, maxMessages int32, log Logger) *Consumer {
	return &Consumer{
		client:      client,
		queueURL:    queueURL,
		dispatcher:  dispatcher,
		waitTime:    waitTime,
		maxMessages: maxMessages,
		log:         log,
	}
}

// Run читает очередь до отмены контекста
func (c *Consumer) Run(ctx context.Context) {
	c.log.Info("Notification consumer started: queue=%s", c.queueURL)

	for {
		if ctx.Err() != nil {
			c.log.Info("Notification consumer stopped")
			return
		}

		if _, err := c.PollOnce(ctx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				continue
			}
			c.log.Error("Failed to poll queue: %v", err)

			select {
			case <-ctx.Done():
			case <-time.After(receiveErrorBackoff):
			}
		}
	}
}

// PollOnce получает одну пачку сообщений и обрабатывает её
// Возвращает количество успешно обработанных сообщений
func (c *Consumer) PollOnce(ctx context.Context) (int, error) {
	out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(c.queueURL),
		MaxNumberOfMessages:   c.maxMessages,
		WaitTimeSeconds:       c.waitTime,
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReceive, err)
	}

	processed := 0
	for _, msg := range out.Messages {
		if c.handle(ctx, msg) {
			processed++
		}
	}

	return processed, nil
}

// handle обрабатывает сообщение; при ошибке доставки сообщение остается в очереди
// и вернется после visibility timeout
func (c *Consumer) handle(ctx context.Context, msg types.Message) bool {
	var event domain.NotificationEvent
	if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &event); err != nil {
		// Битое сообщение не станет корректным при повторе
		c.log.Error("Dropping malformed message %s: %v", aws.ToString(msg.MessageId), err)
		c.delete(ctx, msg)
		return false
	}

	if err := c.dispatcher.Dispatch(ctx, event); err != nil {
		c.log.Warn("Failed to dispatch event: type=%s, id=%s, error=%v", event.Type, event.ID, err)
		return false
	}

	c.delete(ctx, msg)
	return true
}

func (c *Consumer) delete(ctx context.Context, msg types.Message) {
	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		c.log.Error("Failed to delete message %s: %v", aws.ToString(msg.MessageId), err)
	}
}
