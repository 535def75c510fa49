package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

const (
	attrEventType  = "EventType"
	attrBusinessID = "BusinessID"

	inProcessDispatchTimeout = 30 * time.Second
)

// SQSPublisher публикует события уведомлений в SQS
type SQSPublisher struct {
	client   SQSAPI
	queueURL string
	log      Logger
}

// NewSQSPublisher создает publisher для очереди queueURL
func NewSQSPublisher(client SQSAPI, queueURL string, log Logger) *SQSPublisher {
	return &SQSPublisher{
		client:   client,
		queueURL: queueURL,
		log:      log,
	}
}

// Publish отправляет событие в очередь
func (p *SQSPublisher) Publish(ctx context.Context, event domain.NotificationEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			attrEventType: {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Type)),
			},
			attrBusinessID: {
				DataType:    aws.String("Number"),
				StringValue: aws.String(strconv.FormatInt(event.BusinessID, 10)),
			},
		},
	})
	if err != nil {
		p.log.Error("Failed to publish event: type=%s, id=%s, error=%v", event.Type, event.ID, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Event published: type=%s, id=%s", event.Type, event.ID)
	return nil
}

// InProcessPublisher доставляет события в фоне внутри процесса, без очереди
type InProcessPublisher struct {
	dispatcher Dispatcher
	log        Logger
	wg         sync.WaitGroup
}

// NewInProcessPublisher создает publisher без внешней очереди
func NewInProcessPublisher(dispatcher Dispatcher, log Logger) *InProcessPublisher {
	return &InProcessPublisher{
		dispatcher: dispatcher,
		log:        log,
	}
}

// Publish запускает доставку события и сразу возвращает управление
func (p *InProcessPublisher) Publish(ctx context.Context, event domain.NotificationEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), inProcessDispatchTimeout)
		defer cancel()

		if err := p.dispatcher.Dispatch(dispatchCtx, event); err != nil {
			p.log.Warn("In-process dispatch failed: type=%s, id=%s, error=%v", event.Type, event.ID, err)
		}
	}()

	return nil
}

// Close ждет завершения начатых доставок
func (p *InProcessPublisher) Close() {
	p.wg.Wait()
}
