package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

const queueURL = "https://sqs.us-east-1.amazonaws.com/000000000000/notifications"

type sqsMock struct {
	mock.Mock
}

func (m *sqsMock) SendMessage(ctx context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sqs.SendMessageOutput)
	return out, args.Error(1)
}

func (m *sqsMock) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sqs.ReceiveMessageOutput)
	return out, args.Error(1)
}

func (m *sqsMock) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sqs.DeleteMessageOutput)
	return out, args.Error(1)
}

type dispatcherMock struct {
	mock.Mock
}

func (m *dispatcherMock) Dispatch(ctx context.Context, event domain.NotificationEvent) error {
	return m.Called(ctx, event).Error(0)
}

func testEvent() domain.NotificationEvent {
	bookingID := int64(42)
	return domain.NotificationEvent{
		ID:           "evt-1",
		Type:         domain.EventBookingCreated,
		BusinessID:   7,
		CustomerID:   100,
		BookingID:    &bookingID,
		BusinessName: "Glow Studio",
		OccurredAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSQSPublisher_Publish(t *testing.T) {
	client := &sqsMock{}
	client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
		var event domain.NotificationEvent
		if err := json.Unmarshal([]byte(aws.ToString(in.MessageBody)), &event); err != nil {
			return false
		}
		return aws.ToString(in.QueueUrl) == queueURL &&
			event.ID == "evt-1" &&
			aws.ToString(in.MessageAttributes[attrEventType].StringValue) == "booking.created" &&
			aws.ToString(in.MessageAttributes[attrBusinessID].StringValue) == "7"
	})).Return(&sqs.SendMessageOutput{}, nil)

	publisher := NewSQSPublisher(client, queueURL, logger.NewNop())
	require.NoError(t, publisher.Publish(context.Background(), testEvent()))

	client.AssertExpectations(t)
}

func TestSQSPublisher_PublishError(t *testing.T) {
	client := &sqsMock{}
	client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	publisher := NewSQSPublisher(client, queueURL, logger.NewNop())
	err := publisher.Publish(context.Background(), testEvent())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestInProcessPublisher(t *testing.T) {
	dispatcher := &dispatcherMock{}
	dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(e domain.NotificationEvent) bool {
		return e.Type == domain.EventBookingCreated
	})).Return(nil).Once()

	publisher := NewInProcessPublisher(dispatcher, logger.NewNop())
	require.NoError(t, publisher.Publish(context.Background(), testEvent()))
	publisher.Close()

	dispatcher.AssertExpectations(t)
}

func TestConsumer_PollOnce(t *testing.T) {
	body, err := json.Marshal(testEvent())
	require.NoError(t, err)

	client := &sqsMock{}
	client.On("ReceiveMessage", mock.Anything, mock.MatchedBy(func(in *sqs.ReceiveMessageInput) bool {
		return in.WaitTimeSeconds == 20 && in.MaxNumberOfMessages == 10
	})).Return(&sqs.ReceiveMessageOutput{
		Messages: []types.Message{
			{MessageId: aws.String("m1"), ReceiptHandle: aws.String("r1"), Body: aws.String(string(body))},
			{MessageId: aws.String("m2"), ReceiptHandle: aws.String("r2"), Body: aws.String("{broken")},
			{MessageId: aws.String("m3"), ReceiptHandle: aws.String("r3"), Body: aws.String(string(body))},
		},
	}, nil)
	client.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(in *sqs.DeleteMessageInput) bool {
		return aws.ToString(in.ReceiptHandle) == "r1"
	})).Return(&sqs.DeleteMessageOutput{}, nil).Once()
	client.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(in *sqs.DeleteMessageInput) bool {
		return aws.ToString(in.ReceiptHandle) == "r2"
	})).Return(&sqs.DeleteMessageOutput{}, nil).Once()

	dispatcher := &dispatcherMock{}
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil).Once()
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	consumer := NewConsumer(client, queueURL, dispatcher, 20, 10, logger.NewNop())
	processed, err := consumer.PollOnce(context.Background())
	require.NoError(t, err)

	// m1 доставлено и удалено, m2 битое и удалено, m3 осталось в очереди
	assert.Equal(t, 1, processed)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "DeleteMessage", 2)
	dispatcher.AssertExpectations(t)
}

func TestConsumer_ReceiveError(t *testing.T) {
	client := &sqsMock{}
	client.On("ReceiveMessage", mock.Anything, mock.Anything).Return(nil, errors.New("network"))

	consumer := NewConsumer(client, queueURL, &dispatcherMock{}, 20, 10, logger.NewNop())
	_, err := consumer.PollOnce(context.Background())
	assert.ErrorIs(t, err, ErrReceive)
}
