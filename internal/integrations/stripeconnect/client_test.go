package stripeconnect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

const testSecret = "whsec_test"

func signed(t *testing.T, payload string) (string, []byte) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testSecret,
		Timestamp: time.Now(),
	})
	return sp.Header, sp.Payload
}

func newTestClient() *Client {
	return NewClient(Config{WebhookSecret: testSecret}, logger.NewNop())
}

func TestParseWebhook_PaymentSucceeded(t *testing.T) {
	header, payload := signed(t, `{
		"id": "evt_1",
		"object": "event",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_1", "object": "payment_intent", "amount": 5000, "metadata": {"booking_id": "7"}}}
	}`)

	event, err := newTestClient().ParseWebhook(payload, header)
	require.NoError(t, err)

	assert.Equal(t, "evt_1", event.ID)
	assert.True(t, event.IsSupported())
	assert.Equal(t, "pi_1", event.IntentID)
	assert.Equal(t, int64(5000), event.AmountCents)
	assert.Equal(t, "7", event.Metadata[MetadataBookingID])
}

func TestParseWebhook_AccountUpdated(t *testing.T) {
	header, payload := signed(t, `{
		"id": "evt_2",
		"object": "event",
		"type": "account.updated",
		"data": {"object": {"id": "acct_1", "object": "account", "charges_enabled": true, "payouts_enabled": false}}
	}`)

	event, err := newTestClient().ParseWebhook(payload, header)
	require.NoError(t, err)
	require.NotNil(t, event.Account)
	assert.Equal(t, "acct_1", event.Account.AccountID)
	assert.True(t, event.Account.ChargesEnabled)
	assert.False(t, event.Account.PayoutsEnabled)
}

func TestParseWebhook_ChargeRefunded(t *testing.T) {
	header, payload := signed(t, `{
		"id": "evt_3",
		"object": "event",
		"type": "charge.refunded",
		"data": {"object": {"id": "ch_1", "object": "charge", "amount": 5000, "amount_refunded": 2000, "payment_intent": "pi_1"}}
	}`)

	event, err := newTestClient().ParseWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", event.IntentID)
	assert.Equal(t, int64(2000), event.RefundedCents)
}

func TestParseWebhook_InvalidSignature(t *testing.T) {
	_, payload := signed(t, `{"id": "evt_1", "object": "event", "type": "payment_intent.succeeded"}`)

	_, err := newTestClient().ParseWebhook(payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestNotConfigured(t *testing.T) {
	client := NewClient(Config{}, logger.NewNop())

	_, err := client.CreatePaymentIntent(context.Background(), PaymentIntentRequest{AmountCents: 100})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.ParseWebhook([]byte("{}"), "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.ErrorIs(t, client.CancelPaymentIntent(context.Background(), "pi_1"), ErrNotConfigured)
}
