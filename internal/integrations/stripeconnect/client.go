package stripeconnect

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// Config настройки клиента
type Config struct {
	SecretKey      string
	WebhookSecret  string
	AccountCountry string
	RefreshURL     string
	ReturnURL      string
}

// Client клиент Stripe Connect: платежи с destination charge, возвраты, подключение бизнесов
type Client struct {
	client *stripe.Client
	cfg    Config
	log    Logger
}

// NewClient создает новый экземпляр клиента Stripe
func NewClient(cfg Config, log Logger) *Client {
	var client *stripe.Client
	if cfg.SecretKey != "" {
		client = stripe.NewClient(cfg.SecretKey, nil)
	}

	return &Client{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// CreatePaymentIntent создает PaymentIntent с переводом выплаты на аккаунт бизнеса
func (c *Client) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*domain.PaymentIntent, error) {
	if c.client == nil {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentCreateParams{
		Amount:               stripe.Int64(req.AmountCents),
		Currency:             stripe.String(req.Currency),
		ApplicationFeeAmount: stripe.Int64(req.ApplicationFeeCents),
		TransferData: &stripe.PaymentIntentCreateTransferDataParams{
			Destination: stripe.String(req.DestinationAccount),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	intent, err := c.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		c.log.Error("Stripe PaymentIntent create failed: amount=%d, destination=%s, error=%v",
			req.AmountCents, req.DestinationAccount, err)
		return nil, fmt.Errorf("%w: create payment intent: %v", ErrRequest, err)
	}

	c.log.Info("Stripe PaymentIntent created: id=%s, amount=%d, fee=%d", intent.ID, req.AmountCents, req.ApplicationFeeCents)

	return &domain.PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// CancelPaymentIntent отменяет PaymentIntent, по которому еще не заплатили
func (c *Client) CancelPaymentIntent(ctx context.Context, intentID string) error {
	if c.client == nil {
		return ErrNotConfigured
	}

	params := &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String(string(stripe.PaymentIntentCancellationReasonAbandoned)),
	}
	params.SetIdempotencyKey("cancel-" + intentID)

	if _, err := c.client.V1PaymentIntents.Cancel(ctx, intentID, params); err != nil {
		c.log.Error("Stripe PaymentIntent cancel failed: id=%s, error=%v", intentID, err)
		return fmt.Errorf("%w: cancel payment intent: %v", ErrRequest, err)
	}

	c.log.Info("Stripe PaymentIntent canceled: id=%s", intentID)
	return nil
}

// Refund возвращает платёж клиенту, отменяя перевод бизнесу и комиссию платформы
func (c *Client) Refund(ctx context.Context, req RefundRequest) (*Refund, error) {
	if c.client == nil {
		return nil, ErrNotConfigured
	}

	params := &stripe.RefundCreateParams{
		PaymentIntent:        stripe.String(req.IntentID),
		ReverseTransfer:      stripe.Bool(true),
		RefundApplicationFee: stripe.Bool(true),
	}
	if req.AmountCents > 0 {
		params.Amount = stripe.Int64(req.AmountCents)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	refund, err := c.client.V1Refunds.Create(ctx, params)
	if err != nil {
		c.log.Error("Stripe refund failed: intent=%s, error=%v", req.IntentID, err)
		return nil, fmt.Errorf("%w: create refund: %v", ErrRequest, err)
	}

	c.log.Info("Stripe refund created: id=%s, intent=%s, amount=%d", refund.ID, req.IntentID, refund.Amount)

	return &Refund{ID: refund.ID, AmountCents: refund.Amount, Status: string(refund.Status)}, nil
}

// CreateConnectedAccount создает Express аккаунт для бизнеса
func (c *Client) CreateConnectedAccount(ctx context.Context, businessID int64, email *string) (string, error) {
	if c.client == nil {
		return "", ErrNotConfigured
	}

	params := &stripe.AccountCreateParams{
		Type:    stripe.String(string(stripe.AccountTypeExpress)),
		Country: stripe.String(c.cfg.AccountCountry),
		Capabilities: &stripe.AccountCreateCapabilitiesParams{
			CardPayments: &stripe.AccountCreateCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCreateCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
	}
	if email != nil {
		params.Email = stripe.String(*email)
	}
	params.AddMetadata(MetadataBusinessID, strconv.FormatInt(businessID, 10))
	params.SetIdempotencyKey(fmt.Sprintf("connect-account-%d", businessID))

	account, err := c.client.V1Accounts.Create(ctx, params)
	if err != nil {
		c.log.Error("Stripe account create failed: business_id=%d, error=%v", businessID, err)
		return "", fmt.Errorf("%w: create account: %v", ErrRequest, err)
	}

	c.log.Info("Stripe connected account created: business_id=%d, account=%s", businessID, account.ID)

	return account.ID, nil
}

// CreateOnboardingLink создает ссылку на онбординг connected account
func (c *Client) CreateOnboardingLink(ctx context.Context, accountID string) (string, error) {
	if c.client == nil {
		return "", ErrNotConfigured
	}

	link, err := c.client.V1AccountLinks.Create(ctx, &stripe.AccountLinkCreateParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(c.cfg.RefreshURL),
		ReturnURL:  stripe.String(c.cfg.ReturnURL),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		c.log.Error("Stripe account link failed: account=%s, error=%v", accountID, err)
		return "", fmt.Errorf("%w: create account link: %v", ErrRequest, err)
	}

	return link.URL, nil
}

// ParseWebhook проверяет подпись и разбирает событие
// Для необрабатываемых типов возвращается событие только с ID и Type
func (c *Client) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if c.cfg.WebhookSecret == "" {
		return nil, ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, c.cfg.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data == nil {
		return result, nil
	}

	switch result.Type {
	case EventPaymentSucceeded, EventPaymentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, fmt.Errorf("%w: payment intent: %v", ErrInvalidPayload, err)
		}
		result.IntentID = intent.ID
		result.AmountCents = intent.Amount
		result.Metadata = intent.Metadata

	case EventChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, fmt.Errorf("%w: charge: %v", ErrInvalidPayload, err)
		}
		if charge.PaymentIntent != nil {
			result.IntentID = charge.PaymentIntent.ID
		}
		result.AmountCents = charge.Amount
		result.RefundedCents = charge.AmountRefunded
		result.Metadata = charge.Metadata

	case EventAccountUpdated:
		var account stripe.Account
		if err := json.Unmarshal(event.Data.Raw, &account); err != nil {
			return nil, fmt.Errorf("%w: account: %v", ErrInvalidPayload, err)
		}
		result.Account = &domain.ConnectedAccountStatus{
			AccountID:      account.ID,
			ChargesEnabled: account.ChargesEnabled,
			PayoutsEnabled: account.PayoutsEnabled,
		}
	}

	return result, nil
}
