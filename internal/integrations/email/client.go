package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

// Message письмо
type Message struct {
	To       string
	Subject  string
	HTML     string
	Text     string
	Category string // Тег для аналитики Resend (тип события)
}

type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client отправка транзакционных писем через Resend
type Client struct {
	emails sender
	from   string
	log    Logger
}

// NewClient создает новый экземпляр клиента Resend
func NewClient(apiKey, fromEmail, fromName string, log Logger) *Client {
	return newClient(resend.NewClient(apiKey).Emails, fromEmail, fromName, log)
}

func newClient(emails sender, fromEmail, fromName string, log Logger) *Client {
	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}

	return &Client{
		emails: emails,
		from:   from,
		log:    log,
	}
}

// Send отправляет письмо и возвращает ID сообщения в Resend
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		Headers: map[string]string{
			"X-Entity-Ref-ID": uuid.NewString(),
		},
	}
	if msg.Category != "" {
		params.Tags = []resend.Tag{{Name: "category", Value: msg.Category}}
	}

	sent, err := c.emails.Send(params)
	if err != nil {
		c.log.Error("Failed to send email: subject=%q, error=%v", msg.Subject, err)
		return "", fmt.Errorf("%w: %v", ErrSend, err)
	}

	c.log.Info("Email sent: id=%s, category=%s", sent.Id, msg.Category)

	return sent.Id, nil
}
