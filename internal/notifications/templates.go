package notifications

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// Rendered готовое уведомление
type Rendered struct {
	Subject string
	Text    string
	HTML    string
	SMS     string
}

type eventTemplate struct {
	subject string
	text    string
	sms     string
}

var eventTemplates = map[domain.EventType]eventTemplate{
	domain.EventBookingCreated: {
		subject: "Booking request at {{.BusinessName}}",
		text:    "Hi {{.CustomerName}}, your booking for {{.ServiceName}} on {{.Date}} at {{.StartTime}} at {{.BusinessName}} has been received. Total: {{.Total}}.",
		sms:     "{{.BusinessName}}: booking for {{.ServiceName}} on {{.Date}} {{.StartTime}} received.",
	},
	domain.EventBookingConfirmed: {
		subject: "Your booking at {{.BusinessName}} is confirmed",
		text:    "Hi {{.CustomerName}}, your booking for {{.ServiceName}} with {{.StaffName}} on {{.Date}} at {{.StartTime}} is confirmed.",
		sms:     "{{.BusinessName}}: {{.ServiceName}} on {{.Date}} {{.StartTime}} confirmed.",
	},
	domain.EventBookingCancelled: {
		subject: "Your booking at {{.BusinessName}} was cancelled",
		text:    "Hi {{.CustomerName}}, your booking for {{.ServiceName}} on {{.Date}} at {{.StartTime}} was cancelled.{{if .Reason}} Reason: {{.Reason}}.{{end}}{{if .Refund}} A refund of {{.Refund}} is on its way.{{end}}",
		sms:     "{{.BusinessName}}: booking on {{.Date}} {{.StartTime}} cancelled.",
	},
	domain.EventBookingReminder: {
		subject: "Reminder: {{.ServiceName}} at {{.BusinessName}}",
		text:    "Hi {{.CustomerName}}, this is a reminder of your {{.ServiceName}} appointment on {{.Date}} at {{.StartTime}} at {{.BusinessName}}.",
		sms:     "Reminder: {{.ServiceName}} at {{.BusinessName}} on {{.Date}} {{.StartTime}}.",
	},
	domain.EventPaymentSucceeded: {
		subject: "Payment received by {{.BusinessName}}",
		text:    "Hi {{.CustomerName}}, we received your payment of {{.Total}} to {{.BusinessName}}. Thank you!",
		sms:     "{{.BusinessName}}: payment of {{.Total}} received.",
	},
	domain.EventOrderCreated: {
		subject: "Your order at {{.BusinessName}}",
		text:    "Hi {{.CustomerName}}, your order at {{.BusinessName}} has been placed. Total: {{.Total}}.",
		sms:     "{{.BusinessName}}: order placed, total {{.Total}}.",
	},
}

const htmlLayout = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Subject}}</h2>
  <p>{{.Body}}</p>
  <p style="color: #888; font-size: 12px;">{{.BusinessName}}</p>
</body>
</html>`

var layout = htmltemplate.Must(htmltemplate.New("layout").Parse(htmlLayout))

// templateData данные, доступные в шаблонах
type templateData struct {
	CustomerName string
	BusinessName string
	ServiceName  string
	StaffName    string
	Date         string
	StartTime    string
	Total        string
	Refund       string
	Reason       string
}

func newTemplateData(event domain.NotificationEvent, profile *domain.ContactProfile) templateData {
	name := profile.Name
	if name == "" {
		name = "there"
	}

	data := templateData{
		CustomerName: name,
		BusinessName: event.BusinessName,
		ServiceName:  event.ServiceName,
		StaffName:    event.StaffName,
		Date:         event.Date,
		StartTime:    event.StartTime,
		Total:        FormatMoney(event.TotalCents, event.Currency),
		Reason:       event.Reason,
	}
	if event.RefundCents > 0 {
		data.Refund = FormatMoney(event.RefundCents, event.Currency)
	}
	return data
}

// Render строит тексты уведомления для события
func Render(event domain.NotificationEvent, profile *domain.ContactProfile) (*Rendered, error) {
	tpl, ok := eventTemplates[event.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, event.Type)
	}

	data := newTemplateData(event, profile)

	subject, err := renderText(tpl.subject, data)
	if err != nil {
		return nil, err
	}
	text, err := renderText(tpl.text, data)
	if err != nil {
		return nil, err
	}
	sms, err := renderText(tpl.sms, data)
	if err != nil {
		return nil, err
	}

	var html bytes.Buffer
	err = layout.Execute(&html, struct {
		Subject      string
		Body         string
		BusinessName string
	}{subject, text, event.BusinessName})
	if err != nil {
		return nil, fmt.Errorf("%w: html: %v", ErrRender, err)
	}

	return &Rendered{
		Subject: subject,
		Text:    text,
		HTML:    html.String(),
		SMS:     sms,
	}, nil
}

func renderText(src string, data templateData) (string, error) {
	tpl, err := texttemplate.New("").Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}

// FormatMoney форматирует сумму в центах: 1234 usd -> "12.34 USD"
func FormatMoney(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, strings.ToUpper(currency))
}
