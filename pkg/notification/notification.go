// Package notification provides a small multi-channel notification system.
//
// The storefront uses two channels: "mail" (SMTP via pkg/mail) and
// "webhook" (the WhatsApp relay endpoint that forwards COD orders to the
// store owner's phone).
//
//	type OrderPlaced struct{ Order models.Order }
//	func (n *OrderPlaced) Via() []string { return []string{"webhook"} }
//	func (n *OrderPlaced) ToWebhook() notification.WebhookData { ... }
//
//	notification.Send("owner@shop.example", &OrderPlaced{Order: o})
package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/mail"
)

// ------------------- Channel data structs -------------------

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
}

// WebhookData carries an arbitrary JSON payload to POST to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// ------------------- Notification interface -------------------

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names: "mail", "webhook".
	Via() []string
}

// Mailable is implemented to support the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Webhookable is implemented to support the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

// ------------------- Sending -------------------

var webhookClient = &http.Client{Timeout: 10 * time.Second}

// Send delivers n over every channel it declares. Channel failures are
// logged and do not abort the remaining channels; notifications are
// best-effort side effects and must never fail the triggering request.
func Send(address string, n Notification) {
	for _, channel := range n.Via() {
		switch channel {
		case "mail":
			m, ok := n.(Mailable)
			if !ok {
				logger.Warn("notification: mail channel without ToMail", "type", fmt.Sprintf("%T", n))
				continue
			}
			sendMail(address, m.ToMail())
		case "webhook":
			wh, ok := n.(Webhookable)
			if !ok {
				logger.Warn("notification: webhook channel without ToWebhook", "type", fmt.Sprintf("%T", n))
				continue
			}
			sendWebhook(wh.ToWebhook())
		default:
			logger.Warn("notification: unknown channel", "channel", channel)
		}
	}
}

func sendMail(address string, data MailData) {
	to := data.To
	if to == "" {
		to = address
	}
	if to == "" {
		return
	}

	err := mail.To(to).Subject(data.Subject).Body(data.Body).Send()
	if err != nil {
		logger.Error("notification: mail send failed", "to", to, "error", err)
	}
}

func sendWebhook(data WebhookData) {
	if data.URL == "" {
		return
	}

	body, err := json.Marshal(data.Payload)
	if err != nil {
		logger.Error("notification: marshal webhook payload", "error", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, data.URL, bytes.NewReader(body))
	if err != nil {
		logger.Error("notification: build webhook request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range data.Headers {
		req.Header.Set(k, v)
	}

	resp, err := webhookClient.Do(req)
	if err != nil {
		logger.Error("notification: webhook post failed", "url", data.URL, "error", err)
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Warn("notification: webhook non-2xx", "url", data.URL, "status", resp.StatusCode)
	}
}
