// Package notifications holds the concrete notifications the app
// sends through pkg/notification.
package notifications

import (
	"fmt"
	"strings"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/collection"
	"github.com/shashiranjanraj/vastra/pkg/notification"
)

// OrderPlaced forwards a new order to the store owner's WhatsApp via
// the tenant's relay webhook. Sent only when the tenant configured one.
type OrderPlaced struct {
	Order          *models.Order
	SiteSlug       string
	Currency       string
	RelayWebhook   string
	WhatsAppNumber string
}

func (n *OrderPlaced) Via() []string { return []string{"webhook"} }

func (n *OrderPlaced) ToWebhook() notification.WebhookData {
	lines := collection.Map(n.Order.Items, func(it models.OrderItem) string {
		return fmt.Sprintf("%dx %s @ %s %.2f", it.Quantity, it.Name, n.Currency, it.Price)
	})
	text := fmt.Sprintf("New order on %s\n%s\nTotal: %s %.2f\nShip to: %s, %s",
		n.SiteSlug,
		strings.Join(lines, "\n"),
		n.Currency, n.Order.TotalPrice,
		n.Order.ShippingAddress.FullName, n.Order.ShippingAddress.City,
	)

	return notification.WebhookData{
		URL: n.RelayWebhook,
		Payload: map[string]interface{}{
			"to":      n.WhatsAppNumber,
			"message": text,
			"orderId": n.Order.ID.Hex(),
		},
	}
}
