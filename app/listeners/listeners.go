// Package listeners wires domain events to their side effects: the
// admin live order feed and transactional emails. Registered once at
// boot, after the queue workers and the websocket hub are running.
package listeners

import (
	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/notifications"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/event"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/notification"
	"github.com/shashiranjanraj/vastra/pkg/queue"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// Register attaches all listeners. hub may be nil in CLI contexts
// where no websocket feed exists.
func Register(hub *ws.Hub) {
	event.Listen("order.created", func(payload interface{}) {
		created, ok := payload.(services.OrderCreated)
		if !ok {
			logger.Error("listeners: unexpected order.created payload", "type", payload)
			return
		}

		if hub != nil {
			hub.BroadcastJSON(created.Order.Site.Hex(), map[string]interface{}{
				"type":  "order.created",
				"order": created.Order,
			})
		}

		if created.RelayWebhook != "" {
			notification.Send("", &notifications.OrderPlaced{
				Order:          created.Order,
				SiteSlug:       created.SiteSlug,
				Currency:       created.Currency,
				RelayWebhook:   created.RelayWebhook,
				WhatsAppNumber: created.WhatsAppNumber,
			})
		}

		if created.Email != "" {
			err := queue.Dispatch(&jobs.OrderConfirmationEmailJob{
				Email:    created.Email,
				Name:     created.Name,
				OrderID:  created.Order.ID.Hex(),
				Total:    created.Order.TotalPrice,
				Currency: created.Currency,
			})
			if err != nil {
				logger.Error("listeners: order confirmation dispatch failed",
					"order", created.Order.ID.Hex(), "error", err)
			}
		}
	})
}
