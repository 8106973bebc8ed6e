// Package events wires the order.completed event to its side effects: the
// receipt mail job, the optional back-office webhook, and the live admin
// feed. Checkout itself never blocks on any of these.
package events

import (
	"encoding/json"

	"github.com/shashiranjanraj/inkstore/app/jobs"
	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/repositories"
	"github.com/shashiranjanraj/inkstore/app/services"
	"github.com/shashiranjanraj/inkstore/config"
	"github.com/shashiranjanraj/inkstore/pkg/event"
	"github.com/shashiranjanraj/inkstore/pkg/logger"
	"github.com/shashiranjanraj/inkstore/pkg/notification"
	"github.com/shashiranjanraj/inkstore/pkg/queue"
	"github.com/shashiranjanraj/inkstore/pkg/ws"
)

// LiveOrders is the hub behind the admin live feed websocket. The server
// starts its Run loop at boot.
var LiveOrders = ws.NewHub()

// Register hooks up all event listeners. Call once at boot.
func Register() {
	users := repositories.NewUserRepository()

	event.Listen(services.EventOrderCompleted, func(payload interface{}) {
		order, ok := payload.(*models.Order)
		if !ok {
			logger.Warn("order.completed fired with unexpected payload")
			return
		}

		queueReceipt(users, order)
		postWebhook(order)
		broadcast(order)
	})
}

func queueReceipt(users *repositories.UserRepository, order *models.Order) {
	user, err := users.FindByID(order.UserID)
	if err != nil {
		logger.Error("receipt skipped: user lookup failed", "user_id", order.UserID, "error", err)
		return
	}

	titles := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		titles = append(titles, item.Title)
	}

	if err := queue.Dispatch(&jobs.SendReceiptJob{
		Email:     user.Email,
		Name:      user.Name,
		Reference: order.Reference,
		Titles:    titles,
		Total:     order.TotalAmount,
	}); err != nil {
		logger.Error("receipt dispatch failed", "reference", order.Reference, "error", err)
	}
}

func postWebhook(order *models.Order) {
	url := config.OrderWebhookURL()
	if url == "" {
		return
	}
	notification.SendAsync("", &orderWebhook{url: url, order: order})
}

func broadcast(order *models.Order) {
	msg, err := json.Marshal(map[string]interface{}{
		"event":       "order.completed",
		"reference":   order.Reference,
		"totalAmount": order.TotalAmount,
		"createdAt":   order.CreatedAt,
	})
	if err != nil {
		return
	}
	LiveOrders.Broadcast <- msg
}

type orderWebhook struct {
	url   string
	order *models.Order
}

func (w *orderWebhook) Via() []string { return []string{"webhook"} }

func (w *orderWebhook) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL: w.url,
		Payload: map[string]interface{}{
			"event":       "order.completed",
			"reference":   w.order.Reference,
			"userId":      w.order.UserID,
			"totalAmount": w.order.TotalAmount,
		},
	}
}
