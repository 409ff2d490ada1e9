package services

import (
	"context"
	"log"
	"time"
)

// Routing keys of the order events.
const (
	EventOrderCreated  = "order.created"
	EventOrderNotified = "order.notified"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// OrderEvent is the payload of every order event.
type OrderEvent struct {
	OrderID     string    `json:"order_id"`
	ClientID    string    `json:"client_id"`
	OrderNumber int       `json:"order_number"`
	Status      string    `json:"status"`
	Channel     string    `json:"channel,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// publish is best effort: the request already succeeded when it is called.
func publish(ctx context.Context, publisher EventPublisher, routingKey string, event OrderEvent) {
	if publisher == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, event.OrderID, err)
	}
}
