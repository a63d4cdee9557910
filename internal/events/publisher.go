// Package events publishes order lifecycle messages to RabbitMQ. Publishing
// is best-effort: the API never fails a request because the broker is down.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/lo"
)

const queueName = "order_events"

const (
	TypeOrderCreated       = "order.created"
	TypeOrderProductsAdded = "order.products_added"
)

type OrderEvent struct {
	EventType  string   `json:"event_type"`
	OrderID    string   `json:"order_id"`
	CustomerID string   `json:"customer_id"`
	Status     string   `json:"status"`
	TotalPrice string   `json:"total_price"`
	Currency   string   `json:"currency"`
	ProductIDs []string `json:"product_ids"`
}

type Publisher interface {
	PublishOrderEvent(ctx context.Context, eventType string, order domain.Order) error
}

type amqpPublisher struct {
	conn *amqp.Connection
}

func NewAMQPPublisher(url string) (Publisher, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp.Dial: %w", err)
	}

	return &amqpPublisher{conn: conn}, conn.Close, nil
}

func (p *amqpPublisher) PublishOrderEvent(ctx context.Context, eventType string, order domain.Order) error {
	body, err := json.Marshal(mapOrderToEvent(eventType, order))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	// channels are cheap and not safe for concurrent use, open one per publish
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("conn.Channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("ch.QueueDeclare: %w", err)
	}

	if err := ch.PublishWithContext(ctx,
		"",        // exchange
		queueName, // routing key (queue name)
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("ch.PublishWithContext: %w", err)
	}

	return nil
}

func mapOrderToEvent(eventType string, order domain.Order) OrderEvent {
	return OrderEvent{
		EventType:  eventType,
		OrderID:    order.ID.String(),
		CustomerID: order.CustomerID.String(),
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice.Amount.String(),
		Currency:   order.TotalPrice.Currency.String(),
		ProductIDs: lo.Map(order.ProductIDs, func(id uuid.UUID, _ int) string {
			return id.String()
		}),
	}
}

// NopPublisher drops every event, used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, string, domain.Order) error {
	return nil
}
