package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

const notificationExchange = "storefront.notifications"

// AMQPSink publishes notifications to a fanout exchange so downstream
// consumers (email sender, push relay) can react to storefront events.
type AMQPSink struct {
	ch *amqp.Channel
}

// NewAMQPSink opens a channel on conn and declares the notification exchange.
func NewAMQPSink(conn *amqp.Connection) (*AMQPSink, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("amqp sink: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(notificationExchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("amqp sink: declare exchange: %w", err)
	}
	return &AMQPSink{ch: ch}, nil
}

func (s *AMQPSink) Name() string { return "amqp" }

func (s *AMQPSink) Deliver(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("amqp sink: encode: %w", err)
	}
	return s.ch.PublishWithContext(ctx, notificationExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Close releases the underlying channel.
func (s *AMQPSink) Close() error {
	return s.ch.Close()
}
