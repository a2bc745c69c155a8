// Package event publishes booking-confirmed events to RabbitMQ for external
// collaborators (notifications, reporting). Publishing is best-effort from
// the engine's point of view; a failed publish never rolls back a booking.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cinetix/booking-core/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const BookingConfirmedQueue = "booking.confirmed"

type AMQPPublisher struct {
	channel *amqp.Channel
	queue   string
}

// NewAMQPPublisher declares the durable queue and returns a publisher bound
// to it. The caller owns the connection's lifecycle.
func NewAMQPPublisher(conn *amqp.Connection, queue string) (*AMQPPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &AMQPPublisher{
		channel: channel,
		queue:   queue,
	}, nil
}

func (p *AMQPPublisher) PublishBookingConfirmed(
	ctx context.Context,
	event domain.BookingConfirmedEvent) error {

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", p.queue, err)
	}

	return nil
}

func (p *AMQPPublisher) Close() error {
	return p.channel.Close()
}

// NoopPublisher satisfies domain.EventPublisher for deployments without a
// broker.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingConfirmed(context.Context, domain.BookingConfirmedEvent) error {
	return nil
}
