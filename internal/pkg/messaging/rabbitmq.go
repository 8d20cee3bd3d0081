package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrRabbitMQURLRequired is returned when the AMQP URL is missing.
var ErrRabbitMQURLRequired = errors.New("pkgmessage: rabbitmq url is required")

// RabbitMQConfig configures the RabbitMQ publisher. Destinations are routing
// keys on a durable topic exchange.
type RabbitMQConfig struct {
	URL         string
	Exchange    string
	DialTimeout time.Duration
}

// RabbitMQ publishes to a topic exchange.
type RabbitMQ struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

// NewRabbitMQ dials the broker and declares the exchange.
func NewRabbitMQ(cfg RabbitMQConfig) (*RabbitMQ, error) {
	if cfg.URL == "" {
		return nil, ErrRabbitMQURLRequired
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	if cfg.Exchange == "" {
		cfg.Exchange = "esign.events"
	}

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Locale: "en_US",
		Dial:   amqp.DefaultDial(cfg.DialTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("pkgmessage: rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pkgmessage: rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("pkgmessage: rabbitmq declare exchange: %w", err)
	}

	return &RabbitMQ{conn: conn, exchange: cfg.Exchange, ch: ch}, nil
}

// Close closes the channel and the connection.
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn.IsClosed() {
		return nil
	}
	return errors.Join(r.ch.Close(), r.conn.Close())
}

// Publish sends a persistent JSON message with the destination as routing key.
func (r *RabbitMQ) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := checkPublish(ctx, destination); err != nil {
		return PublishResult{}, err
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	headers := amqp.Table{}
	for k, v := range headerMap(msg.Headers) {
		headers[k] = v
	}

	now := time.Now()

	// amqp channels are not safe for concurrent publishing.
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.ch.PublishWithContext(ctx, r.exchange, destination, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Headers:      headers,
		Body:         msg.Body,
	})
	if err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: rabbitmq publish: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: now}, nil
}
