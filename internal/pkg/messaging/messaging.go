package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when a feature is not supported by the selected broker.
var ErrUnsupported = errors.New("pkgmessage: unsupported operation")

// ErrDestinationRequired is returned when Publish is called without a destination.
var ErrDestinationRequired = errors.New("pkgmessage: destination is required")

// ErrClosed is returned when publishing on a closed client.
var ErrClosed = errors.New("pkgmessage: client is closed")

// Messaging is a broker client that owns its connection.
type Messaging interface {
	io.Closer
	Publisher
}

// Publisher publishes messages to a destination (topic, subject or routing key).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage is a broker-agnostic message.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is used by Kafka for partitioning.
	Key []byte

	// Headers are carried as native headers when the broker supports them.
	Headers []Header

	// Attributes are string attributes (Pub/Sub).
	Attributes map[string]string

	// Delay requests deferred delivery where supported (NSQ).
	Delay time.Duration
}

// Header is a message header.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries optional broker metadata.
type PublishResult struct {
	MessageID string
	Topic     string
	Timestamp time.Time
}

func headerMap(hs []Header) map[string]string {
	if len(hs) == 0 {
		return nil
	}
	out := make(map[string]string, len(hs))
	for _, h := range hs {
		if h.Key == "" {
			continue
		}
		out[h.Key] = string(h.Value)
	}
	return out
}

func checkPublish(ctx context.Context, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if destination == "" {
		return ErrDestinationRequired
	}
	return nil
}
