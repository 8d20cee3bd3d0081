package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDriver(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		driver  string
		opts    FactoryOptions
		wantErr error
	}{
		{name: "Unknown", driver: "smoke-signal", wantErr: ErrUnknownDriver},
		{name: "NATSWithoutURL", driver: DriverNATS, wantErr: ErrNATSURLRequired},
		{name: "NSQWithoutAddr", driver: DriverNSQ, wantErr: ErrNSQProducerAddrRequired},
		{name: "KafkaWithoutBrokers", driver: DriverKafka, wantErr: ErrKafkaBrokersRequired},
		{name: "PubSubWithoutProject", driver: DriverGooglePubSub, wantErr: ErrPubSubProjectIDRequired},
		{name: "RabbitMQWithoutURL", driver: DriverRabbitMQ, wantErr: ErrRabbitMQURLRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewFromDriver(ctx, tt.driver, tt.opts)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, m)
		})
	}
}

func TestKafkaPublishGuards(t *testing.T) {
	k, err := NewKafka(KafkaConfig{Brokers: []string{"127.0.0.1:1"}})
	require.NoError(t, err)

	t.Run("DestinationRequired", func(t *testing.T) {
		_, err := k.Publish(context.Background(), "", OutgoingMessage{Body: []byte("{}")})
		assert.ErrorIs(t, err, ErrDestinationRequired)
	})

	t.Run("DelayUnsupported", func(t *testing.T) {
		_, err := k.Publish(context.Background(), "document.registered", OutgoingMessage{Delay: time.Second})
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := k.Publish(ctx, "document.registered", OutgoingMessage{})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("ClosedClient", func(t *testing.T) {
		require.NoError(t, k.Close())

		_, err := k.Publish(context.Background(), "document.registered", OutgoingMessage{})
		assert.ErrorIs(t, err, ErrClosed)
	})
}

func TestHeaderMap(t *testing.T) {
	assert.Nil(t, headerMap(nil))
	assert.Equal(t, map[string]string{"cID": "abc"}, headerMap([]Header{
		{Key: "cID", Value: []byte("abc")},
		{Key: "", Value: []byte("dropped")},
	}))
}
