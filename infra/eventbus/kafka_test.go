//go:build integration

package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/domain/events"
	"github.com/stretchr/testify/require"
	testcontainerskafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func setupKafkaBus(tb testing.TB) *KafkaEventBus {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	container, err := testcontainerskafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(tb, err)

	bus, err := NewWithKafka(&config.Kafka{
		Brokers:     brokers,
		GroupID:     "pesaflow-test",
		TopicPrefix: "test.",
	}, nil)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestKafkaBusHandlerReceivesEvent(t *testing.T) {
	bus := setupKafkaBus(t)

	received := make(chan string, 1)
	bus.Register(events.EventTypeTransactionDeleted, func(_ context.Context, e events.Event) error {
		received <- e.(*events.TransactionDeleted).TransactionID
		return nil
	})

	require.NoError(t, bus.Emit(context.Background(), events.NewTransactionDeleted("u1", "tx7")))

	select {
	case id := <-received:
		require.Equal(t, "tx7", id)
	case <-time.After(60 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
