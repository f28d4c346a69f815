package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/freshkart/storefront/internal/domain/event"
)

type testEvent struct{ payload string }

func (testEvent) EventName() string { return "test.event" }

func TestBusDeliversToSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(zap.NewNop())
	received := make(chan string, 1)

	bus.Subscribe("test.event", func(_ context.Context, e event.Event) error {
		received <- e.(testEvent).payload
		return nil
	})

	bus.Start(context.Background())

	require.NoError(t, bus.Publish(context.Background(), testEvent{payload: "hello"}))

	select {
	case got := <-received:
		require.Equal(t, "hello", got)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	bus.Stop(context.Background())
}

func TestBusSurvivesPanickingHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(zap.NewNop())
	received := make(chan struct{}, 1)

	bus.Subscribe("test.event", func(context.Context, event.Event) error {
		panic("boom")
	})
	bus.Subscribe("test.event", func(context.Context, event.Event) error {
		received <- struct{}{}
		return nil
	})

	bus.Start(context.Background())

	require.NoError(t, bus.Publish(context.Background(), testEvent{payload: "x"}))

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("sibling handler was not invoked after panic")
	}

	bus.Stop(context.Background())
}

func TestBusDropsEventsWithoutSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(zap.NewNop())
	bus.Start(context.Background())

	require.NoError(t, bus.Publish(context.Background(), testEvent{payload: "ignored"}))

	bus.Stop(context.Background())
}
