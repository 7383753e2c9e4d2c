package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/diorsolutions/eco-shop/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := notify.NewBus()

	ch1, cancel1 := bus.Subscribe()
	defer cancel1()
	ch2, cancel2 := bus.Subscribe()
	defer cancel2()

	bus.Publish(notify.Event{Type: notify.EventInsert, OrderID: "o1"})

	for _, ch := range []<-chan notify.Event{ch1, ch2} {
		select {
		case e := <-ch:
			assert.Equal(t, notify.EventInsert, e.Type)
			assert.Equal(t, "o1", e.OrderID)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	bus := notify.NewBus()

	ch, cancel := bus.Subscribe()
	cancel()

	// Publishing after cancel must not panic; the channel is closed.
	bus.Publish(notify.Event{Type: notify.EventUpdate, OrderID: "o1"})

	_, ok := <-ch
	assert.False(t, ok, "cancelled subscription channel must be closed")

	// Cancel is idempotent.
	cancel()
}

func TestBus_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := notify.NewBus()

	_, cancel := bus.Subscribe() // never drained
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			bus.Publish(notify.Event{Type: notify.EventUpdate, OrderID: "o"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestLogGateway_ReportsDelivered(t *testing.T) {
	result, err := notify.LogGateway{}.Send(context.Background(), "+998901234567", "hello")
	require.NoError(t, err)
	assert.Equal(t, notify.DeliveryDelivered, result.Status)
}
