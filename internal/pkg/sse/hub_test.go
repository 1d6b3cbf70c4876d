package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("guard-1")
	defer cleanup()

	hub.Publish("guard-1", Event{GuardID: "guard-1", Event: "notification", Data: "hello"})

	select {
	case event := <-ch:
		assert.Equal(t, "notification", event.Event)
		assert.Equal(t, "hello", event.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHubPublishIsScopedToGuard(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("guard-1")
	defer cleanup()

	hub.Publish("guard-2", Event{GuardID: "guard-2", Event: "notification"})
	assert.Empty(t, ch)
}

func TestHubMultipleStreamsPerGuard(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("guard-1")
	ch2, cleanup2 := hub.Subscribe("guard-1")
	defer cleanup2()

	assert.Equal(t, 2, hub.SubscriberCount("guard-1"))

	hub.Publish("guard-1", Event{Event: "notification"})
	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)

	cleanup1()
	assert.Equal(t, 1, hub.SubscriberCount("guard-1"))

	// The buffered event survives cleanup; the channel reads closed only
	// once drained.
	event, open := <-ch1
	assert.True(t, open)
	assert.Equal(t, "notification", event.Event)

	_, open = <-ch1
	assert.False(t, open)
}

func TestHubSlowConsumerDoesNotBlock(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("guard-1")
	defer cleanup()

	// Channel buffer is 10; the extra publishes are dropped, not blocked on.
	for i := 0; i < 25; i++ {
		hub.Publish("guard-1", Event{Event: "notification", Data: i})
	}

	require.Len(t, ch, 10)
}
