package stream

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub()
	id := uuid.New()

	ch1, cancel1 := hub.Subscribe(id, 4)
	defer cancel1()
	ch2, cancel2 := hub.Subscribe(id, 4)
	defer cancel2()

	ev, err := types.NewEvent(id, types.EventQuestion, map[string]any{"text": "q"})
	require.NoError(t, err)
	hub.Publish(ev)

	for _, ch := range []<-chan *types.InterviewEvent{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, types.EventQuestion, got.Type)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestHub_IsolatesInterviews(t *testing.T) {
	hub := NewHub()
	a, b := uuid.New(), uuid.New()

	chA, cancelA := hub.Subscribe(a, 4)
	defer cancelA()

	ev, err := types.NewEvent(b, types.EventAnswer, map[string]any{"text": "a"})
	require.NoError(t, err)
	hub.Publish(ev)

	select {
	case got := <-chA:
		t.Fatalf("received event for other interview: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	id := uuid.New()

	_, cancel := hub.Subscribe(id, 1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			ev, _ := types.NewEvent(id, types.EventSystem, map[string]any{"i": i})
			hub.Publish(ev)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on full subscriber buffer")
	}
}

func TestHub_CancelReleasesSubscription(t *testing.T) {
	hub := NewHub()
	id := uuid.New()

	ch, cancel := hub.Subscribe(id, 4)
	assert.Equal(t, 1, hub.SubscriberCount(id))

	cancel()
	cancel() // idempotent
	assert.Equal(t, 0, hub.SubscriberCount(id))

	_, open := <-ch
	assert.False(t, open)
}
