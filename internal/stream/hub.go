package stream

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// Hub fans interview events out to live subscribers. Publishing never
// blocks: a subscriber that cannot keep up has events dropped rather
// than stalling the interview flow.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan *types.InterviewEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[chan *types.InterviewEvent]struct{})}
}

// Subscribe registers a listener for one interview's events. The returned
// cancel function must be called to release the subscription; the channel
// is closed by cancel.
func (h *Hub) Subscribe(interviewID uuid.UUID, buffer int) (<-chan *types.InterviewEvent, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan *types.InterviewEvent, buffer)

	h.mu.Lock()
	if h.subs[interviewID] == nil {
		h.subs[interviewID] = make(map[chan *types.InterviewEvent]struct{})
	}
	h.subs[interviewID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set := h.subs[interviewID]; set != nil {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, interviewID)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to every current subscriber of the interview.
func (h *Hub) Publish(event *types.InterviewEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[event.InterviewID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount reports active subscriptions for an interview.
func (h *Hub) SubscriberCount(interviewID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[interviewID])
}
