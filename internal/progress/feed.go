package progress

import (
	"sync"

	"github.com/google/uuid"
)

// Feed fans out progress entry snapshots to per-user subscribers. It decouples
// the orchestrators from any client-side caching mechanism: the HTTP layer
// exposes subscriptions as a server-sent event stream.
type Feed struct {
	mu   sync.Mutex
	subs map[string]map[string]chan Entry // userId -> subscriberId -> channel
}

// NewFeed constructs an empty Feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[string]map[string]chan Entry)}
}

// Subscribe registers a subscriber for one user's snapshots. The returned
// cancel func must be called to release the subscription.
func (f *Feed) Subscribe(userID string) (<-chan Entry, func()) {
	id := uuid.NewString()
	ch := make(chan Entry, 16)

	f.mu.Lock()
	if f.subs[userID] == nil {
		f.subs[userID] = make(map[string]chan Entry)
	}
	f.subs[userID][id] = ch
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if subs, ok := f.subs[userID]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(f.subs, userID)
			}
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an entry snapshot to the user's subscribers. Slow
// subscribers are skipped rather than blocking the publisher.
func (f *Feed) Publish(userID string, entry Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs[userID] {
		select {
		case ch <- entry:
		default:
		}
	}
}
