// Package notify fans out saved-book list changes to per-user subscribers.
package notify

import (
	"sync"

	"book_tracker/internal/models"
)

// Hub delivers the latest user snapshot to every subscriber of that user.
// Each subscription holds at most one pending snapshot; a newer one
// replaces it, so a slow reader only ever sees fresh state.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan *models.User]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan *models.User]struct{})}
}

// Subscribe registers for updates to userID. The returned func unsubscribes
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan *models.User, func()) {
	ch := make(chan *models.User, 1)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan *models.User]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[userID], ch)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			close(ch)
		})
	}
}

// Publish never blocks.
func (h *Hub) Publish(u *models.User) {
	if u == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[u.ID] {
		select {
		case ch <- u:
		default:
			// drop the stale snapshot, then retry once
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}

// Subscribers returns the number of live subscriptions for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
