package cart

import "github.com/techpazar/storefront/internal/models"

// Subscribe registers a watcher for a session's cart. Every mutation pushes
// the new summary to the returned channel; a slow consumer drops updates
// instead of blocking the mutation path.
func (s *Store) Subscribe(sessionID string) chan models.CartSummary {
	ch := make(chan models.CartSummary, 8)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subscribers[sessionID] == nil {
		s.subscribers[sessionID] = make(map[chan models.CartSummary]struct{})
	}
	s.subscribers[sessionID][ch] = struct{}{}
	return ch
}

// Unsubscribe removes a watcher and closes its channel.
func (s *Store) Unsubscribe(sessionID string, ch chan models.CartSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subscribers[sessionID]
	if subs == nil {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}
	delete(subs, ch)
	if len(subs) == 0 {
		delete(s.subscribers, sessionID)
	}
	close(ch)
}

func (s *Store) notify(sessionID string, summary models.CartSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subscribers[sessionID] {
		select {
		case ch <- summary:
		default:
		}
	}
}
