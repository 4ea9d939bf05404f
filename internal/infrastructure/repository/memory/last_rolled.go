package memory

import (
	"sync"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
)

// LastRolledStore is process-lifetime roll memory. Nothing here survives a
// restart.
type LastRolledStore struct {
	mu    sync.RWMutex
	items map[string]roster.LastRolled
}

func NewLastRolledStore() *LastRolledStore {
	return &LastRolledStore{items: make(map[string]roster.LastRolled)}
}

func (s *LastRolledStore) Get(userID string) (roster.LastRolled, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[userID]
	return item, ok
}

func (s *LastRolledStore) Record(userID string, item roster.LastRolled) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[userID] = item
}
