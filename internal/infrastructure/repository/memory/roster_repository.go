package memory

import (
	"context"
	"sync"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	items map[string]roster.Roster
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{items: make(map[string]roster.Roster)}
}

func (r *RosterRepository) Get(_ context.Context, userID, phaseName string) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[rosterKey(userID, phaseName)]
	return item, ok, nil
}

func (r *RosterRepository) Put(_ context.Context, item roster.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[rosterKey(item.UserID, item.Phase)] = item
	return nil
}

func (r *RosterRepository) Mutate(_ context.Context, userID, phaseName string, fn roster.MutateFunc) (roster.Roster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rosterKey(userID, phaseName)
	current, exists := r.items[key]
	next, err := fn(current, exists)
	if err != nil {
		return roster.Roster{}, err
	}
	r.items[rosterKey(next.UserID, next.Phase)] = next
	return next, nil
}

func rosterKey(userID, phaseName string) string {
	return userID + "::" + phase.Key(phaseName)
}
