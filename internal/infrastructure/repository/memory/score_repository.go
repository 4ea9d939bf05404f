package memory

import (
	"context"
	"sync"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/score"
)

type ScoreRepository struct {
	mu    sync.RWMutex
	items map[string]score.Entry
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{items: make(map[string]score.Entry)}
}

func (r *ScoreRepository) Get(_ context.Context, userID, weekID string) (score.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[scoreKey(userID, weekID)]
	return item, ok, nil
}

func (r *ScoreRepository) Mutate(_ context.Context, userID, weekID string, fn score.MutateFunc) (score.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scoreKey(userID, weekID)
	current, exists := r.items[key]
	next, err := fn(current, exists)
	if err != nil {
		return score.Entry{}, err
	}
	next = next.Recompute()
	r.items[scoreKey(next.UserID, next.WeekID)] = next
	return next, nil
}

func (r *ScoreRepository) ListByWeek(_ context.Context, weekID string, limit int) ([]score.Entry, error) {
	r.mu.RLock()
	out := make([]score.Entry, 0)
	for _, item := range r.items {
		if item.WeekID == weekID {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	score.SortLeaderboard(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func scoreKey(userID, weekID string) string {
	return userID + "::" + weekID
}
