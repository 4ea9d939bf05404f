package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
)

type CooldownRepository struct {
	mu    sync.Mutex
	items map[string]cooldown.Entry
}

func NewCooldownRepository() *CooldownRepository {
	return &CooldownRepository{items: make(map[string]cooldown.Entry)}
}

func (r *CooldownRepository) Get(_ context.Context, userID string, bucket cooldown.Bucket) (cooldown.Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[cooldownKey(userID, bucket)]
	return item, ok, nil
}

func (r *CooldownRepository) StampIfElapsed(_ context.Context, userID string, bucket cooldown.Bucket, at, cutoff time.Time) (cooldown.Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cooldownKey(userID, bucket)
	if item, ok := r.items[key]; ok && item.LastUsedAt.After(cutoff) {
		return item, false, nil
	}

	item := cooldown.Entry{UserID: userID, Bucket: bucket, LastUsedAt: at}
	r.items[key] = item
	return item, true, nil
}

func cooldownKey(userID string, bucket cooldown.Bucket) string {
	return userID + "::" + string(bucket)
}
