// Package cache wraps repositories with a read-through TTL cache.
package cache

import (
	"context"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/assignment"
	basecache "github.com/MachuPishtuu/gq-roulette-bot/internal/platform/cache"
)

// AssignmentRepository caches week lookups; the scheduler and every roll
// resolve the active phase through it.
type AssignmentRepository struct {
	next  assignment.Repository
	cache *basecache.Store[cachedWeekPhases]
}

// NewAssignmentRepository caches lookups for ttl. Absent weeks are cached
// too, until SetForWeek writes them.
func NewAssignmentRepository(next assignment.Repository, ttl time.Duration) *AssignmentRepository {
	return &AssignmentRepository{next: next, cache: basecache.NewStore[cachedWeekPhases](ttl)}
}

func (r *AssignmentRepository) SetForWeek(ctx context.Context, item assignment.WeekPhases) error {
	if err := r.next.SetForWeek(ctx, item); err != nil {
		return err
	}
	r.cache.Invalidate(item.WeekID)
	return nil
}

func (r *AssignmentRepository) GetForWeek(ctx context.Context, weekID string) (assignment.WeekPhases, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, weekID, func(ctx context.Context) (cachedWeekPhases, error) {
		item, exists, err := r.next.GetForWeek(ctx, weekID)
		if err != nil {
			return cachedWeekPhases{}, err
		}
		return cachedWeekPhases{value: item, exists: exists}, nil
	})
	if err != nil {
		return assignment.WeekPhases{}, false, err
	}
	return cached.value, cached.exists, nil
}

type cachedWeekPhases struct {
	value  assignment.WeekPhases
	exists bool
}
