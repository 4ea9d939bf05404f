package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
)

// CooldownPeriods holds the minimum interval per bucket. Zero disables it.
type CooldownPeriods map[cooldown.Bucket]time.Duration

type CooldownTracker struct {
	repo    cooldown.Repository
	periods CooldownPeriods
	now     func() time.Time
}

func NewCooldownTracker(repo cooldown.Repository, periods CooldownPeriods) *CooldownTracker {
	copied := make(CooldownPeriods, len(periods))
	for bucket, period := range periods {
		copied[bucket] = period
	}
	return &CooldownTracker{
		repo:    repo,
		periods: copied,
		now:     time.Now,
	}
}

func (t *CooldownTracker) Period(bucket cooldown.Bucket) time.Duration {
	return t.periods[bucket]
}

// Remaining reports the wait left for bucket without recording anything.
func (t *CooldownTracker) Remaining(ctx context.Context, userID string, bucket cooldown.Bucket) (time.Duration, error) {
	period := t.Period(bucket)
	if period <= 0 {
		return 0, nil
	}

	entry, exists, err := t.repo.Get(ctx, strings.TrimSpace(userID), bucket)
	if err != nil {
		return 0, storageError("get cooldown", err)
	}
	if !exists {
		return 0, nil
	}
	return entry.Remaining(t.now(), period), nil
}

// CheckAndStamp returns 0 and records now when the period has elapsed.
// Otherwise it returns the remaining wait and leaves the stored stamp alone.
func (t *CooldownTracker) CheckAndStamp(ctx context.Context, userID string, bucket cooldown.Bucket, period time.Duration) (time.Duration, error) {
	if period <= 0 {
		return 0, nil
	}

	now := t.now()
	entry, stamped, err := t.repo.StampIfElapsed(ctx, strings.TrimSpace(userID), bucket, now, now.Add(-period))
	if err != nil {
		return 0, storageError("stamp cooldown", err)
	}
	if stamped {
		return 0, nil
	}
	return entry.Remaining(now, period), nil
}
