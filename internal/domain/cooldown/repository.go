package cooldown

import (
	"context"
	"time"
)

type Repository interface {
	Get(ctx context.Context, userID string, bucket Bucket) (Entry, bool, error)
	// StampIfElapsed writes at only when no entry exists or the stored
	// timestamp is at or before cutoff. It returns the entry now stored and
	// whether this call wrote it.
	StampIfElapsed(ctx context.Context, userID string, bucket Bucket, at, cutoff time.Time) (Entry, bool, error)
}
