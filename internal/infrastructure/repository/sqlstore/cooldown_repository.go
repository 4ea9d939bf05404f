package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
	qb "github.com/MachuPishtuu/gq-roulette-bot/internal/platform/querybuilder"
)

type CooldownRepository struct {
	store *Store
}

func NewCooldownRepository(store *Store) *CooldownRepository {
	return &CooldownRepository{store: store}
}

func (r *CooldownRepository) Get(ctx context.Context, userID string, bucket cooldown.Bucket) (cooldown.Entry, bool, error) {
	query, args, err := qb.Select("user_id", "bucket", "last_used_at").
		From("cooldowns").
		Where(qb.Eq("user_id", userID), qb.Eq("bucket", string(bucket))).
		ToSQL()
	if err != nil {
		return cooldown.Entry{}, false, fmt.Errorf("build get cooldown query: %w", err)
	}

	var row cooldownTableModel
	err = r.store.do(func() error {
		return r.store.db.GetContext(ctx, &row, r.store.rebind(query), args...)
	})
	if err != nil {
		if isNotFound(err) {
			return cooldown.Entry{}, false, nil
		}
		return cooldown.Entry{}, false, fmt.Errorf("get cooldown: %w", err)
	}
	return cooldownFromRow(row), true, nil
}

// StampIfElapsed is a single conditional upsert: the conflict update only
// fires when the stored stamp is at or before cutoff, so a rejected call
// never moves the clock.
func (r *CooldownRepository) StampIfElapsed(ctx context.Context, userID string, bucket cooldown.Bucket, at, cutoff time.Time) (cooldown.Entry, bool, error) {
	query, args, err := qb.InsertInto("cooldowns").
		Columns("user_id", "bucket", "last_used_at").
		Values(userID, string(bucket), at.UTC()).
		Suffix(`ON CONFLICT (user_id, bucket) DO UPDATE SET last_used_at = excluded.last_used_at
WHERE cooldowns.last_used_at <= ?
RETURNING user_id`, cutoff.UTC()).
		ToSQL()
	if err != nil {
		return cooldown.Entry{}, false, fmt.Errorf("build stamp cooldown query: %w", err)
	}

	var stampedUser string
	err = r.store.do(func() error {
		return r.store.db.GetContext(ctx, &stampedUser, r.store.rebind(query), args...)
	})
	if err == nil {
		return cooldown.Entry{UserID: userID, Bucket: bucket, LastUsedAt: at.UTC()}, true, nil
	}
	if !isNotFound(err) {
		return cooldown.Entry{}, false, fmt.Errorf("stamp cooldown: %w", err)
	}

	current, exists, err := r.Get(ctx, userID, bucket)
	if err != nil {
		return cooldown.Entry{}, false, err
	}
	if !exists {
		return cooldown.Entry{}, false, fmt.Errorf("stamp cooldown: row vanished for user=%s bucket=%s", userID, bucket)
	}
	return current, false, nil
}

func cooldownFromRow(row cooldownTableModel) cooldown.Entry {
	return cooldown.Entry{
		UserID:     row.UserID,
		Bucket:     cooldown.Bucket(row.Bucket),
		LastUsedAt: row.LastUsedAt.UTC(),
	}
}
