package sqlstore

import (
	"context"
	"fmt"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/score"
	qb "github.com/MachuPishtuu/gq-roulette-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

var scoreColumns = []string{"user_id", "username", "week_id", "phase1", "phase2", "total", "updated_at"}

type ScoreRepository struct {
	store *Store
}

func NewScoreRepository(store *Store) *ScoreRepository {
	return &ScoreRepository{store: store}
}

func (r *ScoreRepository) Get(ctx context.Context, userID, weekID string) (score.Entry, bool, error) {
	query, args, err := scoreSelect(userID, weekID, "").ToSQL()
	if err != nil {
		return score.Entry{}, false, fmt.Errorf("build get score query: %w", err)
	}

	var row scoreTableModel
	err = r.store.do(func() error {
		return r.store.db.GetContext(ctx, &row, r.store.rebind(query), args...)
	})
	if err != nil {
		if isNotFound(err) {
			return score.Entry{}, false, nil
		}
		return score.Entry{}, false, fmt.Errorf("get score: %w", err)
	}
	return scoreFromRow(row), true, nil
}

// Mutate recomputes the total before writing, whatever fn returns.
func (r *ScoreRepository) Mutate(ctx context.Context, userID, weekID string, fn score.MutateFunc) (score.Entry, error) {
	query, args, err := scoreSelect(userID, weekID, r.store.lockSuffix()).ToSQL()
	if err != nil {
		return score.Entry{}, fmt.Errorf("build lock score query: %w", err)
	}

	var out score.Entry
	err = r.store.inTx(ctx, func(tx *sqlx.Tx) error {
		var (
			row     scoreTableModel
			current score.Entry
			exists  = true
		)
		if err := tx.GetContext(ctx, &row, tx.Rebind(query), args...); err != nil {
			if !isNotFound(err) {
				return fmt.Errorf("lock score: %w", err)
			}
			exists = false
		} else {
			current = scoreFromRow(row)
		}

		next, err := fn(current, exists)
		if err != nil {
			return abortError{err: err}
		}
		next = next.Recompute()

		upsert, upsertArgs, err := qb.InsertModel("scores", scoreTableModel{
			UserID:    next.UserID,
			Username:  next.Username,
			WeekID:    next.WeekID,
			Phase1:    next.Phase1,
			Phase2:    next.Phase2,
			Total:     next.Total,
			UpdatedAt: next.UpdatedAt.UTC(),
		}, `ON CONFLICT (user_id, week_id) DO UPDATE SET
    username = excluded.username,
    phase1 = excluded.phase1,
    phase2 = excluded.phase2,
    total = excluded.total,
    updated_at = excluded.updated_at`)
		if err != nil {
			return fmt.Errorf("build score upsert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(upsert), upsertArgs...); err != nil {
			return fmt.Errorf("upsert score: %w", err)
		}
		out = next
		return nil
	})
	if err != nil {
		return score.Entry{}, unwrapAbort(err)
	}
	return out, nil
}

func (r *ScoreRepository) ListByWeek(ctx context.Context, weekID string, limit int) ([]score.Entry, error) {
	query, args, err := qb.Select(scoreColumns...).
		From("scores").
		Where(qb.Eq("week_id", weekID)).
		OrderBy("total DESC", "updated_at ASC", "username ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreTableModel
	err = r.store.do(func() error {
		return r.store.db.SelectContext(ctx, &rows, r.store.rebind(query), args...)
	})
	if err != nil {
		return nil, fmt.Errorf("list scores by week: %w", err)
	}

	out := make([]score.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoreFromRow(row))
	}
	return out, nil
}

func scoreSelect(userID, weekID, suffix string) *qb.SelectBuilder {
	return qb.Select(scoreColumns...).
		From("scores").
		Where(qb.Eq("user_id", userID), qb.Eq("week_id", weekID)).
		Suffix(suffix)
}

func scoreFromRow(row scoreTableModel) score.Entry {
	return score.Entry{
		UserID:    row.UserID,
		Username:  row.Username,
		WeekID:    row.WeekID,
		Phase1:    row.Phase1,
		Phase2:    row.Phase2,
		Total:     row.Total,
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
