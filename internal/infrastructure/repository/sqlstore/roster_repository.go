package sqlstore

import (
	"context"
	"fmt"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
	qb "github.com/MachuPishtuu/gq-roulette-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

var rosterColumns = []string{"user_id", "username", "phase_key", "phase", "lead", "side1", "side2", "updated_at"}

const rosterUpsertSuffix = `ON CONFLICT (user_id, phase_key) DO UPDATE SET
    username = excluded.username,
    phase = excluded.phase,
    lead = excluded.lead,
    side1 = excluded.side1,
    side2 = excluded.side2,
    updated_at = excluded.updated_at`

type RosterRepository struct {
	store *Store
}

func NewRosterRepository(store *Store) *RosterRepository {
	return &RosterRepository{store: store}
}

func (r *RosterRepository) Get(ctx context.Context, userID, phaseName string) (roster.Roster, bool, error) {
	query, args, err := rosterSelect(userID, phaseName, "").ToSQL()
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("build get roster query: %w", err)
	}

	var row rosterTableModel
	err = r.store.do(func() error {
		return r.store.db.GetContext(ctx, &row, r.store.rebind(query), args...)
	})
	if err != nil {
		if isNotFound(err) {
			return roster.Roster{}, false, nil
		}
		return roster.Roster{}, false, fmt.Errorf("get roster: %w", err)
	}
	return rosterFromRow(row), true, nil
}

func (r *RosterRepository) Put(ctx context.Context, item roster.Roster) error {
	query, args, err := rosterUpsert(item)
	if err != nil {
		return err
	}
	err = r.store.do(func() error {
		_, err := r.store.db.ExecContext(ctx, r.store.rebind(query), args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert roster: %w", err)
	}
	return nil
}

func (r *RosterRepository) Mutate(ctx context.Context, userID, phaseName string, fn roster.MutateFunc) (roster.Roster, error) {
	query, args, err := rosterSelect(userID, phaseName, r.store.lockSuffix()).ToSQL()
	if err != nil {
		return roster.Roster{}, fmt.Errorf("build lock roster query: %w", err)
	}

	var out roster.Roster
	err = r.store.inTx(ctx, func(tx *sqlx.Tx) error {
		var (
			row     rosterTableModel
			current roster.Roster
			exists  = true
		)
		if err := tx.GetContext(ctx, &row, tx.Rebind(query), args...); err != nil {
			if !isNotFound(err) {
				return fmt.Errorf("lock roster: %w", err)
			}
			exists = false
		} else {
			current = rosterFromRow(row)
		}

		next, err := fn(current, exists)
		if err != nil {
			return abortError{err: err}
		}

		upsert, upsertArgs, err := rosterUpsert(next)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(upsert), upsertArgs...); err != nil {
			return fmt.Errorf("upsert roster: %w", err)
		}
		out = next
		return nil
	})
	if err != nil {
		return roster.Roster{}, unwrapAbort(err)
	}
	return out, nil
}

func rosterSelect(userID, phaseName, suffix string) *qb.SelectBuilder {
	return qb.Select(rosterColumns...).
		From("rosters").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("phase_key", phase.Key(phaseName)),
		).
		Suffix(suffix)
}

func rosterUpsert(item roster.Roster) (string, []any, error) {
	query, args, err := qb.InsertModel("rosters", rosterTableModel{
		UserID:    item.UserID,
		Username:  item.Username,
		PhaseKey:  phase.Key(item.Phase),
		Phase:     item.Phase,
		Lead:      item.Lead,
		Side1:     item.Side1,
		Side2:     item.Side2,
		UpdatedAt: item.UpdatedAt.UTC(),
	}, rosterUpsertSuffix)
	if err != nil {
		return "", nil, fmt.Errorf("build roster upsert query: %w", err)
	}
	return query, args, nil
}

func rosterFromRow(row rosterTableModel) roster.Roster {
	return roster.Roster{
		UserID:   row.UserID,
		Username: row.Username,
		Phase:    row.Phase,
		Slots: roster.Slots{
			Lead:  row.Lead,
			Side1: row.Side1,
			Side2: row.Side2,
		},
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
