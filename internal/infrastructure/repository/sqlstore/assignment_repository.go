package sqlstore

import (
	"context"
	"fmt"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/assignment"
	qb "github.com/MachuPishtuu/gq-roulette-bot/internal/platform/querybuilder"
)

type AssignmentRepository struct {
	store *Store
}

func NewAssignmentRepository(store *Store) *AssignmentRepository {
	return &AssignmentRepository{store: store}
}

func (r *AssignmentRepository) SetForWeek(ctx context.Context, item assignment.WeekPhases) error {
	query, args, err := qb.InsertModel("phase_assignments", assignmentTableModel{
		WeekID:    item.WeekID,
		Phase1:    item.Phase1,
		Phase2:    item.Phase2,
		UpdatedAt: item.UpdatedAt.UTC(),
	}, `ON CONFLICT (week_id) DO UPDATE SET
    phase1 = excluded.phase1,
    phase2 = excluded.phase2,
    updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("build set week phases query: %w", err)
	}

	err = r.store.do(func() error {
		_, err := r.store.db.ExecContext(ctx, r.store.rebind(query), args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("set week phases: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) GetForWeek(ctx context.Context, weekID string) (assignment.WeekPhases, bool, error) {
	query, args, err := qb.Select("week_id", "phase1", "phase2", "updated_at").
		From("phase_assignments").
		Where(qb.Eq("week_id", weekID)).
		ToSQL()
	if err != nil {
		return assignment.WeekPhases{}, false, fmt.Errorf("build get week phases query: %w", err)
	}

	var row assignmentTableModel
	err = r.store.do(func() error {
		return r.store.db.GetContext(ctx, &row, r.store.rebind(query), args...)
	})
	if err != nil {
		if isNotFound(err) {
			return assignment.WeekPhases{}, false, nil
		}
		return assignment.WeekPhases{}, false, fmt.Errorf("get week phases: %w", err)
	}

	return assignment.WeekPhases{
		WeekID:    row.WeekID,
		Phase1:    row.Phase1,
		Phase2:    row.Phase2,
		UpdatedAt: row.UpdatedAt.UTC(),
	}, true, nil
}
