package assignment

import "context"

// Repository stores at most one phase pair per week.
type Repository interface {
	SetForWeek(ctx context.Context, item WeekPhases) error
	GetForWeek(ctx context.Context, weekID string) (WeekPhases, bool, error)
}
