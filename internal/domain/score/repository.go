package score

import "context"

// MutateFunc receives the stored entry (zero value when absent) and returns
// the row to write. Returning an error aborts the write.
type MutateFunc func(current Entry, exists bool) (Entry, error)

type Repository interface {
	Get(ctx context.Context, userID, weekID string) (Entry, bool, error)
	Mutate(ctx context.Context, userID, weekID string, fn MutateFunc) (Entry, error)
	ListByWeek(ctx context.Context, weekID string, limit int) ([]Entry, error)
}
