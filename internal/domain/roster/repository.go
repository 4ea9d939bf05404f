package roster

import "context"

// MutateFunc receives the stored roster (zero value when absent) and returns
// the row to write. Returning an error aborts the write.
type MutateFunc func(current Roster, exists bool) (Roster, error)

// Repository persists one roster per (user, phase). Phase matching is
// case-insensitive.
type Repository interface {
	Get(ctx context.Context, userID, phase string) (Roster, bool, error)
	Put(ctx context.Context, item Roster) error
	Mutate(ctx context.Context, userID, phase string, fn MutateFunc) (Roster, error)
}

// LastRolledStore keeps volatile per-user roll memory.
type LastRolledStore interface {
	Get(userID string) (LastRolled, bool)
	Record(userID string, item LastRolled)
}
