package memory

import (
	"context"
	"sync"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/assignment"
)

type AssignmentRepository struct {
	mu    sync.RWMutex
	items map[string]assignment.WeekPhases
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{items: make(map[string]assignment.WeekPhases)}
}

func (r *AssignmentRepository) SetForWeek(_ context.Context, item assignment.WeekPhases) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.WeekID] = item
	return nil
}

func (r *AssignmentRepository) GetForWeek(_ context.Context, weekID string) (assignment.WeekPhases, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[weekID]
	return item, ok, nil
}
