package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/assignment"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/schedule"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/user"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
)

const CurrentWeekAlias = "current"

// WeekStatus is the schedule view at one instant.
type WeekStatus struct {
	schedule.Resolution
	Assignment  assignment.WeekPhases
	Assigned    bool
	ActivePhase string
}

type PhaseService struct {
	catalogs    phase.CatalogProvider
	assignments assignment.Repository
	calc        *schedule.Calculator
	admins      map[string]struct{}
	logger      *logging.Logger
	now         func() time.Time
}

func NewPhaseService(
	catalogs phase.CatalogProvider,
	assignments assignment.Repository,
	calc *schedule.Calculator,
	adminIDs []string,
	logger *logging.Logger,
) *PhaseService {
	if logger == nil {
		logger = logging.Default()
	}

	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = struct{}{}
		}
	}

	return &PhaseService{
		catalogs:    catalogs,
		assignments: assignments,
		calc:        calc,
		admins:      admins,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *PhaseService) ListPhases(_ context.Context) []string {
	return s.catalogs.Catalog().Names()
}

// LookupPhase resolves a catalog phase case-insensitively.
func (s *PhaseService) LookupPhase(name string) (phase.Phase, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return phase.Phase{}, fmt.Errorf("%w: phase is required", ErrInvalidInput)
	}
	p, ok := s.catalogs.Catalog().Lookup(name)
	if !ok {
		return phase.Phase{}, fmt.Errorf("%w: %s", ErrUnknownPhase, name)
	}
	return p, nil
}

func (s *PhaseService) IsAdmin(userID string) bool {
	_, ok := s.admins[strings.TrimSpace(userID)]
	return ok
}

func (s *PhaseService) Now() time.Time {
	return s.now()
}

func (s *PhaseService) Current(ctx context.Context) (WeekStatus, error) {
	return s.StatusAt(ctx, s.now())
}

func (s *PhaseService) StatusAt(ctx context.Context, now time.Time) (WeekStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PhaseService.StatusAt")
	defer span.End()

	status := WeekStatus{Resolution: s.calc.Resolve(now)}
	item, exists, err := s.assignments.GetForWeek(ctx, status.WeekID)
	if err != nil {
		return WeekStatus{}, storageError("get week phases", err)
	}
	if exists {
		status.Assignment = item
		status.Assigned = true
		status.ActivePhase, _ = item.For(status.Window)
	}
	return status, nil
}

// ResolveActiveName returns the phase active at now. It reports false both
// in the gap window and when the week has no assignment.
func (s *PhaseService) ResolveActiveName(ctx context.Context, now time.Time) (string, bool, error) {
	status, err := s.StatusAt(ctx, now)
	if err != nil {
		return "", false, err
	}
	if status.ActivePhase == "" {
		return "", false, nil
	}
	return status.ActivePhase, true, nil
}

// ActivePhase resolves the current phase or explains why there is none.
func (s *PhaseService) ActivePhase(ctx context.Context) (phase.Phase, error) {
	status, err := s.Current(ctx)
	if err != nil {
		return phase.Phase{}, err
	}
	if status.Window == schedule.WindowNone {
		return phase.Phase{}, fmt.Errorf("%w: week %s is between phases until %s", ErrNoActiveWindow, status.WeekID, status.End.Format(time.RFC3339))
	}
	if status.ActivePhase == "" {
		return phase.Phase{}, fmt.Errorf("%w: no phases assigned for week %s", ErrNoActiveWindow, status.WeekID)
	}
	return s.LookupPhase(status.ActivePhase)
}

// ResolveWeekID maps "", "current" or any date inside a week to its id.
func (s *PhaseService) ResolveWeekID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, CurrentWeekAlias) {
		return s.calc.Resolve(s.now()).WeekID, nil
	}
	weekID, err := s.calc.WeekOf(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return weekID, nil
}

func (s *PhaseService) GetWeekPhases(ctx context.Context, rawWeekID string) (assignment.WeekPhases, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PhaseService.GetWeekPhases")
	defer span.End()

	weekID, err := s.ResolveWeekID(rawWeekID)
	if err != nil {
		return assignment.WeekPhases{}, false, err
	}

	item, exists, err := s.assignments.GetForWeek(ctx, weekID)
	if err != nil {
		return assignment.WeekPhases{}, false, storageError("get week phases", err)
	}
	if !exists {
		return assignment.WeekPhases{WeekID: weekID}, false, nil
	}
	return item, true, nil
}

// SetWeekPhases overwrites the pair for a week. Admin only; both names must
// exist in the catalog and are stored in their catalog spelling.
func (s *PhaseService) SetWeekPhases(ctx context.Context, actor user.Principal, rawWeekID, phase1, phase2 string) (assignment.WeekPhases, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PhaseService.SetWeekPhases")
	defer span.End()

	if err := actor.Validate(); err != nil {
		return assignment.WeekPhases{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !s.IsAdmin(actor.ID) {
		return assignment.WeekPhases{}, fmt.Errorf("%w: setting week phases requires admin", ErrUnauthorized)
	}

	weekID, err := s.ResolveWeekID(rawWeekID)
	if err != nil {
		return assignment.WeekPhases{}, err
	}
	p1, err := s.LookupPhase(phase1)
	if err != nil {
		return assignment.WeekPhases{}, err
	}
	p2, err := s.LookupPhase(phase2)
	if err != nil {
		return assignment.WeekPhases{}, err
	}

	item := assignment.WeekPhases{
		WeekID:    weekID,
		Phase1:    p1.Name,
		Phase2:    p2.Name,
		UpdatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return assignment.WeekPhases{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.assignments.SetForWeek(ctx, item); err != nil {
		return assignment.WeekPhases{}, storageError("set week phases", err)
	}

	s.logger.InfoContext(ctx, "week phases set",
		"week_id", item.WeekID,
		"phase1", item.Phase1,
		"phase2", item.Phase2,
		"admin_id", actor.ID,
	)
	return item, nil
}
