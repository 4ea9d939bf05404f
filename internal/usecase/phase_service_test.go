package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/assignment"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/schedule"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/user"
	assignmentmock "github.com/MachuPishtuu/gq-roulette-bot/internal/mocks/domain/assignment"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var testAdmin = user.Principal{ID: "admin-1", Username: "root"}

func TestPhaseService_SetWeekPhases(t *testing.T) {
	t.Parallel()

	f := newRosterFixture(t, defaultPeriods(), 1)
	ctx := t.Context()

	got, err := f.phases.SetWeekPhases(ctx, testAdmin, "current", "alpha", "BETA")
	if err != nil {
		t.Fatalf("set week phases: %v", err)
	}
	if got.WeekID != "2026-03-02" || got.Phase1 != "Alpha" || got.Phase2 != "Beta" {
		t.Fatalf("unexpected assignment: %+v", got)
	}

	// Overwrite is idempotent and last write wins.
	if _, err := f.phases.SetWeekPhases(ctx, testAdmin, "2026-03-04", "Beta", "Alpha"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	stored, ok, err := f.phases.GetWeekPhases(ctx, "2026-03-02")
	if err != nil || !ok {
		t.Fatalf("get week phases: ok=%v err=%v", ok, err)
	}
	if stored.Phase1 != "Beta" || stored.Phase2 != "Alpha" {
		t.Fatalf("unexpected stored assignment: %+v", stored)
	}
}

func TestPhaseService_SetWeekPhases_Rejections(t *testing.T) {
	t.Parallel()

	f := newRosterFixture(t, defaultPeriods(), 1)
	ctx := t.Context()

	if _, err := f.phases.SetWeekPhases(ctx, testActor, "", "Alpha", "Beta"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.phases.SetWeekPhases(ctx, testAdmin, "", "Alpha", "Omega"); !errors.Is(err, ErrUnknownPhase) {
		t.Fatalf("expected ErrUnknownPhase, got %v", err)
	}
	if _, err := f.phases.SetWeekPhases(ctx, testAdmin, "next tuesday", "Alpha", "Beta"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, ok, _ := f.assignments.GetForWeek(ctx, "2026-03-02"); ok {
		t.Fatalf("rejected calls must not persist anything")
	}
}

func TestPhaseService_Current(t *testing.T) {
	t.Parallel()

	f := newRosterFixture(t, defaultPeriods(), 1)
	ctx := t.Context()

	status, err := f.phases.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if status.Assigned || status.Window != schedule.WindowPhase1 || status.ActivePhase != "" {
		t.Fatalf("unexpected unassigned status: %+v", status)
	}

	_ = f.assignments.SetForWeek(ctx, assignment.WeekPhases{WeekID: "2026-03-02", Phase1: "Alpha", Phase2: "Beta"})
	status, _ = f.phases.Current(ctx)
	if !status.Assigned || status.ActivePhase != "Alpha" {
		t.Fatalf("unexpected assigned status: %+v", status)
	}

	name, ok, _ := f.phases.ResolveActiveName(ctx, testAnchor.AddDate(0, 0, 6))
	if ok || name != "" {
		t.Fatalf("gap must resolve to no phase, got %q", name)
	}
	name, ok, _ = f.phases.ResolveActiveName(ctx, testAnchor.AddDate(0, 0, 6).Add(-time.Second))
	if !ok || name != "Beta" {
		t.Fatalf("last second of phase2 must resolve Beta, got %q", name)
	}
}

func TestPhaseService_ListPhases(t *testing.T) {
	t.Parallel()

	f := newRosterFixture(t, defaultPeriods(), 1)
	names := f.phases.ListPhases(t.Context())
	want := []string{"Alpha", "Beta", "NoLead", "Tiny"}
	if len(names) != len(want) {
		t.Fatalf("unexpected phases: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("phase %d: got=%s want=%s", i, names[i], want[i])
		}
	}
}

func TestPhaseService_StorageFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := assignmentmock.NewRepository(t)
	service := NewPhaseService(phase.NewStaticProvider(testCatalog()), repo, testCalculator(t), nil, logging.NewNop())
	service.now = func() time.Time { return testAnchor.Add(time.Hour) }

	repo.
		On("GetForWeek", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "2026-03-02").
		Return(assignment.WeekPhases{}, false, errors.New("connection refused")).
		Once()

	_, _, err := service.ResolveActiveName(ctx, service.now())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestPhaseService_SetWeekPhasesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := assignmentmock.NewRepository(t)
	service := NewPhaseService(phase.NewStaticProvider(testCatalog()), repo, testCalculator(t), []string{"admin-1"}, logging.NewNop())
	service.now = func() time.Time { return testAnchor.Add(time.Hour) }

	repo.
		On("SetForWeek", mock.Anything, mock.MatchedBy(func(v assignment.WeekPhases) bool {
			return v.WeekID == "2026-03-09" && v.Phase1 == "Tiny" && v.Phase2 == "Alpha"
		})).
		Return(nil).
		Once()

	if _, err := service.SetWeekPhases(ctx, testAdmin, "2026-03-10", "tiny", "alpha"); err != nil {
		t.Fatalf("set week phases: %v", err)
	}
}
