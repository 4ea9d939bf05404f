package usecase

import (
	"testing"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/schedule"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/user"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/infrastructure/repository/memory"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/random"
)

// Monday 2026-03-02 00:00 UTC opens the test week.
var testAnchor = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

var testActor = user.Principal{ID: "u-1", Username: "ana"}

func testCatalog() *phase.Catalog {
	return phase.NewCatalog([]phase.Record{
		{Phase: "Alpha", Role: "Lead", Unit: "A"},
		{Phase: "Alpha", Role: "Lead", Unit: "B"},
		{Phase: "Alpha", Role: "Side", Unit: "C"},
		{Phase: "Alpha", Role: "Side", Unit: "D"},
		{Phase: "Beta", Role: "Lead", Unit: "A"},
		{Phase: "Beta", Role: "Lead", Unit: "B"},
		{Phase: "Beta", Role: "Lead", Unit: "C"},
		{Phase: "Beta", Role: "Lead", Unit: "D"},
		{Phase: "Beta", Role: "Side", Unit: "X"},
		{Phase: "Beta", Role: "Side", Unit: "Y"},
		{Phase: "Beta", Role: "Side", Unit: "Z"},
		{Phase: "Tiny", Role: "Lead", Unit: "A"},
		{Phase: "NoLead", Role: "Side", Unit: "X"},
		{Phase: "NoLead", Role: "Side", Unit: "Y"},
		{Phase: "NoLead", Role: "Side", Unit: "Z"},
	})
}

func testCalculator(t *testing.T) *schedule.Calculator {
	t.Helper()
	calc, err := schedule.NewCalculator(time.UTC, time.Monday, 0, 0)
	if err != nil {
		t.Fatalf("new calculator: %v", err)
	}
	return calc
}

type rosterFixture struct {
	now         time.Time
	assignments *memory.AssignmentRepository
	rosters     *memory.RosterRepository
	cooldowns   *memory.CooldownRepository
	lastRolled  *memory.LastRolledStore
	tracker     *CooldownTracker
	phases      *PhaseService
	service     *RosterService
}

func newRosterFixture(t *testing.T, periods CooldownPeriods, seed uint64) *rosterFixture {
	t.Helper()

	f := &rosterFixture{
		now:         testAnchor.Add(12 * time.Hour),
		assignments: memory.NewAssignmentRepository(),
		rosters:     memory.NewRosterRepository(),
		cooldowns:   memory.NewCooldownRepository(),
		lastRolled:  memory.NewLastRolledStore(),
	}
	clock := func() time.Time { return f.now }

	f.phases = NewPhaseService(phase.NewStaticProvider(testCatalog()), f.assignments, testCalculator(t), []string{"admin-1"}, logging.NewNop())
	f.phases.now = clock

	f.tracker = NewCooldownTracker(f.cooldowns, periods)
	f.tracker.now = clock

	f.service = NewRosterService(f.phases, f.rosters, f.lastRolled, f.tracker, roster.NewSelector(random.NewSeeded(seed)), logging.NewNop())
	f.service.now = clock
	return f
}

func defaultPeriods() CooldownPeriods {
	return CooldownPeriods{cooldown.BucketTeam: 4 * time.Hour}
}
