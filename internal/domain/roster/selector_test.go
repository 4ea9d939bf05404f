package roster

import (
	"errors"
	"testing"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/random"
)

var alpha = phase.Phase{Name: "Alpha", Lead: []string{"A", "B"}, Side: []string{"C", "D"}}

func TestSelector_Select_EmptyCandidatesIsExhausted(t *testing.T) {
	s := NewSelector(random.NewSeeded(1))

	tests := []struct {
		name       string
		pool       []string
		last       string
		exclusions []string
	}{
		{name: "empty pool"},
		{name: "only last rolled", pool: []string{"A"}, last: "A"},
		{name: "all excluded", pool: []string{"A", "B"}, exclusions: []string{"A", "B"}},
		{name: "last plus exclusions", pool: []string{"A", "B"}, last: "A", exclusions: []string{"B"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Select(tc.pool, tc.last, tc.exclusions...)
			if !errors.Is(err, ErrExhausted) {
				t.Fatalf("expected ErrExhausted, got value=%q err=%v", got, err)
			}
			if got != "" {
				t.Fatalf("expected no value, got %q", got)
			}
		})
	}
}

func TestSelector_Select_HonorsExclusions(t *testing.T) {
	s := NewSelector(random.NewSeeded(3))
	for i := 0; i < 200; i++ {
		got, err := s.Select([]string{"A", "B", "C", "D"}, "A", "C", "")
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if got != "B" && got != "D" {
			t.Fatalf("picked excluded unit %q", got)
		}
	}
}

func TestSelector_Select_UsesInjectedSource(t *testing.T) {
	s := NewSelector(random.NewFixed(1))
	got, err := s.Select([]string{"A", "B", "C"}, "A")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != "C" {
		t.Fatalf("expected second candidate C, got %q", got)
	}
}

func TestSelector_RollTeam_FirstRollScenario(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		s := NewSelector(random.NewSeeded(seed))
		got, err := s.RollTeam(alpha, Slots{}, Slots{})
		if err != nil {
			t.Fatalf("seed %d: roll team: %v", seed, err)
		}
		if got.Lead != "A" && got.Lead != "B" {
			t.Fatalf("seed %d: lead %q not in lead pool", seed, got.Lead)
		}
		if !got.IsComplete() || !got.Distinct() {
			t.Fatalf("seed %d: roster not complete and distinct: %+v", seed, got)
		}
	}
}

func TestSelector_RollTeam_LeadDiffersFromPrevious(t *testing.T) {
	p := phase.Phase{Name: "Beta", Lead: []string{"A", "B", "C"}, Side: []string{"X", "Y", "Z"}}
	current := Slots{Lead: "A", Side1: "X", Side2: "Y"}

	for seed := uint64(0); seed < 200; seed++ {
		s := NewSelector(random.NewSeeded(seed))
		got, err := s.RollTeam(p, current, current)
		if err != nil {
			t.Fatalf("seed %d: roll team: %v", seed, err)
		}
		if got.Lead == current.Lead {
			t.Fatalf("seed %d: lead repeated %q", seed, got.Lead)
		}
		if !got.Distinct() {
			t.Fatalf("seed %d: duplicate units %+v", seed, got)
		}
		if got.Side1 == current.Side1 || got.Side2 == current.Side2 {
			t.Fatalf("seed %d: side repeated its last roll %+v", seed, got)
		}
	}
}

func TestSelector_RollTeam_ReportsExhaustedSlot(t *testing.T) {
	s := NewSelector(random.NewSeeded(1))
	tiny := phase.Phase{Name: "Tiny", Lead: []string{"A"}, Side: []string{"C"}}

	_, err := s.RollTeam(tiny, Slots{}, Slots{})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestSelector_RollSlot_ExcludesOtherCurrentSlots(t *testing.T) {
	current := Slots{Lead: "A", Side1: "C", Side2: "B"}

	for seed := uint64(0); seed < 100; seed++ {
		s := NewSelector(random.NewSeeded(seed))

		side1, err := s.RollSlot(alpha, SlotSide1, current, current)
		if err != nil {
			t.Fatalf("seed %d: roll side1: %v", seed, err)
		}
		if side1 == current.Lead || side1 == current.Side2 {
			t.Fatalf("seed %d: side1 %q collides with another slot", seed, side1)
		}
	}

	// Lead pool {A,B} minus last lead A minus current side B leaves nothing.
	s := NewSelector(random.NewSeeded(1))
	if _, err := s.RollSlot(alpha, SlotLead, current, current); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted for lead, got %v", err)
	}
}

func TestSelector_RollSlot_LeadNeverDrawsSides(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		s := NewSelector(random.NewSeeded(seed))
		lead, err := s.RollSlot(alpha, SlotLead, Slots{}, Slots{})
		if err != nil {
			t.Fatalf("seed %d: roll lead: %v", seed, err)
		}
		if lead != "A" && lead != "B" {
			t.Fatalf("seed %d: lead drawn from side pool: %q", seed, lead)
		}
	}
}
