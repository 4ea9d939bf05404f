package roster

import (
	"errors"
	"fmt"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/random"
)

// ErrExhausted means no candidate survived the exclusions.
var ErrExhausted = errors.New("no unique candidate left")

type Selector struct {
	rng random.Source
}

func NewSelector(rng random.Source) *Selector {
	if rng == nil {
		rng = random.New()
	}
	return &Selector{rng: rng}
}

// Select picks uniformly from pool minus lastRolled minus exclusions.
// Empty strings in lastRolled or exclusions are ignored.
func (s *Selector) Select(pool []string, lastRolled string, exclusions ...string) (string, error) {
	skip := make(map[string]struct{}, len(exclusions)+1)
	if lastRolled != "" {
		skip[lastRolled] = struct{}{}
	}
	for _, v := range exclusions {
		if v != "" {
			skip[v] = struct{}{}
		}
	}

	candidates := make([]string, 0, len(pool))
	for _, unit := range pool {
		if _, excluded := skip[unit]; excluded {
			continue
		}
		candidates = append(candidates, unit)
	}
	if len(candidates) == 0 {
		return "", ErrExhausted
	}
	return candidates[s.rng.IntN(len(candidates))], nil
}

// RollTeam draws lead, side1 and side2 in that order. Each later slot drops
// the units already drawn in this call, so the result is pairwise distinct.
func (s *Selector) RollTeam(p phase.Phase, current, last Slots) (Slots, error) {
	lead, err := s.Select(p.LeadPool(), last.Lead, current.Side1, current.Side2)
	if err != nil {
		return Slots{}, slotError(SlotLead, err)
	}

	sidePool := without(p.SidePool(), lead)
	side1, err := s.Select(sidePool, last.Side1, current.Lead, current.Side2)
	if err != nil {
		return Slots{}, slotError(SlotSide1, err)
	}

	side2, err := s.Select(without(sidePool, side1), last.Side2, current.Lead, current.Side1)
	if err != nil {
		return Slots{}, slotError(SlotSide2, err)
	}

	return Slots{Lead: lead, Side1: side1, Side2: side2}, nil
}

// RollSlot redraws one slot against the other two current slots. The lead
// also avoids its last roll; side slots draw from Side ∪ Lead.
func (s *Selector) RollSlot(p phase.Phase, slot Slot, current, last Slots) (string, error) {
	var (
		unit string
		err  error
	)
	switch slot {
	case SlotLead:
		unit, err = s.Select(p.LeadPool(), last.Lead, current.Others(SlotLead)...)
	case SlotSide1, SlotSide2:
		unit, err = s.Select(p.SidePool(), "", current.Others(slot)...)
	default:
		return "", fmt.Errorf("unknown slot %q", slot)
	}
	if err != nil {
		return "", slotError(slot, err)
	}
	return unit, nil
}

func slotError(slot Slot, err error) error {
	return fmt.Errorf("%s: %w", slot, err)
}

func without(pool []string, unit string) []string {
	out := make([]string, 0, len(pool))
	for _, v := range pool {
		if v != unit {
			out = append(out, v)
		}
	}
	return out
}
