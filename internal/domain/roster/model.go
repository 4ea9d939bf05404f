package roster

import (
	"fmt"
	"strings"
	"time"
)

// Slot names one position of a roster.
type Slot string

const (
	SlotLead  Slot = "lead"
	SlotSide1 Slot = "side1"
	SlotSide2 Slot = "side2"
)

func ParseSlot(raw string) (Slot, error) {
	switch Slot(strings.ToLower(strings.TrimSpace(raw))) {
	case SlotLead:
		return SlotLead, nil
	case SlotSide1:
		return SlotSide1, nil
	case SlotSide2:
		return SlotSide2, nil
	default:
		return "", fmt.Errorf("unknown slot %q", raw)
	}
}

// Slots holds the three unit picks. Empty means unset.
type Slots struct {
	Lead  string
	Side1 string
	Side2 string
}

func (s Slots) Get(slot Slot) string {
	switch slot {
	case SlotLead:
		return s.Lead
	case SlotSide1:
		return s.Side1
	case SlotSide2:
		return s.Side2
	default:
		return ""
	}
}

func (s Slots) With(slot Slot, unit string) Slots {
	switch slot {
	case SlotLead:
		s.Lead = unit
	case SlotSide1:
		s.Side1 = unit
	case SlotSide2:
		s.Side2 = unit
	}
	return s
}

// Others returns the values of the two slots other than slot.
func (s Slots) Others(slot Slot) []string {
	switch slot {
	case SlotLead:
		return []string{s.Side1, s.Side2}
	case SlotSide1:
		return []string{s.Lead, s.Side2}
	case SlotSide2:
		return []string{s.Lead, s.Side1}
	default:
		return nil
	}
}

func (s Slots) IsEmpty() bool {
	return s.Lead == "" && s.Side1 == "" && s.Side2 == ""
}

func (s Slots) IsComplete() bool {
	return s.Lead != "" && s.Side1 != "" && s.Side2 != ""
}

// Distinct reports whether the populated slots hold pairwise distinct units.
func (s Slots) Distinct() bool {
	seen := make(map[string]struct{}, 3)
	for _, v := range []string{s.Lead, s.Side1, s.Side2} {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

// Roster is a user's persisted picks for one phase. Rosters are never
// deleted; each roll overwrites the row in place.
type Roster struct {
	UserID   string
	Username string
	Phase    string
	Slots
	UpdatedAt time.Time
}

func (r Roster) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(r.Phase) == "" {
		return fmt.Errorf("phase is required")
	}
	if !r.Distinct() {
		return fmt.Errorf("roster slots must be distinct")
	}
	return nil
}

// LastRolled is the most recent in-process roll for a user. It is not
// persisted and is lost on restart.
type LastRolled struct {
	Phase string
	Slots
}
