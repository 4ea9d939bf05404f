package assignment

import (
	"fmt"
	"strings"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/schedule"
)

// WeekPhases is the pair of phases an administrator picked for one week.
type WeekPhases struct {
	WeekID    string
	Phase1    string
	Phase2    string
	UpdatedAt time.Time
}

// For returns the phase name serving the given window.
func (w WeekPhases) For(window schedule.Window) (string, bool) {
	switch window {
	case schedule.WindowPhase1:
		return w.Phase1, w.Phase1 != ""
	case schedule.WindowPhase2:
		return w.Phase2, w.Phase2 != ""
	default:
		return "", false
	}
}

func (w WeekPhases) Validate() error {
	if strings.TrimSpace(w.WeekID) == "" {
		return fmt.Errorf("week id is required")
	}
	if _, err := time.Parse(schedule.WeekIDLayout, w.WeekID); err != nil {
		return fmt.Errorf("week id must be YYYY-MM-DD")
	}
	if strings.TrimSpace(w.Phase1) == "" {
		return fmt.Errorf("phase1 is required")
	}
	if strings.TrimSpace(w.Phase2) == "" {
		return fmt.Errorf("phase2 is required")
	}
	return nil
}
