package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const WeekIDLayout = "2006-01-02"

// Window is the active sub-window of a week.
type Window int

const (
	WindowNone Window = iota
	WindowPhase1
	WindowPhase2
)

func (w Window) String() string {
	switch w {
	case WindowPhase1:
		return "phase1"
	case WindowPhase2:
		return "phase2"
	default:
		return "none"
	}
}

// Resolution describes where an instant falls in the weekly cycle.
// Start/End bound the active window (closed-open); for WindowNone they
// bound the administrative gap.
type Resolution struct {
	WeekID string
	Window Window
	Anchor time.Time
	Start  time.Time
	End    time.Time
	Next   time.Time
}

// NextAnchor is the start of the following week.
func (r Resolution) NextAnchor() time.Time {
	if r.Next.IsZero() {
		return r.Anchor.AddDate(0, 0, 7)
	}
	return r.Next
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(raw string) (time.Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if value == name || value == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", raw)
}

// ParseClock parses HH:MM in 24h form.
func ParseClock(raw string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q, want HH:MM", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return hour, minute, nil
}
