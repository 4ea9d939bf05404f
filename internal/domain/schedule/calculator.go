package schedule

import (
	"fmt"
	"strings"
	"time"
)

const (
	phase1Days = 3
	phase2Days = 3
	weekDays   = 7
)

// Calculator maps instants onto the weekly phase cycle anchored at a fixed
// weekday and time of day in one timezone.
type Calculator struct {
	loc     *time.Location
	weekday time.Weekday
	hour    int
	minute  int
}

func NewCalculator(loc *time.Location, weekday time.Weekday, hour, minute int) (*Calculator, error) {
	if loc == nil {
		return nil, fmt.Errorf("schedule location is required")
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return nil, fmt.Errorf("invalid anchor weekday %d", weekday)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("invalid anchor time %02d:%02d", hour, minute)
	}
	return &Calculator{loc: loc, weekday: weekday, hour: hour, minute: minute}, nil
}

func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Anchor returns the most recent anchor at or before now.
func (c *Calculator) Anchor(now time.Time) time.Time {
	return c.boundary(c.anchorDay(now), 0)
}

// anchorDay returns the calendar date of the anchor for now, as a UTC
// midnight so date math never touches the schedule zone's transitions.
func (c *Calculator) anchorDay(now time.Time) time.Time {
	local := now.In(c.loc)
	back := (int(local.Weekday()) - int(c.weekday) + weekDays) % weekDays
	day := time.Date(local.Year(), local.Month(), local.Day()-back, 0, 0, 0, 0, time.UTC)
	if c.boundary(day, 0).After(now) {
		day = day.AddDate(0, 0, -weekDays)
	}
	return day
}

// boundary is the anchor time of day, offset days after day. Each boundary
// is resolved on its own so a DST gap on the anchor day only moves that
// instant, not the later windows.
func (c *Calculator) boundary(day time.Time, offset int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+offset, c.hour, c.minute, 0, 0, c.loc)
}

// Resolve is total: every instant lands in exactly one window.
func (c *Calculator) Resolve(now time.Time) Resolution {
	day := c.anchorDay(now)
	anchor := c.boundary(day, 0)
	phase2Start := c.boundary(day, phase1Days)
	gapStart := c.boundary(day, phase1Days+phase2Days)
	next := c.boundary(day, weekDays)

	res := Resolution{WeekID: day.Format(WeekIDLayout), Anchor: anchor, Next: next}
	switch {
	case now.Before(phase2Start):
		res.Window, res.Start, res.End = WindowPhase1, anchor, phase2Start
	case now.Before(gapStart):
		res.Window, res.Start, res.End = WindowPhase2, phase2Start, gapStart
	default:
		res.Window, res.Start, res.End = WindowNone, gapStart, next
	}
	return res
}

// WeekOf returns the id of the week containing the given calendar date,
// evaluated at the anchor time of day. An anchor-weekday date is its own id.
func (c *Calculator) WeekOf(date string) (string, error) {
	day, err := time.ParseInLocation(WeekIDLayout, strings.TrimSpace(date), c.loc)
	if err != nil {
		return "", fmt.Errorf("parse week date: %w", err)
	}
	at := time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, 0, 0, c.loc)
	return c.Resolve(at).WeekID, nil
}
