package schedule

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func mustCalculator(t *testing.T, loc *time.Location, weekday time.Weekday, hour, minute int) *Calculator {
	t.Helper()
	calc, err := NewCalculator(loc, weekday, hour, minute)
	if err != nil {
		t.Fatalf("new calculator: %v", err)
	}
	return calc
}

func TestCalculator_Resolve_Windows(t *testing.T) {
	calc := mustCalculator(t, time.UTC, time.Monday, 0, 0)
	anchor := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name   string
		now    time.Time
		window Window
		weekID string
	}{
		{name: "anchor instant opens phase1", now: anchor, window: WindowPhase1, weekID: "2026-03-02"},
		{name: "inside phase1", now: anchor.Add(50 * time.Hour), window: WindowPhase1, weekID: "2026-03-02"},
		{name: "last second of phase1", now: anchor.AddDate(0, 0, 3).Add(-time.Second), window: WindowPhase1, weekID: "2026-03-02"},
		{name: "phase2 boundary", now: anchor.AddDate(0, 0, 3), window: WindowPhase2, weekID: "2026-03-02"},
		{name: "gap boundary", now: anchor.AddDate(0, 0, 6), window: WindowNone, weekID: "2026-03-02"},
		{name: "gap plus one hour", now: anchor.AddDate(0, 0, 6).Add(time.Hour), window: WindowNone, weekID: "2026-03-02"},
		{name: "second before next anchor", now: anchor.AddDate(0, 0, 7).Add(-time.Second), window: WindowNone, weekID: "2026-03-02"},
		{name: "next anchor", now: anchor.AddDate(0, 0, 7), window: WindowPhase1, weekID: "2026-03-09"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.Resolve(tc.now)
			if got.Window != tc.window {
				t.Fatalf("window: got=%s want=%s", got.Window, tc.window)
			}
			if got.WeekID != tc.weekID {
				t.Fatalf("week id: got=%s want=%s", got.WeekID, tc.weekID)
			}
			if tc.now.Before(got.Start) || !tc.now.Before(got.End) {
				t.Fatalf("now %s outside bounds [%s, %s)", tc.now, got.Start, got.End)
			}
		})
	}
}

func TestCalculator_Resolve_BoundaryClosure(t *testing.T) {
	calc := mustCalculator(t, time.UTC, time.Monday, 0, 0)
	anchor := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	at := calc.Resolve(anchor)
	before := calc.Resolve(anchor.Add(-time.Second))

	if at.Window != WindowPhase1 {
		t.Fatalf("expected phase1 at anchor, got %s", at.Window)
	}
	if before.Window != WindowNone {
		t.Fatalf("expected gap one second before anchor, got %s", before.Window)
	}
	if !before.End.Equal(at.Start) {
		t.Fatalf("previous window must end where the next starts: %s vs %s", before.End, at.Start)
	}
}

func TestCalculator_Resolve_AnchorTimeOfDayAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	calc := mustCalculator(t, loc, time.Thursday, 20, 30)

	// Thursday 2026-03-05 20:29 local is still the previous week's gap.
	justBefore := time.Date(2026, 3, 5, 20, 29, 59, 0, loc)
	got := calc.Resolve(justBefore)
	if got.Window != WindowNone || got.WeekID != "2026-02-26" {
		t.Fatalf("unexpected resolution before anchor: %+v", got)
	}

	// Same instant expressed in UTC resolves identically.
	if calc.Resolve(justBefore.UTC()).WeekID != "2026-02-26" {
		t.Fatalf("resolution must not depend on the input zone")
	}

	atAnchor := calc.Resolve(time.Date(2026, 3, 5, 20, 30, 0, 0, loc))
	if atAnchor.Window != WindowPhase1 || atAnchor.WeekID != "2026-03-05" {
		t.Fatalf("unexpected resolution at anchor: %+v", atAnchor)
	}
}

func TestCalculator_Resolve_WeekRolloverAcrossMonths(t *testing.T) {
	calc := mustCalculator(t, time.UTC, time.Monday, 0, 0)
	// Sunday 2026-03-01 belongs to the week anchored on Monday 2026-02-23.
	got := calc.Resolve(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	if got.WeekID != "2026-02-23" || got.Window != WindowNone {
		t.Fatalf("unexpected rollover resolution: %+v", got)
	}
	if !got.NextAnchor().Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected next anchor: %s", got.NextAnchor())
	}
}

func TestCalculator_Resolve_AnchorInsideDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// Clocks jump from 02:00 to 03:00 on Sunday 2026-03-08, so the 02:30
	// anchor does not exist that day.
	calc := mustCalculator(t, loc, time.Sunday, 2, 30)

	week := calc.Resolve(time.Date(2026, 3, 9, 12, 0, 0, 0, loc))
	if week.WeekID != "2026-03-08" || week.Window != WindowPhase1 {
		t.Fatalf("unexpected resolution after the gap: %+v", week)
	}

	phase2 := time.Date(2026, 3, 11, 2, 30, 0, 0, loc)
	if !week.End.Equal(phase2) {
		t.Fatalf("phase2 must open at 02:30 local: got %s", week.End.In(loc))
	}
	gap := calc.Resolve(phase2.AddDate(0, 0, 3))
	if gap.Window != WindowNone || gap.WeekID != "2026-03-08" {
		t.Fatalf("unexpected gap resolution: %+v", gap)
	}
	nextAnchor := time.Date(2026, 3, 15, 2, 30, 0, 0, loc)
	if !gap.End.Equal(nextAnchor) || !gap.NextAnchor().Equal(nextAnchor) {
		t.Fatalf("gap must end at the next 02:30 local: end=%s next=%s", gap.End.In(loc), gap.NextAnchor().In(loc))
	}

	// the previous week hands over exactly where the shifted anchor starts
	prev := calc.Resolve(week.Start.Add(-time.Second))
	if prev.WeekID != "2026-03-01" || prev.Window != WindowNone {
		t.Fatalf("unexpected resolution before the shifted anchor: %+v", prev)
	}
	if !prev.End.Equal(week.Start) {
		t.Fatalf("windows must be contiguous: %s vs %s", prev.End, week.Start)
	}

	got, err := calc.WeekOf("2026-03-08")
	if err != nil || got != "2026-03-08" {
		t.Fatalf("week of the DST day: got=%s err=%v", got, err)
	}
}

func TestCalculator_WeekOf(t *testing.T) {
	calc := mustCalculator(t, time.UTC, time.Monday, 0, 0)

	tests := map[string]string{
		"2026-03-02": "2026-03-02",
		"2026-03-04": "2026-03-02",
		"2026-03-08": "2026-03-02",
		"2026-03-09": "2026-03-09",
	}
	for date, want := range tests {
		got, err := calc.WeekOf(date)
		if err != nil {
			t.Fatalf("week of %s: %v", date, err)
		}
		if got != want {
			t.Fatalf("week of %s: got=%s want=%s", date, got, want)
		}
	}

	if _, err := calc.WeekOf("03/02/2026"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestNewCalculator_Validation(t *testing.T) {
	if _, err := NewCalculator(nil, time.Monday, 0, 0); err == nil {
		t.Fatalf("expected error for nil location")
	}
	if _, err := NewCalculator(time.UTC, time.Monday, 24, 0); err == nil {
		t.Fatalf("expected error for hour 24")
	}
}

func TestParseWeekdayAndClock(t *testing.T) {
	for _, raw := range []string{"monday", "Mon", " MONDAY "} {
		d, err := ParseWeekday(raw)
		if err != nil || d != time.Monday {
			t.Fatalf("parse %q: got=%v err=%v", raw, d, err)
		}
	}
	if _, err := ParseWeekday("someday"); err == nil {
		t.Fatalf("expected error for invalid weekday")
	}

	h, m, err := ParseClock("07:45")
	if err != nil || h != 7 || m != 45 {
		t.Fatalf("parse clock: h=%d m=%d err=%v", h, m, err)
	}
	for _, raw := range []string{"7", "25:00", "10:60", "aa:bb"} {
		if _, _, err := ParseClock(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
