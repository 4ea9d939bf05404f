package score

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseScore(t *testing.T) {
	got, err := ParseScore(" 123456789 ", DefaultMinDigits)
	if err != nil || got != 123456789 {
		t.Fatalf("parse valid score: got=%d err=%v", got, err)
	}

	for _, raw := range []string{"", "12345678", "12345678a", "-123456789", "1.23456789", "99999999999999999999"} {
		if _, err := ParseScore(raw, DefaultMinDigits); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("parse %q: expected ErrInvalidFormat, got %v", raw, err)
		}
	}
}

func TestUpdate_ApplyKeepsTotalConsistent(t *testing.T) {
	p1 := int64(100)
	p2 := int64(250)
	p1b := int64(40)

	apply := func(u Update, e Entry) Entry {
		t.Helper()
		next, err := u.Apply(e)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		return next
	}

	e := Entry{UserID: "u1", WeekID: "2026-03-02"}
	e = apply(Update{Phase1: &p1}, e)
	if e.Total != 100 {
		t.Fatalf("after phase1: total=%d", e.Total)
	}
	e = apply(Update{Phase2: &p2}, e)
	if e.Total != 350 {
		t.Fatalf("after phase2: total=%d", e.Total)
	}
	e = apply(Update{Phase1: &p1b}, e)
	if e.Phase2 != 250 || e.Total != e.Phase1+e.Phase2 {
		t.Fatalf("partial update broke total: %+v", e)
	}
	if !(Update{}).IsEmpty() {
		t.Fatalf("empty update should report empty")
	}
}

func TestUpdate_ApplyRejectsTotalOverflow(t *testing.T) {
	huge := int64(math.MaxInt64)
	small := int64(100000000)

	stored := Entry{UserID: "u1", Phase2: small, Total: small}
	got, err := Update{Phase1: &huge}.Apply(stored)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if got != stored {
		t.Fatalf("rejected update changed the entry: %+v", got)
	}

	zero := int64(0)
	got, err = Update{Phase1: &huge, Phase2: &zero}.Apply(stored)
	if err != nil || got.Total != math.MaxInt64 {
		t.Fatalf("max total should fit: total=%d err=%v", got.Total, err)
	}
}

func TestSortLeaderboard(t *testing.T) {
	t0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	items := []Entry{
		{Username: "carol", Total: 10, UpdatedAt: t0},
		{Username: "bob", Total: 30, UpdatedAt: t0.Add(time.Hour)},
		{Username: "alice", Total: 30, UpdatedAt: t0},
		{Username: "dave", Total: 10, UpdatedAt: t0},
	}

	SortLeaderboard(items)

	want := []string{"alice", "bob", "carol", "dave"}
	for i, name := range want {
		if items[i].Username != name {
			t.Fatalf("rank %d: got=%s want=%s", i+1, items[i].Username, name)
		}
	}
}
