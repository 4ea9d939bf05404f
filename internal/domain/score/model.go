package score

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

const DefaultMinDigits = 9

var ErrInvalidFormat = errors.New("invalid score format")

// Entry is a user's score for one week. Total is always Phase1 + Phase2.
type Entry struct {
	UserID    string
	Username  string
	WeekID    string
	Phase1    int64
	Phase2    int64
	Total     int64
	UpdatedAt time.Time
}

// Recompute refreshes Total from the phase scores.
func (e Entry) Recompute() Entry {
	e.Total = e.Phase1 + e.Phase2
	return e
}

// Update holds a full or partial submission. Nil fields keep stored values.
type Update struct {
	Phase1 *int64
	Phase2 *int64
}

func (u Update) IsEmpty() bool {
	return u.Phase1 == nil && u.Phase2 == nil
}

// Apply merges u into e and recomputes the total. A merge whose total does
// not fit in int64 fails with ErrInvalidFormat and leaves e untouched.
func (u Update) Apply(e Entry) (Entry, error) {
	next := e
	if u.Phase1 != nil {
		next.Phase1 = *u.Phase1
	}
	if u.Phase2 != nil {
		next.Phase2 = *u.Phase2
	}
	if next.Phase1 < 0 || next.Phase2 < 0 {
		return e, fmt.Errorf("%w: score must not be negative", ErrInvalidFormat)
	}
	if next.Phase1 > math.MaxInt64-next.Phase2 {
		return e, fmt.Errorf("%w: total score is out of range", ErrInvalidFormat)
	}
	return next.Recompute(), nil
}

// ParseScore accepts only ASCII digits, at least minDigits of them.
func ParseScore(raw string, minDigits int) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("%w: score is required", ErrInvalidFormat)
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: score must contain digits only", ErrInvalidFormat)
		}
	}
	if len(value) < minDigits {
		return 0, fmt.Errorf("%w: score must have at least %d digits", ErrInvalidFormat, minDigits)
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: score is out of range", ErrInvalidFormat)
	}
	return n, nil
}

// SortLeaderboard orders by total desc, then earliest update, then username.
func SortLeaderboard(items []Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		return a.Username < b.Username
	})
}
