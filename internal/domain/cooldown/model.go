package cooldown

import (
	"fmt"
	"strings"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
)

// Bucket is an independently limited action family.
type Bucket string

const (
	BucketTeam  Bucket = "team"
	BucketLead  Bucket = "lead"
	BucketSide1 Bucket = "side1"
	BucketSide2 Bucket = "side2"
)

func BucketForSlot(slot roster.Slot) Bucket {
	switch slot {
	case roster.SlotLead:
		return BucketLead
	case roster.SlotSide1:
		return BucketSide1
	case roster.SlotSide2:
		return BucketSide2
	default:
		return Bucket(slot)
	}
}

func ParseBucket(raw string) (Bucket, error) {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(raw))); b {
	case BucketTeam, BucketLead, BucketSide1, BucketSide2:
		return b, nil
	default:
		return "", fmt.Errorf("unknown cooldown bucket %q", raw)
	}
}

// Entry is the last allowed invocation for (user, bucket).
type Entry struct {
	UserID     string
	Bucket     Bucket
	LastUsedAt time.Time
}

// Remaining is the wait left at now for the given period. Never negative.
func (e Entry) Remaining(now time.Time, period time.Duration) time.Duration {
	if period <= 0 || e.LastUsedAt.IsZero() {
		return 0
	}
	left := e.LastUsedAt.Add(period).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
