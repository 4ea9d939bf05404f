package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrUnknownPhase       = errors.New("unknown phase")
	ErrPoolExhausted      = errors.New("not enough unique options")
	ErrCooldownActive     = errors.New("cooldown active")
	ErrInvalidScoreFormat = errors.New("invalid score format")
	ErrNoActiveWindow     = errors.New("no active phase window")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// CooldownError carries the wait left on a rejected roll. It matches
// ErrCooldownActive with errors.Is.
type CooldownError struct {
	Bucket    cooldown.Bucket
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: bucket=%s remaining=%s", ErrCooldownActive, e.Bucket, e.Remaining.Round(time.Second))
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
