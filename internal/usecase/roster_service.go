package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/user"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/keylock"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
)

// SlotTeam selects a full-team roll where a slot name is expected.
const SlotTeam = "team"

type RosterService struct {
	phases     *PhaseService
	rosters    roster.Repository
	lastRolled roster.LastRolledStore
	cooldowns  *CooldownTracker
	selector   *roster.Selector
	locks      *keylock.Map
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	phases *PhaseService,
	rosters roster.Repository,
	lastRolled roster.LastRolledStore,
	cooldowns *CooldownTracker,
	selector *roster.Selector,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		phases:     phases,
		rosters:    rosters,
		lastRolled: lastRolled,
		cooldowns:  cooldowns,
		selector:   selector,
		locks:      keylock.New(),
		logger:     logger,
		now:        time.Now,
	}
}

// Roll dispatches on "team", "lead", "side1" or "side2".
func (s *RosterService) Roll(ctx context.Context, actor user.Principal, phaseName, slot string) (roster.Roster, error) {
	if strings.EqualFold(strings.TrimSpace(slot), SlotTeam) {
		return s.RollTeam(ctx, actor, phaseName)
	}
	parsed, err := roster.ParseSlot(slot)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.RollSlot(ctx, actor, phaseName, parsed)
}

// RollTeam redraws all three slots as one unit of work.
func (s *RosterService) RollTeam(ctx context.Context, actor user.Principal, phaseName string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RollTeam")
	defer span.End()

	return s.roll(ctx, actor, phaseName, cooldown.BucketTeam,
		func(p phase.Phase) error {
			if len(p.Lead) == 0 {
				return fmt.Errorf("%w: lead pool for %s is empty", ErrPoolExhausted, p.Name)
			}
			if len(p.SidePool()) < 3 {
				return fmt.Errorf("%w: %s has fewer than 3 distinct units", ErrPoolExhausted, p.Name)
			}
			return nil
		},
		func(p phase.Phase, current, last roster.Slots) (roster.Slots, error) {
			return s.selector.RollTeam(p, current, last)
		},
	)
}

// RollSlot redraws one slot and keeps the other two.
func (s *RosterService) RollSlot(ctx context.Context, actor user.Principal, phaseName string, slot roster.Slot) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RollSlot")
	defer span.End()

	return s.roll(ctx, actor, phaseName, cooldown.BucketForSlot(slot),
		func(p phase.Phase) error {
			if slot == roster.SlotLead && len(p.Lead) == 0 {
				return fmt.Errorf("%w: lead pool for %s is empty", ErrPoolExhausted, p.Name)
			}
			if len(p.SidePool()) == 0 {
				return fmt.Errorf("%w: side pool for %s is empty", ErrPoolExhausted, p.Name)
			}
			return nil
		},
		func(p phase.Phase, current, last roster.Slots) (roster.Slots, error) {
			unit, err := s.selector.RollSlot(p, slot, current, last)
			if err != nil {
				return roster.Slots{}, err
			}
			return current.With(slot, unit), nil
		},
	)
}

// Current returns the persisted roster for the phase (or the active phase).
func (s *RosterService) Current(ctx context.Context, actor user.Principal, phaseName string) (roster.Roster, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Current")
	defer span.End()

	if err := actor.Validate(); err != nil {
		return roster.Roster{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p, err := s.resolvePhase(ctx, phaseName)
	if err != nil {
		return roster.Roster{}, false, err
	}

	item, exists, err := s.rosters.Get(ctx, actor.ID, p.Name)
	if err != nil {
		return roster.Roster{}, false, storageError("get roster", err)
	}
	if !exists {
		return roster.Roster{UserID: actor.ID, Username: actor.Username, Phase: p.Name}, false, nil
	}
	return item, true, nil
}

func (s *RosterService) CooldownPeriod(bucket cooldown.Bucket) time.Duration {
	return s.cooldowns.Period(bucket)
}

type drawFunc func(p phase.Phase, current, last roster.Slots) (roster.Slots, error)

func (s *RosterService) roll(
	ctx context.Context,
	actor user.Principal,
	phaseName string,
	bucket cooldown.Bucket,
	checkPools func(phase.Phase) error,
	draw drawFunc,
) (roster.Roster, error) {
	if err := actor.Validate(); err != nil {
		return roster.Roster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	p, err := s.resolvePhase(ctx, phaseName)
	if err != nil {
		return roster.Roster{}, err
	}
	if err := checkPools(p); err != nil {
		return roster.Roster{}, err
	}

	unlock := s.locks.Lock(actor.ID)
	defer unlock()

	remaining, err := s.cooldowns.Remaining(ctx, actor.ID, bucket)
	if err != nil {
		return roster.Roster{}, err
	}
	if remaining > 0 {
		return roster.Roster{}, &CooldownError{Bucket: bucket, Remaining: remaining}
	}

	memory, hasMemory := s.lastRolled.Get(actor.ID)
	hasMemory = hasMemory && phase.Key(memory.Phase) == phase.Key(p.Name)
	drawFrom := func(current roster.Slots) (roster.Slots, error) {
		last := current
		if hasMemory {
			last = memory.Slots
		}
		slots, err := draw(p, current, last)
		if errors.Is(err, roster.ErrExhausted) {
			return roster.Slots{}, fmt.Errorf("%w: %s in %s", ErrPoolExhausted, err, p.Name)
		}
		return slots, err
	}

	existing, _, err := s.rosters.Get(ctx, actor.ID, p.Name)
	if err != nil {
		return roster.Roster{}, storageError("get roster", err)
	}
	slots, err := drawFrom(existing.Slots)
	if err != nil {
		return roster.Roster{}, err
	}

	// Nothing is written until the stamp lands. If the roster write fails
	// after it, the cooldown stays consumed.
	left, err := s.cooldowns.CheckAndStamp(ctx, actor.ID, bucket, s.cooldowns.Period(bucket))
	if err != nil {
		return roster.Roster{}, err
	}
	if left > 0 {
		return roster.Roster{}, &CooldownError{Bucket: bucket, Remaining: left}
	}

	var drawErr error
	stored, err := s.rosters.Mutate(ctx, actor.ID, p.Name, func(current roster.Roster, _ bool) (roster.Roster, error) {
		next := current
		next.Slots = slots
		if current.Slots != existing.Slots {
			// another writer got in between the read and the write
			redrawn, err := drawFrom(current.Slots)
			if err != nil {
				drawErr = err
				return roster.Roster{}, err
			}
			next.Slots = redrawn
		}
		next.UserID = actor.ID
		next.Username = actor.DisplayName()
		next.Phase = p.Name
		next.UpdatedAt = s.now().UTC()
		if err := next.Validate(); err != nil {
			drawErr = fmt.Errorf("%w: %v", ErrInvalidInput, err)
			return roster.Roster{}, drawErr
		}
		return next, nil
	})
	if err != nil {
		if drawErr != nil {
			return roster.Roster{}, drawErr
		}
		return roster.Roster{}, storageError("save roster", err)
	}

	s.lastRolled.Record(actor.ID, roster.LastRolled{Phase: stored.Phase, Slots: stored.Slots})

	s.logger.InfoContext(ctx, "roster rolled",
		"user_id", actor.ID,
		"phase", stored.Phase,
		"bucket", string(bucket),
		"lead", stored.Lead,
		"side1", stored.Side1,
		"side2", stored.Side2,
	)
	return stored, nil
}

func (s *RosterService) resolvePhase(ctx context.Context, phaseName string) (phase.Phase, error) {
	if strings.TrimSpace(phaseName) == "" {
		return s.phases.ActivePhase(ctx)
	}
	return s.phases.LookupPhase(phaseName)
}
