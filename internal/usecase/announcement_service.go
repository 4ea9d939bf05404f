package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/schedule"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
)

// Notifier delivers a broadcast message to every configured channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// AnnouncementService posts once per phase window when it opens.
type AnnouncementService struct {
	phases   *PhaseService
	notifier Notifier
	grace    time.Duration
	logger   *logging.Logger

	mu      sync.Mutex
	lastKey string
}

func NewAnnouncementService(phases *PhaseService, notifier Notifier, grace time.Duration, logger *logging.Logger) *AnnouncementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AnnouncementService{
		phases:   phases,
		notifier: notifier,
		grace:    grace,
		logger:   logger,
	}
}

// Tick announces the active phase if its window opened within the grace
// period and has not been announced yet. It returns whether it posted.
func (s *AnnouncementService) Tick(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.Tick")
	defer span.End()

	now := s.phases.Now()
	status, err := s.phases.StatusAt(ctx, now)
	if err != nil {
		return false, err
	}
	if status.Window == schedule.WindowNone || status.ActivePhase == "" {
		return false, nil
	}
	if s.grace > 0 && now.Sub(status.Start) > s.grace {
		return false, nil
	}

	key := status.WeekID + ":" + status.Window.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == s.lastKey {
		return false, nil
	}

	message := AnnouncementText(status)
	if err := s.notifier.Notify(ctx, message); err != nil {
		return false, fmt.Errorf("%w: notify: %v", ErrDependencyUnavailable, err)
	}
	s.lastKey = key

	s.logger.InfoContext(ctx, "phase announced",
		"week_id", status.WeekID,
		"window", status.Window.String(),
		"phase", status.ActivePhase,
	)
	return true, nil
}

func AnnouncementText(status WeekStatus) string {
	label := "Phase 1"
	if status.Window == schedule.WindowPhase2 {
		label = "Phase 2"
	}
	return fmt.Sprintf("%s is live: %s (until %s)", label, status.ActivePhase, status.End.Format("Mon 02 Jan 15:04 MST"))
}
