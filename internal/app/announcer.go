package app

import (
	"context"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/usecase"
	"github.com/robfig/cron/v3"
)

const announceTickTimeout = 30 * time.Second

// announcer drives AnnouncementService.Tick from a cron schedule.
type announcer struct {
	service *usecase.AnnouncementService
	cron    *cron.Cron
	logger  *logging.Logger
}

func newAnnouncer(service *usecase.AnnouncementService, spec string, loc *time.Location, logger *logging.Logger) (*announcer, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	a := &announcer{
		service: service,
		cron:    cron.New(cron.WithParser(parser), cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
	}
	if _, err := a.cron.AddFunc(spec, a.tick); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *announcer) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), announceTickTimeout)
	defer cancel()

	if _, err := a.service.Tick(ctx); err != nil {
		a.logger.WarnContext(ctx, "phase announcement failed; will retry next tick", "error", err)
	}
}

// Run starts the schedule and blocks until ctx is done, then waits for a
// running tick to finish.
func (a *announcer) Run(ctx context.Context) error {
	a.cron.Start()
	a.logger.Info("announcement scheduler started", "entries", len(a.cron.Entries()))
	<-ctx.Done()
	<-a.cron.Stop().Done()
	a.logger.Info("announcement scheduler stopped")
	return nil
}
