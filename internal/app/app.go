// Package app wires configuration, storage, services and transports into
// a runnable process.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/config"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/schedule"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/infrastructure/catalog"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/infrastructure/repository/memory"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/interfaces/httpapi"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/interfaces/telegrambot"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/random"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-running component of the process.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	server    *http.Server
	catalogs  *catalog.Provider
	bot       *telegrambot.Bot
	announcer *announcer
	closeRepo func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	catalogs, err := newCatalogProvider(cfg, logger.Named("catalog"))
	if err != nil {
		return nil, err
	}

	calc, err := schedule.NewCalculator(cfg.ScheduleLocation, cfg.ScheduleAnchorDay, cfg.ScheduleAnchorHour, cfg.ScheduleAnchorMinute)
	if err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}

	repos, err := openRepositories(ctx, cfg, logger.Named("storage"))
	if err != nil {
		return nil, err
	}

	rng := random.New()
	if cfg.RollSeedSet {
		rng = random.NewSeeded(cfg.RollSeed)
	}

	phaseSvc := usecase.NewPhaseService(catalogs, repos.assignments, calc, cfg.AdminUserIDs, logger)
	rosterSvc := usecase.NewRosterService(
		phaseSvc,
		repos.rosters,
		memory.NewLastRolledStore(),
		usecase.NewCooldownTracker(repos.cooldowns, usecase.CooldownPeriods{
			cooldown.BucketTeam:  cfg.CooldownTeam,
			cooldown.BucketLead:  cfg.CooldownLead,
			cooldown.BucketSide1: cfg.CooldownSide1,
			cooldown.BucketSide2: cfg.CooldownSide2,
		}),
		roster.NewSelector(rng),
		logger,
	)
	scoreSvc := usecase.NewScoreService(repos.scores, calc, cfg.ScoreMinDigits, cfg.LeaderboardLimit, logger)

	server, err := NewHTTPServer(cfg, httpapi.NewHandler(phaseSvc, rosterSvc, scoreSvc, logger), logger)
	if err != nil {
		_ = repos.close()
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		server:    server,
		catalogs:  catalogs,
		closeRepo: repos.close,
	}

	var notifier usecase.Notifier = telegrambot.NewLogNotifier(logger)
	if cfg.TelegramEnabled {
		dispatcher := telegrambot.NewDispatcher(phaseSvc, rosterSvc, scoreSvc, cfg.TelegramCommandRate, cfg.TelegramCommandBurst, logger.Named("telegram"))
		bot, err := telegrambot.New(telegrambot.Config{
			Token:       cfg.TelegramToken,
			PollTimeout: cfg.TelegramPollTimeout,
		}, dispatcher, logger.Named("telegram"))
		if err != nil {
			_ = repos.close()
			return nil, err
		}
		a.bot = bot
		if len(cfg.TelegramAnnounceChatIDs) > 0 {
			notifier = telegrambot.NewChatNotifier(bot, cfg.TelegramAnnounceChatIDs, cfg.AnnounceWorkers, logger.Named("notifier"))
		}
	}

	if cfg.AnnounceEnabled {
		svc := usecase.NewAnnouncementService(phaseSvc, notifier, cfg.AnnounceGrace, logger)
		a.announcer, err = newAnnouncer(svc, cfg.AnnounceSchedule, cfg.ScheduleLocation, logger.Named("announcer"))
		if err != nil {
			_ = repos.close()
			return nil, fmt.Errorf("parse ANNOUNCE_SCHEDULE: %w", err)
		}
	}

	return a, nil
}

// NewHTTPServer builds the API server around handler.
func NewHTTPServer(cfg config.Config, handler *httpapi.Handler, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.GatewayToken)
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// Run serves until ctx is cancelled or a component fails, then shuts
// every component down.
func (a *App) Run(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		return a.serveHTTP(ctx)
	})
	if a.cfg.CatalogWatch && a.catalogs.Path() != "" {
		p.Go(a.catalogs.Watch)
	}
	if a.bot != nil {
		p.Go(a.bot.Run)
	}
	if a.announcer != nil {
		p.Go(a.announcer.Run)
	}

	err := p.Wait()
	if closeErr := a.closeRepo(); closeErr != nil {
		a.logger.Error("close storage failed", "error", closeErr)
	}
	return err
}

func (a *App) serveHTTP(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}

func newCatalogProvider(cfg config.Config, logger *logging.Logger) (*catalog.Provider, error) {
	if cfg.CatalogPath == "" {
		if cfg.AppEnv == config.EnvProd {
			return nil, fmt.Errorf("CATALOG_PATH is required when APP_ENV=%s", config.EnvProd)
		}
		logger.Warn("CATALOG_PATH empty; using built-in catalog")
		return catalog.NewFixedProvider(phase.NewCatalog(memory.SeedCatalogRecords()), logger), nil
	}
	return catalog.NewProvider(cfg.CatalogPath, logger)
}
