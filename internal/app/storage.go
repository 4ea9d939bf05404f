package app

import (
	"context"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/config"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/assignment"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/score"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/infrastructure/repository/cache"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/infrastructure/repository/memory"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/infrastructure/repository/sqlstore"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
)

type repositories struct {
	rosters     roster.Repository
	cooldowns   cooldown.Repository
	assignments assignment.Repository
	scores      score.Repository
	close       func() error
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres, config.StorageSQLite:
		store, err := openSQLStore(ctx, cfg, logger)
		if err != nil {
			return repositories{}, err
		}
		repos = repositories{
			rosters:     sqlstore.NewRosterRepository(store),
			cooldowns:   sqlstore.NewCooldownRepository(store),
			assignments: sqlstore.NewAssignmentRepository(store),
			scores:      sqlstore.NewScoreRepository(store),
			close:       store.DB().Close,
		}
	default:
		logger.Warn("using in-memory storage; state is lost on restart")
		repos = repositories{
			rosters:     memory.NewRosterRepository(),
			cooldowns:   memory.NewCooldownRepository(),
			assignments: memory.NewAssignmentRepository(),
			scores:      memory.NewScoreRepository(),
			close:       func() error { return nil },
		}
	}

	if cfg.CacheEnabled {
		repos.assignments = cache.NewAssignmentRepository(repos.assignments, cfg.CacheTTL)
	}
	return repos, nil
}
