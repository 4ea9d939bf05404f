package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/config"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/infrastructure/repository/sqlstore"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/resilience"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"
)

const dbPingTimeout = 5 * time.Second

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// openSQLStore opens the configured SQL database with tracing and wraps it
// in a sqlstore.Store guarded by the DB circuit breaker.
func openSQLStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlstore.Store, error) {
	src, err := resolveDataSource(cfg)
	if err != nil {
		return nil, err
	}
	driverName, dialect := src.driver, src.dialect

	db, err := otelsqlx.Open(driverName, src.dsn,
		otelsql.WithDBSystem(src.system),
		otelsql.WithDBName(src.name),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	if dialect == sqlstore.DialectSQLite {
		// one writer; keeps read-modify-write transactions serialized
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Enabled:          cfg.DBCircuitEnabled,
		FailureThreshold: cfg.DBCircuitFailureCount,
		OpenTimeout:      cfg.DBCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.DBCircuitHalfOpenMaxReq,
	})

	store := sqlstore.NewStore(db, dialect, breaker)
	if dialect == sqlstore.DialectSQLite {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	logger.Info("database connected", "driver", driverName, "db_name", src.name, "circuit_enabled", cfg.DBCircuitEnabled)
	return store, nil
}
