package app

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/config"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/infrastructure/repository/sqlstore"
)

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

// dataSource is everything openSQLStore needs to know about one driver.
type dataSource struct {
	driver  string
	dsn     string
	dialect sqlstore.Dialect
	system  string
	name    string
}

func resolveDataSource(cfg config.Config) (dataSource, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		raw := strings.TrimSpace(cfg.DBURL)
		if raw == "" {
			return dataSource{}, fmt.Errorf("DB_URL is required for %s storage", cfg.StorageDriver)
		}
		return dataSource{
			driver:  "postgres",
			dsn:     postgresDSN(raw, cfg.DBDisablePreparedBinary),
			dialect: sqlstore.DialectPostgres,
			system:  "postgresql",
			name:    postgresDBName(raw),
		}, nil
	case config.StorageSQLite:
		path := strings.TrimSpace(cfg.SQLitePath)
		if path == "" {
			return dataSource{}, fmt.Errorf("SQLITE_PATH is required for %s storage", cfg.StorageDriver)
		}
		return dataSource{
			driver:  "sqlite",
			dsn:     sqliteDSN(path),
			dialect: sqlstore.DialectSQLite,
			system:  "sqlite",
			name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		}, nil
	default:
		return dataSource{}, fmt.Errorf("storage driver %q has no sql backend", cfg.StorageDriver)
	}
}

// postgresDSN adds disable_prepared_binary_result=yes when asked, unless the
// URL already sets it. Key/value DSNs get the flag appended as a token.
func postgresDSN(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}
	if !strings.Contains(raw, "://") {
		if strings.Contains(raw, "disable_prepared_binary_result=") {
			return raw
		}
		return raw + " disable_prepared_binary_result=yes"
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func postgresDBName(raw string) string {
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		if name := strings.TrimPrefix(parsed.Path, "/"); name != "" {
			return name
		}
	}
	for _, token := range strings.Fields(raw) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			if name = strings.Trim(name, `"'`); name != "" {
				return name
			}
		}
	}
	return "gq_roulette"
}

// sqliteDSN appends the pragmas unless the path already carries a query.
func sqliteDSN(path string) string {
	if file, query, ok := strings.Cut(path, "?"); ok {
		return filepath.Clean(file) + "?" + query
	}
	return filepath.Clean(path) + "?" + sqlitePragmas
}

// MigrationDatabaseURL is the golang-migrate URL for the configured SQL store.
func MigrationDatabaseURL(cfg config.Config) (string, error) {
	src, err := resolveDataSource(cfg)
	if err != nil {
		return "", err
	}
	if src.dialect == sqlstore.DialectSQLite {
		file, _, _ := strings.Cut(src.dsn, "?")
		return "sqlite://" + filepath.ToSlash(file), nil
	}
	if !strings.Contains(src.dsn, "://") {
		return "", fmt.Errorf("DB_URL must be a postgres:// URL for migrations")
	}
	return src.dsn, nil
}
