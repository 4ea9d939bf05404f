package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
	}
	if cfg.CooldownTeam != 4*time.Hour {
		t.Fatalf("unexpected team cooldown: %s", cfg.CooldownTeam)
	}
	if cfg.CooldownLead != 0 || cfg.CooldownSide1 != 0 || cfg.CooldownSide2 != 0 {
		t.Fatalf("expected slot cooldowns disabled by default")
	}
	if cfg.ScoreMinDigits != 9 || cfg.LeaderboardLimit != 10 {
		t.Fatalf("unexpected score defaults: digits=%d limit=%d", cfg.ScoreMinDigits, cfg.LeaderboardLimit)
	}
	if cfg.ScheduleLocation != time.UTC || cfg.ScheduleAnchorDay != time.Monday {
		t.Fatalf("unexpected schedule defaults: %v %v", cfg.ScheduleLocation, cfg.ScheduleAnchorDay)
	}
	if cfg.ScheduleAnchorHour != 0 || cfg.ScheduleAnchorMinute != 0 {
		t.Fatalf("unexpected anchor time: %02d:%02d", cfg.ScheduleAnchorHour, cfg.ScheduleAnchorMinute)
	}
	if cfg.RollSeedSet {
		t.Fatalf("expected no roll seed by default")
	}
	if cfg.AnnounceGrace != time.Hour || cfg.AnnounceSchedule != "@every 1m" {
		t.Fatalf("unexpected announce defaults: %s %q", cfg.AnnounceGrace, cfg.AnnounceSchedule)
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})

	t.Run("sqlite is case insensitive", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " SQLite ")
		t.Setenv("SQLITE_PATH", "/tmp/gq.db")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageSQLite || cfg.SQLitePath != "/tmp/gq.db" {
			t.Fatalf("unexpected storage config: %q %q", cfg.StorageDriver, cfg.SQLitePath)
		}
	})
}

func TestLoad_ScheduleParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCHEDULE_TIMEZONE", "Asia/Jakarta")
	t.Setenv("SCHEDULE_ANCHOR_WEEKDAY", "Wed")
	t.Setenv("SCHEDULE_ANCHOR_TIME", "18:30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScheduleLocation.String() != "Asia/Jakarta" {
		t.Fatalf("unexpected location: %s", cfg.ScheduleLocation)
	}
	if cfg.ScheduleAnchorDay != time.Wednesday || cfg.ScheduleAnchorHour != 18 || cfg.ScheduleAnchorMinute != 30 {
		t.Fatalf("unexpected anchor: %v %02d:%02d", cfg.ScheduleAnchorDay, cfg.ScheduleAnchorHour, cfg.ScheduleAnchorMinute)
	}
}

func TestLoad_ScheduleValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cases := map[string][2]string{
		"bad timezone": {"SCHEDULE_TIMEZONE", "Mars/Olympus"},
		"bad weekday":  {"SCHEDULE_ANCHOR_WEEKDAY", "someday"},
		"bad time":     {"SCHEDULE_ANCHOR_TIME", "25:00"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestLoad_CooldownParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("zero disables", func(t *testing.T) {
		t.Setenv("COOLDOWN_TEAM", "0s")
		t.Setenv("COOLDOWN_LEAD", "30m")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CooldownTeam != 0 || cfg.CooldownLead != 30*time.Minute {
			t.Fatalf("unexpected cooldowns: team=%s lead=%s", cfg.CooldownTeam, cfg.CooldownLead)
		}
	})

	t.Run("negative rejected", func(t *testing.T) {
		t.Setenv("COOLDOWN_SIDE1", "-1m")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative cooldown")
		}
	})
}

func TestLoad_RollSeed(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Setenv("ROLL_SEED", "42")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.RollSeedSet || cfg.RollSeed != 42 {
		t.Fatalf("unexpected roll seed: set=%v seed=%d", cfg.RollSeedSet, cfg.RollSeed)
	}

	t.Setenv("ROLL_SEED", "abc")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid ROLL_SEED")
	}
}

func TestLoad_TelegramRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when TELEGRAM_ENABLED=true without TELEGRAM_TOKEN")
	}
}

func TestLoad_TelegramParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ANNOUNCE_CHAT_IDS", "-1001, 42")
	t.Setenv("ADMIN_USER_IDS", " 7 , 8 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.TelegramAnnounceChatIDs) != 2 || cfg.TelegramAnnounceChatIDs[0] != -1001 || cfg.TelegramAnnounceChatIDs[1] != 42 {
		t.Fatalf("unexpected chat ids: %+v", cfg.TelegramAnnounceChatIDs)
	}
	if len(cfg.AdminUserIDs) != 2 || cfg.AdminUserIDs[0] != "7" || cfg.AdminUserIDs[1] != "8" {
		t.Fatalf("unexpected admin ids: %+v", cfg.AdminUserIDs)
	}

	t.Setenv("TELEGRAM_ANNOUNCE_CHAT_IDS", "general")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric chat id")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "gq-roulette-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "gq-roulette-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CacheTTLMustBePositive(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for CACHE_TTL=0s")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected split: %+v", got)
	}
}
