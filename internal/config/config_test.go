package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/tactical-board/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("DEFAULT_ZONE_COUNT", "")
	t.Setenv("APP_LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataSource != DataSourceMemory {
		t.Fatalf("unexpected DataSource: %q", cfg.DataSource)
	}
	if cfg.DefaultZoneCount != 3 {
		t.Fatalf("unexpected DefaultZoneCount: %d", cfg.DefaultZoneCount)
	}
	if cfg.DefaultSurfaceWidth != 467 {
		t.Fatalf("unexpected DefaultSurfaceWidth: %v", cfg.DefaultSurfaceWidth)
	}
	if cfg.PlaybackInterval != time.Second {
		t.Fatalf("unexpected PlaybackInterval: %s", cfg.PlaybackInterval)
	}
	if cfg.LogFormat != "console" {
		t.Fatalf("expected console logs in dev, got %q", cfg.LogFormat)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled in dev by default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("APP_LOG_FORMAT", "")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("expected json logs in prod, got %q", cfg.LogFormat)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled in prod by default")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DATA_SOURCE", DataSourcePostgres)
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when DATA_SOURCE=postgres without DB_URL")
	}

	t.Setenv("DB_URL", "postgres://localhost:5432/tactical_board?sslmode=disable")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataSource != DataSourcePostgres {
		t.Fatalf("unexpected DataSource: %q", cfg.DataSource)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"DEFAULT_ZONE_COUNT":    "4",
		"DEFAULT_SURFACE_WIDTH": "-10",
		"PLAYBACK_INTERVAL":     "0s",
		"ANALYTICS_WORKERS":     "0",
		"DATA_SOURCE":           "mongo",
		"APP_LOG_LEVEL":         "loud",
		"APP_LOG_FORMAT":        "xml",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}

	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}
