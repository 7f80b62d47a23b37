package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/analytics"
	"github.com/riskibarqy/tactical-board/internal/platform/logging"
)

const (
	DataSourceMemory   = "memory"
	DataSourcePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	ShutdownTimeout         time.Duration
	CORSAllowedOrigins      []string
	LogLevel                logging.Level
	LogFormat               string
	DataSource              string
	DBURL                   string
	DBDisablePreparedBinary bool
	DBMaxOpenConns          int
	CacheTTL                time.Duration
	PlaybackInterval        time.Duration
	DefaultZoneCount        int
	DefaultSurfaceWidth     float64
	PitchFillColor          string
	PitchLineColor          string
	AnalyticsWorkers        int
	SessionIdleTimeout      time.Duration
	BreakerEnabled          bool
	BreakerFailureCount     int
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxReq   int
	MetricsEnabled          bool
	SwaggerEnabled          bool
	PprofEnabled            bool
	PprofAddr               string
	UptraceEnabled          bool
	UptraceDSN              string
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeAuthToken      string
	PyroscopeUploadRate     time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}
	logFormatDefault := "json"
	if appEnv == EnvDev {
		logFormatDefault = "console"
	}
	logFormat := strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", logFormatDefault)))
	if logFormat != "json" && logFormat != "console" {
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are json, console", logFormat)
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	dataSource := strings.ToLower(strings.TrimSpace(getEnv("DATA_SOURCE", DataSourceMemory)))
	if dataSource != DataSourceMemory && dataSource != DataSourcePostgres {
		return Config{}, fmt.Errorf("invalid DATA_SOURCE %q: valid values are %s, %s", dataSource, DataSourceMemory, DataSourcePostgres)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dataSource == DataSourcePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DATA_SOURCE=postgres")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if dbMaxOpenConns < 1 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1")
	}

	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "5m")
	if err != nil {
		return Config{}, err
	}
	playbackInterval, err := getEnvAsDuration("PLAYBACK_INTERVAL", "1s")
	if err != nil {
		return Config{}, err
	}

	zoneCount, err := getEnvAsInt("DEFAULT_ZONE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_ZONE_COUNT: %w", err)
	}
	if err := analytics.ValidateZoneCount(zoneCount); err != nil {
		return Config{}, fmt.Errorf("DEFAULT_ZONE_COUNT: %w", err)
	}

	surfaceWidth, err := strconv.ParseFloat(strings.TrimSpace(getEnv("DEFAULT_SURFACE_WIDTH", "467")), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_SURFACE_WIDTH: %w", err)
	}
	if surfaceWidth <= 0 {
		return Config{}, fmt.Errorf("DEFAULT_SURFACE_WIDTH must be > 0")
	}

	analyticsWorkers, err := getEnvAsInt("ANALYTICS_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANALYTICS_WORKERS: %w", err)
	}
	if analyticsWorkers < 1 {
		return Config{}, fmt.Errorf("ANALYTICS_WORKERS must be >= 1")
	}

	sessionIdleTimeout, err := getEnvAsDuration("SESSION_IDLE_TIMEOUT", "30m")
	if err != nil {
		return Config{}, err
	}

	breakerEnabled, err := strconv.ParseBool(getEnv("DATA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATA_CIRCUIT_ENABLED: %w", err)
	}
	breakerFailureCount, err := getEnvAsInt("DATA_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse DATA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if breakerFailureCount < 1 {
		return Config{}, fmt.Errorf("DATA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	breakerOpenTimeout, err := getEnvAsDuration("DATA_CIRCUIT_OPEN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	breakerHalfOpenMaxReq, err := getEnvAsInt("DATA_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse DATA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if breakerHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("DATA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "tactical-board-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		ShutdownTimeout:         shutdownTimeout,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                logLevel,
		LogFormat:               logFormat,
		DataSource:              dataSource,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		DBMaxOpenConns:          dbMaxOpenConns,
		CacheTTL:                cacheTTL,
		PlaybackInterval:        playbackInterval,
		DefaultZoneCount:        zoneCount,
		DefaultSurfaceWidth:     surfaceWidth,
		PitchFillColor:          strings.TrimSpace(getEnv("PITCH_FILL_COLOR", "#2e7d32")),
		PitchLineColor:          strings.TrimSpace(getEnv("PITCH_LINE_COLOR", "#ffffff")),
		AnalyticsWorkers:        analyticsWorkers,
		SessionIdleTimeout:      sessionIdleTimeout,
		BreakerEnabled:          breakerEnabled,
		BreakerFailureCount:     breakerFailureCount,
		BreakerOpenTimeout:      breakerOpenTimeout,
		BreakerHalfOpenMaxReq:   breakerHalfOpenMaxReq,
		MetricsEnabled:          metricsEnabled,
		SwaggerEnabled:          swaggerEnabled,
		PprofEnabled:            pprofEnabled,
		PprofAddr:               pprofAddr,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		PyroscopeEnabled:        pyroscopeEnabled,
		PyroscopeServerAddress:  pyroscopeServerAddress,
		PyroscopeAuthToken:      strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:     pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

// getEnvAsDuration parses a positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
