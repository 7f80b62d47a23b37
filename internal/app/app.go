package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tactical-board/internal/config"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/lineup"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	repocache "github.com/riskibarqy/tactical-board/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tactical-board/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tactical-board/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tactical-board/internal/interfaces/httpapi"
	"github.com/riskibarqy/tactical-board/internal/platform/id"
	"github.com/riskibarqy/tactical-board/internal/platform/logging"
	"github.com/riskibarqy/tactical-board/internal/platform/metrics"
	"github.com/riskibarqy/tactical-board/internal/platform/resilience"
	"github.com/riskibarqy/tactical-board/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// App holds the HTTP server together with the long-lived pieces main has to
// drive and release.
type App struct {
	Server   *http.Server
	Sessions *usecase.SessionService
	Metrics  *metrics.Metrics
	db       *sqlx.DB
}

type dataSources struct {
	lineups lineup.Repository
	events  matchevent.Repository
	sink    formation.Sink
	db      *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	sources, err := openDataSources(cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions, err := usecase.NewSessionService(
		sources.lineups,
		sources.events,
		sources.sink,
		id.NewUUIDGenerator(),
		nil,
		usecase.SessionConfig{
			DefaultZoneCount: cfg.DefaultZoneCount,
			DefaultWidth:     cfg.DefaultSurfaceWidth,
			PlaybackInterval: cfg.PlaybackInterval,
			IdleTimeout:      cfg.SessionIdleTimeout,
			CacheTTL:         cfg.CacheTTL,
			AnalyticsWorkers: cfg.AnalyticsWorkers,
			Colors:           pitch.Colors{Fill: cfg.PitchFillColor, Line: cfg.PitchLineColor},
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.BreakerEnabled,
				FailureThreshold: cfg.BreakerFailureCount,
				OpenTimeout:      cfg.BreakerOpenTimeout,
				HalfOpenMaxReq:   cfg.BreakerHalfOpenMaxReq,
			},
		},
		logger,
		m,
	)
	if err != nil {
		if sources.db != nil {
			_ = sources.db.Close()
		}
		return nil, fmt.Errorf("build session service: %w", err)
	}

	handler := httpapi.NewHandler(sessions, logger.Named("http"))
	router := httpapi.NewRouter(handler, logger.Named("http"), m, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server:   server,
		Sessions: sessions,
		Metrics:  m,
		db:       sources.db,
	}, nil
}

// RunJanitor expires idle sessions until ctx is cancelled.
func (a *App) RunJanitor(ctx context.Context) error {
	return a.Sessions.RunJanitor(ctx)
}

// Close ends every session and releases the database pool.
func (a *App) Close() error {
	a.Sessions.Shutdown()
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDataSources(cfg config.Config, logger *logging.Logger) (dataSources, error) {
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return dataSources{}, err
		}
		logger.Info("using postgres data source", "db_name", dbNameFromURL(cfg.DBURL))
		return dataSources{
			lineups: repocache.NewLineupRepository(postgres.NewLineupRepository(db), cfg.CacheTTL),
			events:  repocache.NewEventRepository(postgres.NewEventRepository(db), cfg.CacheTTL),
			sink:    postgres.NewSnapshotSink(db),
			db:      db,
		}, nil
	default:
		logger.Info("using in-memory data source", "match_id", memory.MatchIDDerby)
		return dataSources{
			lineups: memory.NewLineupRepository(memory.SeedMatchLineups()...),
			events:  memory.NewEventRepository(memory.SeedMatchEvents()),
			sink:    memory.NewSnapshotSink(),
		}, nil
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ReadTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
