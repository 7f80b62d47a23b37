package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/analytics"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/lineup"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"github.com/riskibarqy/tactical-board/internal/domain/timeline"
	"github.com/riskibarqy/tactical-board/internal/platform/id"
	"github.com/riskibarqy/tactical-board/internal/platform/logging"
	"github.com/riskibarqy/tactical-board/internal/platform/metrics"
	"github.com/riskibarqy/tactical-board/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

type SessionConfig struct {
	DefaultZoneCount int
	DefaultWidth     float64
	PlaybackInterval time.Duration
	IdleTimeout      time.Duration
	CacheTTL         time.Duration
	AnalyticsWorkers int
	Colors           pitch.Colors
	Breaker          resilience.CircuitBreakerConfig
}

type OpenSessionInput struct {
	MatchID   string
	Width     float64
	ZoneCount int
}

// SessionService owns the live visualization sessions. Opening a session
// loads the lineup and the event dataset; abandoned sessions are closed by
// RunJanitor.
type SessionService struct {
	lineups  lineup.Repository
	events   matchevent.Repository
	sink     formation.Sink
	ids      id.Generator
	clock    timeline.Clock
	palette  *analytics.Palette
	binners  map[int]*analytics.DistributionBinner
	cfg      SessionConfig
	logger   *logging.Logger
	metrics  *metrics.Metrics
	lineupCB *resilience.CircuitBreaker
	eventCB  *resilience.CircuitBreaker
	now      func() time.Time
	idsMu    sync.Mutex
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService(
	lineups lineup.Repository,
	events matchevent.Repository,
	sink formation.Sink,
	ids id.Generator,
	palette *analytics.Palette,
	cfg SessionConfig,
	logger *logging.Logger,
	m *metrics.Metrics,
) (*SessionService, error) {
	if lineups == nil || events == nil {
		return nil, fmt.Errorf("lineup and event repositories are required")
	}
	if err := analytics.ValidateZoneCount(cfg.DefaultZoneCount); err != nil {
		return nil, err
	}
	if cfg.PlaybackInterval <= 0 {
		cfg.PlaybackInterval = timeline.DefaultInterval
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if palette == nil {
		palette = analytics.DefaultPalette()
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("session")

	binners := make(map[int]*analytics.DistributionBinner, 2)
	for _, n := range []int{2, 3} {
		b, err := analytics.NewDistributionBinner(n)
		if err != nil {
			return nil, err
		}
		binners[n] = b
	}

	onBreaker := func(name string, from, to resilience.CircuitState) {
		m.BreakerOpen(name, to != resilience.CircuitStateClosed)
		logger.Warn("data source breaker changed state", "source", name, "from", from, "to", to)
	}

	return &SessionService{
		lineups:  lineups,
		events:   events,
		sink:     sink,
		ids:      ids,
		clock:    timeline.SystemClock(),
		palette:  palette,
		binners:  binners,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		lineupCB: resilience.NewCircuitBreaker("lineups", cfg.Breaker, onBreaker),
		eventCB:  resilience.NewCircuitBreaker("match_events", cfg.Breaker, onBreaker),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}, nil
}

// SetClock replaces the playback clock used by sessions opened afterwards.
func (s *SessionService) SetClock(clock timeline.Clock) {
	if clock != nil {
		s.clock = clock
	}
}

// Open loads the lineup and the event dataset of a match in parallel and
// starts a session on them.
func (s *SessionService) Open(ctx context.Context, in OpenSessionInput) (*Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Open")
	defer span.End()

	matchID := strings.TrimSpace(in.MatchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	zoneCount := in.ZoneCount
	if zoneCount == 0 {
		zoneCount = s.cfg.DefaultZoneCount
	}
	if err := analytics.ValidateZoneCount(zoneCount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	width := in.Width
	if width <= 0 {
		width = s.cfg.DefaultWidth
	}

	var (
		kickoff lineup.MatchLineup
		found   bool
		dataset matchevent.Dataset
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		return s.lineupCB.Do(ctx, func(ctx context.Context) error {
			var err error
			kickoff, found, err = s.lineups.GetByMatch(ctx, matchID)
			if err != nil {
				return fmt.Errorf("get lineup by match: %w", err)
			}
			return nil
		})
	})
	p.Go(func(ctx context.Context) error {
		return s.eventCB.Do(ctx, func(ctx context.Context) error {
			var err error
			dataset, err = s.events.GetDataset(ctx, matchID)
			if err != nil {
				return fmt.Errorf("get match events: %w", err)
			}
			return nil
		})
	})
	if err := p.Wait(); err != nil {
		s.logger.WarnContext(ctx, "load match data failed", "match_id", matchID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: lineup for match %s", ErrNotFound, matchID)
	}
	if dataset == nil {
		dataset = matchevent.Dataset{}
	}

	history := formation.NewHistory(s.now().UTC())
	first, err := kickoff.ToSnapshot(formation.FirstMinute, history.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := history.Append(first); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tl, err := timeline.New(history, s.clock, s.cfg.PlaybackInterval)
	if err != nil {
		return nil, err
	}

	s.idsMu.Lock()
	sessionID, err := s.ids.NewID()
	s.idsMu.Unlock()
	if err != nil {
		tl.Close()
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	session := newSession(sessionID, matchID, zoneCount, width, tl, dataset, sessionDeps{
		sink:     s.sink,
		palette:  s.palette,
		binners:  s.binners,
		vectors:  analytics.NewVectorBuilder(s.palette),
		workers:  s.cfg.AnalyticsWorkers,
		colors:   s.cfg.Colors,
		logger:   s.logger,
		metrics:  s.metrics,
		now:      s.now,
		cacheTTL: s.cfg.CacheTTL,
	})

	s.mu.Lock()
	s.sessions[sessionID] = session
	s.mu.Unlock()
	s.metrics.SessionOpened()

	s.logger.InfoContext(ctx, "session opened",
		"session_id", sessionID,
		"match_id", matchID,
		"zone_count", zoneCount,
		"events", dataset.Len(),
	)
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (*Session, error) {
	_, span := startUsecaseSpan(ctx, "usecase.SessionService.Get")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session_id is required", ErrInvalidInput)
	}

	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	return session, nil
}

// Close ends a session and releases its timer and subscriptions.
func (s *SessionService) Close(ctx context.Context, sessionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Close")
	defer span.End()

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	s.remove(session, false)
	s.logger.InfoContext(ctx, "session closed", "session_id", session.ID())
	return nil
}

func (s *SessionService) remove(session *Session, expired bool) {
	s.mu.Lock()
	current, ok := s.sessions[session.ID()]
	if ok && current == session {
		delete(s.sessions, session.ID())
	}
	s.mu.Unlock()

	if ok && current == session {
		session.Close()
		s.metrics.SessionClosed(expired)
	}
}

// List returns the open sessions ordered by id.
func (s *SessionService) List() []*Session {
	s.mu.RLock()
	out := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ExpireIdle closes sessions untouched for longer than the idle timeout and
// returns how many were closed.
func (s *SessionService) ExpireIdle(ctx context.Context) int {
	if s.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.cfg.IdleTimeout)

	expired := 0
	for _, session := range s.List() {
		if session.LastSeen().After(cutoff) {
			continue
		}
		s.remove(session, true)
		expired++
		s.logger.InfoContext(ctx, "idle session expired", "session_id", session.ID(), "match_id", session.MatchID())
	}
	return expired
}

// RunJanitor expires idle sessions until ctx is done.
func (s *SessionService) RunJanitor(ctx context.Context) error {
	if s.cfg.IdleTimeout <= 0 {
		<-ctx.Done()
		return nil
	}

	interval := s.cfg.IdleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			s.ExpireIdle(ctx)
		}
	}
}

// Shutdown closes every open session.
func (s *SessionService) Shutdown() {
	for _, session := range s.List() {
		s.remove(session, false)
	}
}
