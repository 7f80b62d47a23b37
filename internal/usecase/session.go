package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/analytics"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/marker"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"github.com/riskibarqy/tactical-board/internal/domain/selection"
	"github.com/riskibarqy/tactical-board/internal/domain/timeline"
	"github.com/riskibarqy/tactical-board/internal/platform/cache"
	"github.com/riskibarqy/tactical-board/internal/platform/logging"
	"github.com/riskibarqy/tactical-board/internal/platform/metrics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Board is everything a client needs to draw the dynamic layer.
type Board struct {
	SessionID     string
	MatchID       string
	Dimensions    pitch.Dimensions
	Timeline      timeline.State
	Selection     selection.Selection
	SelectionMode selection.State
	PitchMarkers  []marker.Marker
	HomeBench     []marker.Marker
	AwayBench     []marker.Marker
	Dirty         bool
}

// SelectResult reports the outcome of one selection gesture.
type SelectResult struct {
	Selection selection.Selection
	State     selection.State
	Swapped   bool
	SwapError error
}

// CommitResult is returned after the working lineup was appended to the
// history.
type CommitResult struct {
	Snapshot  formation.Snapshot
	Timeline  timeline.State
	Published bool
}

type sessionDeps struct {
	sink     formation.Sink
	palette  *analytics.Palette
	binners  map[int]*analytics.DistributionBinner
	vectors  *analytics.VectorBuilder
	workers  int
	colors   pitch.Colors
	logger   *logging.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	cacheTTL time.Duration
}

// Session is one live visualization of a match: a render surface, the
// formation timeline, the working lineup under edit and the memoized
// analytics views. All lineup mutation is serialized by mu.
type Session struct {
	id        string
	matchID   string
	zoneCount int
	deps      sessionDeps

	surface  *pitch.Surface
	timeline *timeline.Timeline
	dataset  matchevent.Dataset
	memo     *cache.Store[any]

	mu            sync.Mutex
	controller    *selection.Controller
	working       formation.Snapshot
	workingMinute int
	hasWorking    bool
	dirty         bool
	closed        bool
	// lastTransition is written by onTransition while mu is held.
	lastTransition selection.Transition

	lastSeen  atomic.Int64
	releasers []func()
	closeOnce sync.Once
}

func newSession(id, matchID string, zoneCount int, width float64, tl *timeline.Timeline, dataset matchevent.Dataset, deps sessionDeps) *Session {
	s := &Session{
		id:        id,
		matchID:   matchID,
		zoneCount: zoneCount,
		deps:      deps,
		surface:   pitch.NewSurface(width),
		timeline:  tl,
		dataset:   dataset,
		memo:      cache.NewStore[any](deps.cacheTTL),
	}
	s.controller = selection.NewController(s.applySwap)
	s.touch()

	s.releasers = append(s.releasers,
		s.surface.Subscribe(s.onResize),
		s.controller.Subscribe(s.onTransition),
		tl.Subscribe(s.onTimeline),
	)
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) MatchID() string {
	return s.matchID
}

func (s *Session) ZoneCount() int {
	return s.zoneCount
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch() {
	s.lastSeen.Store(s.deps.now().UnixNano())
}

// Resize pushes a new container width to every consumer of the surface
// before returning. It never touches the playback clock.
func (s *Session) Resize(ctx context.Context, width float64) (pitch.Dimensions, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Session.Resize")
	defer span.End()

	if err := s.ensureOpen(); err != nil {
		return pitch.Dimensions{}, err
	}
	s.touch()
	dims := s.surface.Resize(width)
	s.deps.logger.DebugContext(ctx, "surface resized", "session_id", s.id, "width", dims.Width, "height", dims.Height)
	return dims, nil
}

func (s *Session) Dimensions() pitch.Dimensions {
	return s.surface.Dimensions()
}

// Pitch returns the static drawing commands together with the dimensions
// they were built for.
func (s *Session) Pitch(ctx context.Context) (pitch.Dimensions, []pitch.Command, error) {
	if err := s.ensureOpen(); err != nil {
		return pitch.Dimensions{}, nil, err
	}
	s.touch()

	dims := s.surface.Dimensions()
	cmds, err := s.pitchFor(ctx, dims)
	if err != nil {
		return pitch.Dimensions{}, nil, err
	}
	return dims, cmds, nil
}

// pitchFor returns a private copy of the memoized markings for dims.
func (s *Session) pitchFor(ctx context.Context, dims pitch.Dimensions) ([]pitch.Command, error) {
	key := fmt.Sprintf("pitch:%.2fx%.2f", dims.Width, dims.Height)
	value, err := s.memo.GetOrLoad(ctx, key, func(context.Context) (any, error) {
		return pitch.Render(dims, s.deps.colors), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]pitch.Command(nil), value.([]pitch.Command)...), nil
}

// Board builds the markers and control state from the working lineup.
func (s *Session) Board(ctx context.Context) (Board, error) {
	_, span := startUsecaseSpan(ctx, "usecase.Session.Board")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Board{}, ErrSessionClosed
	}
	s.touch()
	return s.boardLocked(s.surface.Mapper()), nil
}

// boardLocked lays the markers out with mapper so callers drawing a frame
// can share one set of dimensions across every layer.
func (s *Session) boardLocked(mapper pitch.Mapper) Board {
	snapshot, _ := s.workingLocked()
	sel := s.controller.Selection()

	return Board{
		SessionID:     s.id,
		MatchID:       s.matchID,
		Dimensions:    mapper.Dimensions(),
		Timeline:      s.timeline.State(),
		Selection:     sel,
		SelectionMode: sel.State(),
		PitchMarkers:  marker.PitchMarkers(snapshot, mapper, sel),
		HomeBench:     marker.BenchMarkers(snapshot, formation.SideHome, sel),
		AwayBench:     marker.BenchMarkers(snapshot, formation.SideAway, sel),
		Dirty:         s.dirty,
	}
}

// Select feeds one pressed player into the selection state machine. The
// player is resolved against the working lineup so callers only pass ids.
func (s *Session) Select(ctx context.Context, playerID string) (SelectResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Session.Select")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return SelectResult{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return SelectResult{}, ErrSessionClosed
	}
	s.touch()

	snapshot, ok := s.workingLocked()
	if !ok {
		return SelectResult{}, fmt.Errorf("%w: no formation loaded", ErrNotFound)
	}
	idx, found := snapshot.Find(playerID)
	if !found {
		return SelectResult{}, fmt.Errorf("%w: player %s is not in the lineup", ErrNotFound, playerID)
	}

	return s.selectLocked(ctx, snapshot.Slots[idx].Ref()), nil
}

// SelectAt hit-tests a pixel point against the pitch markers. A miss leaves
// the selection unchanged and reports hit=false.
func (s *Session) SelectAt(ctx context.Context, px r2.Vec) (SelectResult, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Session.SelectAt")
	defer span.End()

	if !pitch.ValidPoint(&px) {
		return SelectResult{}, false, fmt.Errorf("%w: point must be finite", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return SelectResult{}, false, ErrSessionClosed
	}
	s.touch()

	snapshot, _ := s.workingLocked()
	sel := s.controller.Selection()
	hit, ok := marker.HitTest(marker.PitchMarkers(snapshot, s.surface.Mapper(), sel), px)
	if !ok {
		return SelectResult{Selection: sel, State: sel.State()}, false, nil
	}
	return s.selectLocked(ctx, hit.Ref()), true, nil
}

func (s *Session) selectLocked(ctx context.Context, ref formation.Ref) SelectResult {
	s.lastTransition = selection.Transition{}
	sel := s.controller.Select(ref)
	last := s.lastTransition

	result := SelectResult{Selection: sel, State: sel.State(), Swapped: last.Swapped, SwapError: last.Err}
	if last.Err != nil {
		s.deps.logger.WarnContext(ctx, "swap rejected", "session_id", s.id, "player_id", ref.PlayerID, "error", last.Err)
	}
	return result
}

// CancelSelection returns the controller to idle.
func (s *Session) CancelSelection(ctx context.Context) (selection.Selection, error) {
	_, span := startUsecaseSpan(ctx, "usecase.Session.CancelSelection")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return selection.Selection{}, ErrSessionClosed
	}
	s.touch()
	return s.controller.Cancel(), nil
}

// applySwap is the controller's swap callback; it runs with mu held.
func (s *Session) applySwap(a, b formation.Ref) error {
	if !s.hasWorking {
		return fmt.Errorf("%w: no formation loaded", ErrNotFound)
	}
	swapped, err := s.working.Swap(a, b)
	if err != nil {
		return err
	}
	s.working = swapped
	s.dirty = true
	return nil
}

// workingLocked returns the lineup under edit. When the timeline moved to a
// different snapshot the edit buffer restarts from that snapshot and any
// pending selection is dropped.
func (s *Session) workingLocked() (formation.Snapshot, bool) {
	active, ok := s.timeline.ActiveSnapshot()
	if !ok {
		return formation.Snapshot{}, false
	}
	if !s.hasWorking || active.Minute != s.workingMinute {
		s.working = active
		s.workingMinute = active.Minute
		s.hasWorking = true
		s.dirty = false
		s.controller.Cancel()
	}
	return s.working, true
}

// JumpTo seeks the timeline. Out-of-range minutes are clamped.
func (s *Session) JumpTo(ctx context.Context, minute int) (timeline.State, error) {
	_, span := startUsecaseSpan(ctx, "usecase.Session.JumpTo")
	defer span.End()

	if err := s.ensureOpen(); err != nil {
		return timeline.State{}, err
	}
	s.touch()
	return s.timeline.JumpTo(minute), nil
}

func (s *Session) TogglePlay(ctx context.Context) (timeline.State, error) {
	_, span := startUsecaseSpan(ctx, "usecase.Session.TogglePlay")
	defer span.End()

	if err := s.ensureOpen(); err != nil {
		return timeline.State{}, err
	}
	s.touch()
	return s.timeline.TogglePlay(), nil
}

func (s *Session) Timeline() timeline.State {
	return s.timeline.State()
}

// SnapshotAt resolves the snapshot in effect at minute.
func (s *Session) SnapshotAt(minute int) (formation.Snapshot, bool) {
	s.touch()
	return s.timeline.SnapshotAt(minute)
}

// Commit appends the working lineup to the history at the current minute
// and publishes it to the sink. A sink failure is logged and reported as
// Published=false; the history keeps the snapshot either way.
func (s *Session) Commit(ctx context.Context) (CommitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Session.Commit")
	defer span.End()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return CommitResult{}, ErrSessionClosed
	}
	s.touch()

	working, ok := s.workingLocked()
	if !ok {
		s.mu.Unlock()
		return CommitResult{}, fmt.Errorf("%w: no formation loaded", ErrNotFound)
	}

	snapshot := working.Clone()
	snapshot.Minute = s.timeline.State().CurrentMinute
	snapshot.CreatedAt = s.deps.now().UTC()

	state, err := s.timeline.Commit(snapshot)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, formation.ErrDuplicateMinute) {
			return CommitResult{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return CommitResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.controller.Cancel()
	s.working = snapshot
	s.workingMinute = snapshot.Minute
	s.dirty = false
	s.mu.Unlock()

	s.deps.metrics.SnapshotCommitted()
	s.deps.logger.InfoContext(ctx, "formation snapshot committed",
		"session_id", s.id,
		"match_id", s.matchID,
		"minute", snapshot.Minute,
	)

	result := CommitResult{Snapshot: snapshot, Timeline: state}
	if s.deps.sink == nil {
		return result, nil
	}
	if err := s.deps.sink.Publish(ctx, s.matchID, snapshot.Clone()); err != nil {
		s.deps.metrics.SinkFailed()
		s.deps.logger.WarnContext(ctx, "publish formation snapshot failed",
			"session_id", s.id,
			"match_id", s.matchID,
			"minute", snapshot.Minute,
			"error", err,
		)
		return result, nil
	}
	result.Published = true
	return result, nil
}

// Close stops playback and releases every subscription. It is idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.controller.Cancel()
		s.mu.Unlock()

		s.timeline.Close()
		for _, release := range s.releasers {
			release()
		}
		s.releasers = nil
		s.memo.Purge()
	})
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) ensureOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}

// onResize drops vector views memoized for other surface sizes.
func (s *Session) onResize(pitch.Dimensions) {
	s.memo.DeletePrefix(context.Background(), vectorsKeyPrefix)
	s.memo.DeletePrefix(context.Background(), "pitch:")
}

func (s *Session) onTransition(t selection.Transition) {
	s.lastTransition = t
	switch {
	case t.Err != nil:
		s.deps.metrics.SelectionTransition("swap_failed")
	case t.Swapped:
		s.deps.metrics.SelectionTransition("swapped")
	case t.To == selection.StateSelected:
		s.deps.metrics.SelectionTransition("selected")
	case t.To == selection.StateIdle:
		s.deps.metrics.SelectionTransition("cleared")
	}
}

// onTimeline runs outside the session lock and must not take it.
func (s *Session) onTimeline(state timeline.State) {
	if state.CurrentMinute == formation.FinalMinute && !state.IsPlaying {
		s.deps.logger.Debug("playback reached final minute", "session_id", s.id)
	}
}
