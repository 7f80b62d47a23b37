// Package timeline replays a formation history across match time.
package timeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
)

const DefaultInterval = time.Second

// State is the observable playback state.
type State struct {
	CurrentMinute int   `json:"current_minute"`
	IsPlaying     bool  `json:"is_playing"`
	ActiveMinute  int   `json:"active_minute"`
	HasSnapshot   bool  `json:"has_snapshot"`
	Markers       []int `json:"markers"`
}

// Timeline owns the formation history of a match and the playback clock.
// It is safe for concurrent use: the clock ticks on its own goroutine.
type Timeline struct {
	mu        sync.Mutex
	history   *formation.History
	minute    int
	playing   bool
	closed    bool
	interval  time.Duration
	clock     Clock
	stopClock func()
	// gen identifies the live clock registration; ticks carrying an older
	// value were already in flight when playback was stopped.
	gen       uint64
	nextID    int
	listeners map[int]func(State)
}

func New(history *formation.History, clock Clock, interval time.Duration) (*Timeline, error) {
	if history == nil {
		return nil, fmt.Errorf("formation history is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("playback interval must be > 0, got %s", interval)
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Timeline{
		history:   history,
		interval:  interval,
		clock:     clock,
		listeners: make(map[int]func(State)),
	}, nil
}

func (t *Timeline) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

// ActiveSnapshot is the latest snapshot at or before the current minute.
func (t *Timeline) ActiveSnapshot() (formation.Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.At(t.minute)
}

// SnapshotAt resolves the snapshot for an arbitrary minute without moving
// the playhead.
func (t *Timeline) SnapshotAt(minute int) (formation.Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.At(minute)
}

// JumpTo clamps minute to the match range and pauses playback.
func (t *Timeline) JumpTo(minute int) State {
	t.mu.Lock()
	t.pauseLocked()
	t.minute = formation.ClampMinute(minute)
	state := t.stateLocked()
	t.mu.Unlock()

	t.notify(state)
	return state
}

// TogglePlay starts or stops the playback clock. Starting from the final
// minute rewinds to kick-off.
func (t *Timeline) TogglePlay() State {
	t.mu.Lock()
	if t.closed {
		state := t.stateLocked()
		t.mu.Unlock()
		return state
	}

	if t.playing {
		t.pauseLocked()
	} else {
		if t.minute >= formation.FinalMinute {
			t.minute = formation.FirstMinute
		}
		t.playing = true
		t.gen++
		gen := t.gen
		t.stopClock = t.clock.Every(t.interval, func() { t.tick(gen) })
	}
	state := t.stateLocked()
	t.mu.Unlock()

	t.notify(state)
	return state
}

// Commit appends a snapshot to the history.
func (t *Timeline) Commit(snapshot formation.Snapshot) (State, error) {
	t.mu.Lock()
	if err := t.history.Append(snapshot); err != nil {
		t.mu.Unlock()
		return State{}, err
	}
	state := t.stateLocked()
	t.mu.Unlock()

	t.notify(state)
	return state, nil
}

// Subscribe registers fn for every state change and returns its release func.
// Listeners run after the timeline lock is released.
func (t *Timeline) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// Close stops playback and releases the clock. The timeline keeps answering
// reads but can no longer be started.
func (t *Timeline) Close() {
	t.mu.Lock()
	t.pauseLocked()
	t.closed = true
	t.listeners = make(map[int]func(State))
	t.mu.Unlock()
}

func (t *Timeline) tick(gen uint64) {
	t.mu.Lock()
	if !t.playing || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.minute++
	if t.minute >= formation.FinalMinute {
		t.minute = formation.FinalMinute
		t.pauseLocked()
	}
	state := t.stateLocked()
	t.mu.Unlock()

	t.notify(state)
}

func (t *Timeline) pauseLocked() {
	t.playing = false
	t.gen++
	if t.stopClock != nil {
		t.stopClock()
		t.stopClock = nil
	}
}

func (t *Timeline) stateLocked() State {
	state := State{
		CurrentMinute: t.minute,
		IsPlaying:     t.playing,
		Markers:       t.history.Minutes(),
	}
	if snapshot, ok := t.history.At(t.minute); ok {
		state.ActiveMinute = snapshot.Minute
		state.HasSnapshot = true
	}
	return state
}

func (t *Timeline) notify(state State) {
	t.mu.Lock()
	fns := make([]func(State), 0, len(t.listeners))
	for id := 0; id < t.nextID; id++ {
		if fn, ok := t.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
