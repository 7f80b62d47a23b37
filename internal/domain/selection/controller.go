// Package selection implements the two-step select-then-swap gesture shared
// by the pitch and bench pools.
package selection

import (
	"sync"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
)

type State string

const (
	StateIdle        State = "idle"
	StateSelected    State = "selected"
	StateSwapPending State = "swap_pending"
)

// Selection is the observable selection value. SwapTarget is only ever set
// while Selected is set.
type Selection struct {
	Selected   *formation.Ref `json:"selected"`
	SwapTarget *formation.Ref `json:"swap_target"`
}

func (s Selection) State() State {
	switch {
	case s.Selected == nil:
		return StateIdle
	case s.SwapTarget == nil:
		return StateSelected
	default:
		return StateSwapPending
	}
}

// Transition is emitted to listeners on every state change.
type Transition struct {
	From      State
	To        State
	Selection Selection
	// Swapped is set on the SwapPending -> Idle step when the swap committed.
	Swapped bool
	// Err carries the swap failure; the lineup is unchanged in that case.
	Err error
}

// SwapFunc performs an atomic swap of two entities.
type SwapFunc func(a, b formation.Ref) error

// Controller is not safe for concurrent use; the owning session serializes
// access.
type Controller struct {
	current   Selection
	swap      SwapFunc
	nextID    int
	listeners map[int]func(Transition)
}

func NewController(swap SwapFunc) *Controller {
	return &Controller{
		swap:      swap,
		listeners: make(map[int]func(Transition)),
	}
}

func (c *Controller) Selection() Selection {
	return cloneSelection(c.current)
}

func (c *Controller) State() State {
	return c.current.State()
}

// Subscribe registers fn for transitions and returns its release func.
func (c *Controller) Subscribe(fn func(Transition)) func() {
	if fn == nil {
		return func() {}
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() { delete(c.listeners, id) })
	}
}

// Select feeds one pointer interaction into the state machine:
//
//	Idle        --select(p)-->            Selected(p)
//	Selected(p) --select(p)-->            Idle
//	Selected(p) --select(q), same team--> SwapPending(p,q) --> Idle
//	Selected(p) --select(q), other team-> Selected(q)
func (c *Controller) Select(ref formation.Ref) Selection {
	if ref.IsZero() {
		return c.Cancel()
	}

	switch c.current.State() {
	case StateIdle:
		c.set(Selection{Selected: &ref}, false, nil)
	case StateSelected:
		selected := *c.current.Selected
		switch {
		case sameEntity(selected, ref):
			c.set(Selection{}, false, nil)
		case selected.Side != ref.Side:
			c.set(Selection{Selected: &ref}, false, nil)
		default:
			c.set(Selection{Selected: &selected, SwapTarget: &ref}, false, nil)
			c.ConfirmSwap()
		}
	case StateSwapPending:
		// A pending pair is resolved synchronously, so this only happens if a
		// listener re-enters; finish the pending swap first.
		c.ConfirmSwap()
		c.set(Selection{Selected: &ref}, false, nil)
	}
	return c.Selection()
}

// ConfirmSwap executes the pending pair and returns to Idle. Without a
// complete pair it does nothing.
func (c *Controller) ConfirmSwap() Selection {
	if c.current.State() != StateSwapPending {
		return c.Selection()
	}

	a, b := *c.current.Selected, *c.current.SwapTarget
	var err error
	if c.swap != nil {
		err = c.swap(a, b)
	}
	c.set(Selection{}, err == nil, err)
	return c.Selection()
}

// Cancel clears any selection, e.g. when empty space is clicked.
func (c *Controller) Cancel() Selection {
	if c.current.State() != StateIdle {
		c.set(Selection{}, false, nil)
	}
	return c.Selection()
}

func (c *Controller) set(next Selection, swapped bool, err error) {
	from := c.current.State()
	c.current = next
	tr := Transition{
		From:      from,
		To:        next.State(),
		Selection: cloneSelection(next),
		Swapped:   swapped,
		Err:       err,
	}
	for _, fn := range c.orderedListeners() {
		fn(tr)
	}
}

func (c *Controller) orderedListeners() []func(Transition) {
	out := make([]func(Transition), 0, len(c.listeners))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func sameEntity(a, b formation.Ref) bool {
	return a.PlayerID == b.PlayerID && a.Side == b.Side
}

func cloneSelection(s Selection) Selection {
	out := Selection{}
	if s.Selected != nil {
		v := *s.Selected
		out.Selected = &v
	}
	if s.SwapTarget != nil {
		v := *s.SwapTarget
		out.SwapTarget = &v
	}
	return out
}

// Is reports whether ref is the currently selected entity.
func (s Selection) Is(ref formation.Ref) bool {
	return s.Selected != nil && sameEntity(*s.Selected, ref)
}

// IsTarget reports whether ref is the current swap target.
func (s Selection) IsTarget(ref formation.Ref) bool {
	return s.SwapTarget != nil && sameEntity(*s.SwapTarget, ref)
}
