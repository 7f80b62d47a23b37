package pitch

import (
	"sort"
	"sync"
)

// Listener receives the new dimensions after every resize.
type Listener func(Dimensions)

// Surface holds the single shared "current pixel dimensions" value for one
// visualization. Resize pushes the new value to every subscriber before it
// returns, so no consumer can observe a mix of old and new dimensions.
type Surface struct {
	mu        sync.Mutex
	dims      Dimensions
	nextID    int
	listeners map[int]Listener
}

func NewSurface(width float64) *Surface {
	return &Surface{
		dims:      DimensionsForWidth(width),
		listeners: make(map[int]Listener),
	}
}

func (s *Surface) Dimensions() Dimensions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dims
}

func (s *Surface) Mapper() Mapper {
	return NewMapper(s.Dimensions())
}

// Subscribe registers fn and returns its release func. Releasing twice is safe.
func (s *Surface) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Resize recomputes the dimensions from a container width and notifies
// subscribers in registration order.
func (s *Surface) Resize(width float64) Dimensions {
	dims := DimensionsForWidth(width)

	s.mu.Lock()
	s.dims = dims
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(dims)
	}
	return dims
}

func (s *Surface) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
