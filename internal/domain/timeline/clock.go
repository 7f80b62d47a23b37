package timeline

import (
	"sync"
	"time"
)

// Clock drives playback. Every must call fn once per interval until the
// returned stop func is called; stop must be safe to call more than once.
type Clock interface {
	Every(interval time.Duration, fn func()) (stop func())
}

type tickerClock struct{}

func SystemClock() Clock {
	return tickerClock{}
}

func (tickerClock) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
