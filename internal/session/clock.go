package session

import (
	"sync"
	"time"
)

// Clock delivers periodic ticks. Every subscribes fn and returns a stop
// function; stop must be safe to call more than once and must not block
// waiting for an in-flight fn.
type Clock interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// TickerClock runs each subscription on its own time.Ticker goroutine.
type TickerClock struct{}

func (TickerClock) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
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
		once.Do(func() { close(done) })
	}
}

// ManualClock ticks only when Advance is called. Hosts that already own a
// periodic signal, and tests, drive the session with it.
type ManualClock struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func NewManualClock() *ManualClock {
	return &ManualClock{subs: make(map[int]func())}
}

func (c *ManualClock) Every(_ time.Duration, fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Advance fires n ticks on every active subscription.
func (c *ManualClock) Advance(n int) {
	for i := 0; i < n; i++ {
		c.mu.Lock()
		fns := make([]func(), 0, len(c.subs))
		for _, fn := range c.subs {
			fns = append(fns, fn)
		}
		c.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
}

// Subscribers reports how many subscriptions are active.
func (c *ManualClock) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
