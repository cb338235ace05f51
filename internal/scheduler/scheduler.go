package scheduler

import (
	"sync"
	"time"
)

// Scheduler owns every timer in the engine: booster countdown ticks,
// transient-notification clears, delayed session teardown and milestone
// dialogue sequencing. Each timer is bound to a session token; cancelling
// the token invalidates all timers scheduled under it, so a reset session
// never observes callbacks from its predecessor.
type Scheduler struct {
	mu       sync.Mutex
	sessions map[string]chan struct{}
	quit     chan struct{}
	wg       sync.WaitGroup
}

// New creates a scheduler.
func New() *Scheduler {
	return &Scheduler{
		sessions: make(map[string]chan struct{}),
		quit:     make(chan struct{}),
	}
}

// sessionDone returns the cancel channel for token, creating it on first use.
func (s *Scheduler) sessionDone(token string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	done, ok := s.sessions[token]
	if !ok {
		done = make(chan struct{})
		s.sessions[token] = done
	}
	return done
}

// After runs fn once after d, unless the session token is cancelled or
// the scheduler stopped first.
func (s *Scheduler) After(token string, d time.Duration, fn func()) {
	done := s.sessionDone(token)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			fn()
		case <-done:
		case <-s.quit:
		}
	}()
}

// Every runs fn at a fixed interval until the returned stop function is
// called, the session token is cancelled, or the scheduler stops.
func (s *Scheduler) Every(token string, interval time.Duration, fn func()) (stop func()) {
	done := s.sessionDone(token)
	local := make(chan struct{})
	var once sync.Once
	stop = func() { once.Do(func() { close(local) }) }

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fn()
			case <-local:
				return
			case <-done:
				return
			case <-s.quit:
				return
			}
		}
	}()
	return stop
}

// CancelSession invalidates every timer scheduled under token. Scheduling
// under the same token afterwards starts a fresh scope.
func (s *Scheduler) CancelSession(token string) {
	s.mu.Lock()
	done, ok := s.sessions[token]
	if ok {
		delete(s.sessions, token)
	}
	s.mu.Unlock()
	if ok {
		close(done)
	}
}

// Stop cancels all timers and waits for their goroutines to exit.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
