package app

import (
	"sync"
	"time"

	"quizzify-service/internal/domain"
)

// Runner drives a session's countdown from a real ticker, one Tick per
// interval. It is the only place a wall-clock timer touches the state
// machine; the session itself stays scheduler-agnostic. The ticker is
// released on every exit path: timeout, completion elsewhere, or Stop.
type Runner struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartRunner begins ticking the session once per interval. When a tick
// forces the timeout transition, onFinish receives the finalized result.
// If the session finishes through another path the runner notices on its
// next tick and exits without calling onFinish.
func StartRunner(session *Session, interval time.Duration, onFinish func(domain.AttemptResult)) *Runner {
	r := &Runner{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if session.Tick() {
					if onFinish != nil {
						onFinish(session.Finalize())
					}
					return
				}
				if session.Finished() {
					return
				}
			case <-r.stop:
				return
			}
		}
	}()
	return r
}

// Stop cancels the timer. Safe to call from any goroutine and any number of
// times, including after the runner has already exited.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Done is closed when the timer goroutine has fully exited.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}
