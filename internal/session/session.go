// Package session wraps the engine in its single writer. The game state is
// not lock-protected; instead every mutating call is serialized through one
// goroutine, which also drives the 1 Hz turn-timer tick. UI code and timer
// expiry can therefore never interleave mid-mutation.
package session

import (
	"errors"
	"sync"
	"time"

	"gridtactics.dev/internal/game"
)

var ErrStopped = errors.New("session stopped")

type Session struct {
	state *game.State
	turns *game.TurnManager

	cmds chan func()
	stop chan struct{}
	done chan struct{}

	stopOnce sync.Once
}

func New(state *game.State, turns *game.TurnManager) *Session {
	return &Session{
		state: state,
		turns: turns,
		cmds:  make(chan func()),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start launches the owner goroutine.
func (s *Session) Start() {
	go s.run()
}

func (s *Session) run() {
	defer close(s.done)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case fn := <-s.cmds:
			fn()
		case <-ticker.C:
			s.turns.TickTimer()
		case <-s.stop:
			return
		}
	}
}

// Do runs fn on the owner goroutine and waits for it to finish. fn receives
// the state and turn manager and may call any of their methods; event
// handlers fire inline before Do returns.
func (s *Session) Do(fn func(st *game.State, tm *game.TurnManager)) error {
	ran := make(chan struct{})
	wrapped := func() {
		defer close(ran)
		fn(s.state, s.turns)
	}
	select {
	case s.cmds <- wrapped:
	case <-s.stop:
		return ErrStopped
	}
	select {
	case <-ran:
		return nil
	case <-s.done:
		return ErrStopped
	}
}

// Stop shuts the loop down and destroys the turn manager. Idempotent; safe
// to call from any goroutine.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done
		s.turns.Destroy()
	})
}
