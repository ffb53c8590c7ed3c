// ABOUTME: In-memory state container with persist-on-every-change semantics
// ABOUTME: Serializes writers and rolls back when the store write fails
package store

import (
	"sync"

	"github.com/harperreed/leasebook/models"
)

// Saver persists a full state document.
type Saver interface {
	Save(state models.AppState) error
}

// Session owns the live AppState. Every mutation goes through Update, which
// persists before publishing the new state, so a later Load never observes
// a state the process has not committed (and vice versa).
type Session struct {
	mu    sync.RWMutex
	state models.AppState
	saver Saver
}

func NewSession(initial models.AppState, saver Saver) *Session {
	initial.Normalize()
	return &Session{state: initial, saver: saver}
}

// Open loads the stored state through the gateway and wraps it.
func Open(g *Gateway) *Session {
	return NewSession(g.Load(), g)
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update applies fn to a copy of the state and saves it. The in-memory
// state only changes if fn and the save both succeed.
func (s *Session) Update(fn func(*models.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.Version = models.CurrentVersion
	next.Normalize()

	if err := s.saver.Save(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// Replace swaps in a whole new state, persisting it first.
func (s *Session) Replace(state models.AppState) error {
	return s.Update(func(st *models.AppState) error {
		*st = state.Clone()
		return nil
	})
}
