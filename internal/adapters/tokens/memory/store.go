// Package memory implements an in-memory token store, substitutable for the
// file-backed one in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wsargent/toodledo/internal/domain"
	"github.com/wsargent/toodledo/internal/ports"
)

type entry struct {
	token      string
	acquiredAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   ports.Clock
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(clock ports.Clock) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Store{entries: make(map[string]entry), clock: clock}
}

func (s *Store) Get(ctx context.Context, userID string) (string, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return "", time.Time{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[userID]
	if !ok {
		return "", time.Time{}, domain.ErrTokenNotFound
	}
	return e.token, e.acquiredAt, nil
}

func (s *Store) Put(ctx context.Context, userID string, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = entry{token: token, acquiredAt: s.clock.Now()}
	return nil
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
	return nil
}

// SetAcquiredAt backdates a stored token. Test helper.
func (s *Store) SetAcquiredAt(userID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[userID]; ok {
		e.acquiredAt = at
		s.entries[userID] = e
	}
}
