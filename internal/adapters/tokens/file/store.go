// Package file implements the disk-backed token store. One file per user id
// holds the raw token string; the file's modification time is the token's
// acquisition timestamp. Two processes authenticating as the same user can
// race on read/refresh/delete — known limitation, callers wanting more need
// a store with atomic compare-and-swap.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/wsargent/toodledo/internal/domain"
	"github.com/wsargent/toodledo/internal/ports"
)

const (
	tokensDirMode = 0o700
	tokenFileMode = 0o600
)

type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.TokenStore = (*Store)(nil)

// NewStore returns a store rooted at dir. Tokens live under dir/tokens.
func NewStore(dir string) *Store {
	return &Store{root: filepath.Clean(dir)}
}

// DefaultDir is the conventional store location, ~/.toodledo.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".toodledo"), nil
}

func (s *Store) Get(ctx context.Context, userID string) (string, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return "", time.Time{}, err
	}

	path, err := s.pathForUser(userID)
	if err != nil {
		return "", time.Time{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", time.Time{}, domain.ErrTokenNotFound
		}
		return "", time.Time{}, fmt.Errorf("stat token for %q: %w", userID, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("read token for %q: %w", userID, err)
	}

	return strings.TrimSpace(string(data)), info.ModTime(), nil
}

func (s *Store) Put(ctx context.Context, userID string, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForUser(userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), tokensDirMode); err != nil {
		return fmt.Errorf("create tokens directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(token), tokenFileMode); err != nil {
		return fmt.Errorf("write token for %q: %w", userID, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForUser(userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete token for %q: %w", userID, err)
	}

	return nil
}

func (s *Store) pathForUser(userID string) (string, error) {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return "", errors.New("user id is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if cleaned != filepath.Base(cleaned) || cleaned == "." || cleaned == ".." {
		return "", fmt.Errorf("invalid user id %q", userID)
	}

	return filepath.Join(s.root, "tokens", cleaned), nil
}
