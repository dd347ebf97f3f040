// Package session implements the client-side session engine for the
// task-management service: token and key lifecycle, parameter marshalling,
// entity caches, and domain hydration. One Session is one logical
// connection; it is synchronous and not safe for concurrent use — callers
// wanting parallelism should use one Session per worker.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wsargent/toodledo/internal/domain"
	"github.com/wsargent/toodledo/internal/ports"
)

// tokenTTLFloor is the conservative token lifetime assumed before the first
// successful connect reports the real expiry.
const tokenTTLFloor = 4 * time.Hour

// Config is the explicit configuration for a Session. How these values are
// obtained (file, environment, prompt) is the caller's concern.
type Config struct {
	UserID   string
	Password string
	// AppID is the optional application id sent with token requests.
	AppID string
}

// Session owns the derived key, its timestamps, and the entity caches.
type Session struct {
	userID   string
	password string
	appID    string

	caller ports.Caller
	tokens ports.TokenStore
	clock  ports.Clock
	logger *slog.Logger

	key           string
	keyAcquiredAt time.Time
	expiresAt     time.Time
	tokenTTL      time.Duration
	connectedOnce bool

	folders  collection[*domain.Folder]
	contexts collection[*domain.Context]
	goals    collection[*domain.Goal]
}

// New builds a Session. caller and tokens are required; a nil clock means
// the system clock and a nil logger means slog.Default().
func New(cfg Config, caller ports.Caller, tokens ports.TokenStore, clock ports.Clock, logger *slog.Logger) (*Session, error) {
	if strings.TrimSpace(cfg.UserID) == "" {
		return nil, fmt.Errorf("%w: empty user id", domain.ErrConfiguration)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: empty password", domain.ErrConfiguration)
	}
	if caller == nil {
		return nil, fmt.Errorf("%w: no transport configured", domain.ErrConfiguration)
	}
	if tokens == nil {
		return nil, fmt.Errorf("%w: no token store configured", domain.ErrConfiguration)
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		userID:   cfg.UserID,
		password: cfg.Password,
		appID:    cfg.AppID,
		caller:   caller,
		tokens:   tokens,
		clock:    clock,
		logger:   logger.With("session", uuid.NewString()),
		tokenTTL: tokenTTLFloor,
	}, nil
}

// Connect acquires a token (cached or fresh), derives the session key and
// records the server-reported expiry window.
func (s *Session) Connect(ctx context.Context) error {
	s.logger.Debug("connect", "user", s.userID)

	token, err := s.token(ctx)
	if err != nil {
		return err
	}

	key, err := DeriveKey(s.password, token, s.userID)
	if err != nil {
		return err
	}

	s.key = key
	s.keyAcquiredAt = s.clock.Now()
	s.expiresAt = time.Time{}

	info, err := s.GetServerInfo(ctx)
	if err != nil {
		s.key = ""
		s.keyAcquiredAt = time.Time{}
		return err
	}

	// Expiry is reported in minutes with a fractional part; drop it.
	ttl := time.Duration(int(info.TokenExpiresMinutes)) * time.Minute
	if ttl > 0 {
		s.tokenTTL = ttl
		s.expiresAt = s.keyAcquiredAt.Add(ttl)
	}
	s.connectedOnce = true

	s.logger.Debug("connected", "expires_at", s.expiresAt)
	return nil
}

// Disconnect clears the key and its timestamps. The next authenticated call
// starts a fresh connect cycle.
func (s *Session) Disconnect() {
	s.logger.Debug("disconnect")
	s.key = ""
	s.keyAcquiredAt = time.Time{}
	s.expiresAt = time.Time{}
}

// Expired reports whether the session key has passed its expiry at the
// given instant. A never-connected or disconnected session is not expired;
// it simply has no key.
func (s *Session) Expired(now time.Time) bool {
	return !s.expiresAt.IsZero() && now.After(s.expiresAt)
}

// Key exposes the current session key; empty when disconnected.
func (s *Session) Key() string {
	return s.key
}

// GetToken returns the current session token, reusing the cached one when
// it is still young. Connect uses the same path; this is exposed for
// callers that sign requests themselves.
func (s *Session) GetToken(ctx context.Context) (string, error) {
	return s.token(ctx)
}

// token returns a cached token younger than its TTL, or discards the stale
// entry and fetches a fresh one, persisting it with a new timestamp. A
// missing store entry is a plain cache miss; store I/O failures propagate.
func (s *Session) token(ctx context.Context) (string, error) {
	cached, acquiredAt, err := s.tokens.Get(ctx, s.userID)
	switch {
	case err == nil:
		if s.clock.Now().Sub(acquiredAt) < s.tokenTTL {
			s.logger.Debug("token cache hit", "acquired_at", acquiredAt)
			return cached, nil
		}
		s.logger.Debug("token cache stale", "acquired_at", acquiredAt, "ttl", s.tokenTTL)
		if err := s.tokens.Delete(ctx, s.userID); err != nil {
			return "", err
		}
	case errors.Is(err, domain.ErrTokenNotFound):
		// cache miss, fall through to a fresh fetch
	default:
		return "", fmt.Errorf("read token store: %w", err)
	}

	token, err := s.fetchToken(ctx)
	if err != nil {
		return "", err
	}
	if err := s.tokens.Put(ctx, s.userID, token); err != nil {
		return "", fmt.Errorf("write token store: %w", err)
	}
	return token, nil
}

func (s *Session) fetchToken(ctx context.Context) (string, error) {
	params := map[string]string{"userid": s.userID}
	if s.appID != "" {
		params["appid"] = s.appID
	}

	body, err := s.call(ctx, "getToken", params, false)
	if err != nil {
		return "", err
	}

	token, err := rootText(body)
	if err != nil {
		return "", fmt.Errorf("%w: parse getToken response: %v", domain.ErrServer, err)
	}
	if token == "" {
		return "", fmt.Errorf("%w: getToken returned an empty token", domain.ErrServer)
	}
	return token, nil
}
