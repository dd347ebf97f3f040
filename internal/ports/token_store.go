package ports

import (
	"context"
	"time"
)

// TokenStore persists one short-lived authentication token per user id.
// A refreshed token supersedes the old one; they are never merged.
// Get returns domain.ErrTokenNotFound on a cache miss.
type TokenStore interface {
	Get(ctx context.Context, userID string) (token string, acquiredAt time.Time, err error)
	Put(ctx context.Context, userID string, token string) error
	Delete(ctx context.Context, userID string) error
}

// Clock abstracts time.Now so expiry logic is testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
