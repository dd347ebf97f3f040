package domain

import "errors"

var (
	// ErrConfiguration is raised locally, before any network call, when a
	// required constructor input (user id, password, base URL) is missing.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrItemNotFound covers both the server's "Invalid ID number" response
	// and a local name-to-id resolution miss.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidKey means the server rejected the session key. The session
	// disconnects locally before this surfaces so the next call starts clean.
	ErrInvalidKey = errors.New("key did not validate")

	// ErrNoKeySpecified means a call that required a key was made without one.
	ErrNoKeySpecified = errors.New("no key specified")

	// ErrExcessiveTokenRequests is the server's token rate limit. Callers are
	// expected to back off; no automatic backoff happens in this layer.
	ErrExcessiveTokenRequests = errors.New("excessive token requests")

	// ErrServer is the catch-all for any other error payload.
	ErrServer = errors.New("server error")

	// ErrTokenNotFound is returned by a TokenStore on a cache miss.
	ErrTokenNotFound = errors.New("token not found")
)
