package ports

import "context"

// Caller executes one named remote operation with already-marshalled
// parameters and returns the raw success payload. The key is empty for the
// operations that do not require one (getToken, getServerInfo).
// Implementations classify error payloads into the domain error taxonomy.
type Caller interface {
	Call(ctx context.Context, method string, params map[string]string, key string) ([]byte, error)
}
