package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/wsargent/toodledo/internal/domain"
)

// call is the pre-call guard in front of the transport. For operations that
// need a key it requires a prior Connect, and when the key is missing or
// expired it performs exactly one reconnect cycle before building the
// request. Disconnecting first — clearing the key before checking anything
// again — is what keeps this from ever looping.
func (s *Session) call(ctx context.Context, method string, params map[string]string, needsKey bool) ([]byte, error) {
	if needsKey {
		if !s.connectedOnce {
			return nil, fmt.Errorf("%w: %s requires a connected session", domain.ErrConfiguration, method)
		}
		if s.key == "" || s.Expired(s.clock.Now()) {
			s.logger.Debug("session key missing or expired, reconnecting", "method", method)
			s.Disconnect()
			if err := s.Connect(ctx); err != nil {
				return nil, err
			}
		}
	}

	// The key is attached whenever one exists. During a connect cycle it is
	// empty by construction: Disconnect cleared it before getToken runs.
	body, err := s.caller.Call(ctx, method, params, s.key)
	if err != nil {
		// Key-level failures clear local state so the next call starts clean.
		if errors.Is(err, domain.ErrInvalidKey) ||
			errors.Is(err, domain.ErrNoKeySpecified) ||
			errors.Is(err, domain.ErrExcessiveTokenRequests) {
			s.Disconnect()
		}
		return nil, err
	}
	return body, nil
}
