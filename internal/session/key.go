package session

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/wsargent/toodledo/internal/domain"
)

// DeriveKey combines the password digest, the session token and the user id
// into the session key the service expects:
// md5(md5(password) + token + userID), hex encoded.
func DeriveKey(password, token, userID string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: empty password", domain.ErrConfiguration)
	}
	if token == "" {
		return "", fmt.Errorf("%w: empty token", domain.ErrConfiguration)
	}
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", domain.ErrConfiguration)
	}
	return hexMD5(hexMD5(password) + token + userID), nil
}

func hexMD5(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
