package session

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/wsargent/toodledo/internal/domain"
)

// rootText returns the character data of the response's root element, the
// common shape for mutation results (<added>12345</added>, <success>1</success>).
func rootText(body []byte) (string, error) {
	var root struct {
		Text string `xml:",chardata"`
	}
	if err := xml.Unmarshal(bytes.TrimSpace(body), &root); err != nil {
		return "", err
	}
	return strings.TrimSpace(root.Text), nil
}

// rootID parses the root text as a server-assigned id.
func rootID(body []byte) (int64, error) {
	text, err := rootText(body)
	if err != nil {
		return 0, fmt.Errorf("%w: parse response: %v", domain.ErrServer, err)
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: expected an id, got %q", domain.ErrServer, text)
	}
	return id, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// rootOK verifies a boolean mutation result ("1" on success).
func rootOK(body []byte, method string) error {
	text, err := rootText(body)
	if err != nil {
		return fmt.Errorf("%w: parse %s response: %v", domain.ErrServer, method, err)
	}
	if text != "1" {
		return fmt.Errorf("%w: %s returned %q", domain.ErrServer, method, text)
	}
	return nil
}
