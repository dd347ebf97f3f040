package transport

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// parseRoot identifies the response's root element and, for flat payloads
// like the <error> envelope, its character data. An empty or unparsable body
// is reported as an error so the caller can surface a server error instead
// of crashing on a malformed response.
func parseRoot(body []byte) (name string, text string, err error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", "", errors.New("empty response body")
	}

	decoder := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", "", errors.New("no root element in response")
			}
			return "", "", err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		name = start.Name.Local
		if name != "error" {
			return name, "", nil
		}

		var message struct {
			Text string `xml:",chardata"`
		}
		if err := decoder.DecodeElement(&message, &start); err != nil {
			return name, "", err
		}
		return name, strings.TrimSpace(message.Text), nil
	}
}
