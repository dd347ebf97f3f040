// Package transport builds and executes signed requests against the
// task-service API. The wire dialect is a GET whose query is a
// semicolon-separated list of key=value fields following the method name,
// answered with an XML payload whose root element is either the
// operation-specific result or an <error> envelope.
package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/wsargent/toodledo/internal/domain"
	"github.com/wsargent/toodledo/internal/ports"
)

// Version is the client version reported in the user agent.
const Version = "2.0.0"

// The protocol offers no timeout of its own, so the client enforces one.
const defaultTimeout = 30 * time.Second

const maxResponseBytes = 1 << 20

// Fixed strings the server uses in error payloads. Classification is by
// substring match against these.
const (
	invalidKeyMessage     = "key did not validate"
	noKeySpecifiedMessage = "No Key Specified"
	invalidIDMessage      = "Invalid ID number"
	excessiveTokenMessage = "Excessive API token requests"
)

// Proxy describes an optional HTTP proxy for the exchange.
type Proxy struct {
	Host     string
	Port     int
	User     string
	Password string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

var _ ports.Caller = (*Client)(nil)

// NewClient builds a caller for the given base URL. A nil proxy means a
// direct connection; an https base URL enables TLS.
func NewClient(baseURL string, proxy *Proxy, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("%w: empty base URL", domain.ErrConfiguration)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%w: parse base URL: %v", domain.ErrConfiguration, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpTransport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != nil {
		proxyURL := &url.URL{
			Scheme: "http",
			Host:   fmt.Sprintf("%s:%d", proxy.Host, proxy.Port),
		}
		if proxy.User != "" {
			proxyURL.User = url.UserPassword(proxy.User, proxy.Password)
		}
		httpTransport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: httpTransport,
			Timeout:   defaultTimeout,
		},
		userAgent: fmt.Sprintf("toodledo-go/%s", Version),
		logger:    logger,
	}, nil
}

// Call executes one named operation and returns the raw success payload.
// Error payloads are classified into the domain taxonomy.
func (c *Client) Call(ctx context.Context, method string, params map[string]string, key string) ([]byte, error) {
	if method == "" {
		return nil, fmt.Errorf("%w: empty method", domain.ErrConfiguration)
	}

	requestURL := c.requestURL(method, params, key)
	c.logger.Debug("call request", "method", method, "url", requestURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", method, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Keep-Alive", "300")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrServer, method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", domain.ErrServer, method, err)
	}
	c.logger.Debug("call response", "method", method, "elapsed", time.Since(started), "bytes", len(body))

	root, text, err := parseRoot(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrServer, method, err)
	}
	if root == "error" {
		return nil, classify(text)
	}

	return body, nil
}

// requestURL serializes the method, key and fields into the wire form
// {base}?method={m};key={k};{field}={value};... Field order is sorted so
// request URLs are stable.
func (c *Client) requestURL(method string, params map[string]string, key string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString("?method=")
	b.WriteString(method)

	if key != "" {
		b.WriteString(";key=")
		b.WriteString(key)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.WriteString(";")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(escapeText(params[name]))
	}

	return b.String()
}

// escapeText encodes the characters that would corrupt the field list: "&"
// and the field separator ";" use the service-mandated %26/%3B escapes, and
// the handful of characters a URL query cannot carry raw are percent-encoded.
func escapeText(value string) string {
	return fieldEscaper.Replace(value)
}

var fieldEscaper = strings.NewReplacer(
	"%", "%25",
	"&", "%26",
	";", "%3B",
	" ", "%20",
	"#", "%23",
	"+", "%2B",
	"=", "%3D",
	"?", "%3F",
)

func classify(message string) error {
	switch {
	case strings.Contains(message, invalidIDMessage):
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, message)
	case strings.Contains(message, invalidKeyMessage):
		return fmt.Errorf("%w: %s", domain.ErrInvalidKey, message)
	case strings.Contains(message, noKeySpecifiedMessage):
		return fmt.Errorf("%w: %s", domain.ErrNoKeySpecified, message)
	case strings.Contains(message, excessiveTokenMessage):
		return fmt.Errorf("%w: %s", domain.ErrExcessiveTokenRequests, message)
	default:
		return fmt.Errorf("%w: %s", domain.ErrServer, message)
	}
}
