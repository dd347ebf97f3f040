package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsargent/toodledo/internal/domain"
)

func TestCallSerializesMethodKeyAndFields(t *testing.T) {
	t.Parallel()

	var gotURI, gotAgent, gotConnection string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		gotAgent = r.Header.Get("User-Agent")
		gotConnection = r.Header.Get("Connection")
		_, _ = w.Write([]byte(`<added>12345</added>`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/api.php", nil, nil)
	require.NoError(t, err)

	params := map[string]string{
		"title": "Buy milk & eggs; now",
		"id":    "42",
	}
	body, err := client.Call(context.Background(), "addTask", params, "sessionkey")
	require.NoError(t, err)

	assert.Equal(t,
		"/api.php?method=addTask;key=sessionkey;id=42;title=Buy%20milk%20%26%20eggs%3B%20now",
		gotURI,
		"fields are sorted, separated by semicolons, with & and ; escaped inside values")
	assert.Equal(t, "toodledo-go/"+Version, gotAgent)
	assert.Equal(t, "keep-alive", gotConnection)
	assert.Equal(t, `<added>12345</added>`, string(body))
}

func TestCallClassifiesErrorPayloads(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		message string
		want    error
	}{
		{name: "invalid id", message: "Invalid ID number", want: domain.ErrItemNotFound},
		{name: "invalid key", message: "key did not validate", want: domain.ErrInvalidKey},
		{name: "no key", message: "No Key Specified", want: domain.ErrNoKeySpecified},
		{
			name:    "rate limited",
			message: "Excessive API token requests over the last 1 hour.  This user is temporarily blocked.",
			want:    domain.ErrExcessiveTokenRequests,
		},
		{name: "anything else", message: "database on fire", want: domain.ErrServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<error>" + tc.message + "</error>"))
			}))
			defer server.Close()

			client, err := NewClient(server.URL, nil, nil)
			require.NoError(t, err)

			_, err = client.Call(context.Background(), "getTasks", nil, "k")
			require.ErrorIs(t, err, tc.want)
			assert.ErrorContains(t, err, tc.message)
		})
	}
}

func TestCallEmptyResponseIsServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil, nil)
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "getTasks", nil, "k")
	require.ErrorIs(t, err, domain.ErrServer)
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient("   ", nil, nil)
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestEscapeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a%26b%3Bc", escapeText("a&b;c"))
	assert.Equal(t, "plain", escapeText("plain"))
}
