package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsargent/toodledo/internal/domain"
)

// fakeService answers the wire protocol: the method name travels as the
// first semicolon-separated field of the query string.
type fakeService struct {
	mu        sync.Mutex
	responses map[string]string
	queries   map[string][]string
}

func newFakeService() *fakeService {
	return &fakeService{
		responses: map[string]string{
			"getToken":      `<token>tok</token>`,
			"getServerInfo": `<server><unixtime>1200000000</unixtime><tokenexpires>240.0</tokenexpires></server>`,
		},
		queries: make(map[string][]string),
	}
}

func (f *fakeService) respond(method, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method] = body
}

func (f *fakeService) lastQuery(method string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	recorded := f.queries[method]
	if len(recorded) == 0 {
		return ""
	}
	return recorded[len(recorded)-1]
}

func (f *fakeService) calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries[method])
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.RawQuery
	method := ""
	for _, field := range strings.Split(raw, ";") {
		if value, ok := strings.CutPrefix(field, "method="); ok {
			method = value
			break
		}
	}

	f.mu.Lock()
	f.queries[method] = append(f.queries[method], raw)
	body, ok := f.responses[method]
	f.mu.Unlock()

	if !ok {
		body = fmt.Sprintf("<error>no handler for %s</error>", method)
	}
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write([]byte(body))
}

func startFakeService(t *testing.T) (*fakeService, string) {
	t.Helper()
	service := newFakeService()
	server := httptest.NewServer(service)
	t.Cleanup(server.Close)
	return service, server.URL + "/api.php"
}

func writeConfigFixture(t *testing.T, home, baseURL string) {
	t.Helper()
	body := fmt.Sprintf("[connection]\nurl = %q\nuser_id = \"u1\"\npassword = \"p1\"\n", baseURL)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(body), 0o600))
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("TOODLEDO_HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestTasksWithoutCredentials(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "tasks")
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSetupWritesConfig(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home,
		"setup", "--user-id", "u1", "--password", "p1", "--app-id", "toodledo-cli")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration saved")

	data, err := os.ReadFile(filepath.Join(home, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "user_id")
	assert.Contains(t, string(data), "u1")
	assert.Contains(t, string(data), "toodledo-cli")
}

func TestSetupRejectsMissingCredentials(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "setup", "--user-id", "u1")
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestFoldersListAgainstService(t *testing.T) {
	service, baseURL := startFakeService(t)
	service.respond("getFolders", `<folders><folder id="7" private="0" archived="0">Errands</folder><folder id="8" private="1" archived="1">Old</folder></folders>`)

	home := t.TempDir()
	writeConfigFixture(t, home, baseURL)

	stdout, _, err := executeCLI(t, home, "folders")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<7>")
	assert.Contains(t, stdout, "*[Errands]")
	assert.Contains(t, stdout, "archived")

	// The handshake ran before the authenticated call.
	assert.Equal(t, 1, service.calls("getToken"))
	assert.Equal(t, 1, service.calls("getServerInfo"))
	assert.Contains(t, service.lastQuery("getFolders"), "key=")
}

func TestAddTaskParsesInlineTokens(t *testing.T) {
	service, baseURL := startFakeService(t)
	service.respond("getFolders", `<folders><folder id="7" private="0" archived="0">Errands</folder></folders>`)
	service.respond("getContexts", `<contexts><context id="3">Home</context></contexts>`)
	service.respond("addTask", `<added>99001</added>`)

	home := t.TempDir()
	writeConfigFixture(t, home, baseURL)

	stdout, _, err := executeCLI(t, home, "add", "*Errands", "@Home", "!high", "buy", "milk")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created task <99001>")

	query := service.lastQuery("addTask")
	assert.Contains(t, query, "title=buy%20milk")
	assert.Contains(t, query, "folder=7")
	assert.Contains(t, query, "context=3")
	assert.Contains(t, query, "priority=2")
}

func TestAddTaskUnknownFolderFailsFast(t *testing.T) {
	service, baseURL := startFakeService(t)
	service.respond("getFolders", `<folders></folders>`)

	home := t.TempDir()
	writeConfigFixture(t, home, baseURL)

	_, _, err := executeCLI(t, home, "add", "*Errands", "buy", "milk")
	require.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Contains(t, err.Error(), "Errands")
	assert.Zero(t, service.calls("addTask"))
}

func TestCompleteCommand(t *testing.T) {
	service, baseURL := startFakeService(t)
	service.respond("editTask", `<success>1</success>`)

	home := t.TempDir()
	writeConfigFixture(t, home, baseURL)

	stdout, _, err := executeCLI(t, home, "complete", "1234")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Completed task <1234>")

	query := service.lastQuery("editTask")
	assert.Contains(t, query, "id=1234")
	assert.Contains(t, query, "completed=1")
}

func TestHotlistFiltersByAccountThreshold(t *testing.T) {
	service, baseURL := startFakeService(t)
	service.respond("getAccountInfo", `<account><userid>u1</userid><alias>sargent</alias><pro>0</pro><hotlistpriority>3</hotlistpriority><hotlistduedate>2</hotlistduedate></account>`)
	service.respond("getTasks", `<tasks>`+
		`<task><id>1</id><title>Urgent</title><priority>3</priority></task>`+
		`<task><id>2</id><title>Later</title><priority>1</priority></task>`+
		`</tasks>`)

	home := t.TempDir()
	writeConfigFixture(t, home, baseURL)

	stdout, _, err := executeCLI(t, home, "hotlist")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Urgent")
	assert.NotContains(t, stdout, "Later")
	assert.Contains(t, service.lastQuery("getTasks"), "notcomp=1")
}

func TestTokenIsReusedAcrossInvocations(t *testing.T) {
	service, baseURL := startFakeService(t)
	service.respond("getContexts", `<contexts><context id="3">Home</context></contexts>`)

	home := t.TempDir()
	writeConfigFixture(t, home, baseURL)

	_, _, err := executeCLI(t, home, "contexts")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "contexts")
	require.NoError(t, err)

	assert.Equal(t, 1, service.calls("getToken"), "the second run reads the token from disk")
}
