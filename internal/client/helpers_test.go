package client_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/fivetwenty-io/bigstock/pkg/bigstock"
	"github.com/stretchr/testify/assert"
)

// recordedCall is one request seen by fakeAPI.
type recordedCall struct {
	Path      string
	RawQuery  string
	Form      url.Values
	HasBasic  bool
	BasicUser string
	BasicPass string
}

// fakeAPI serves a token endpoint and answers every other endpoint with
// apiBody, recording each call.
type fakeAPI struct {
	server *httptest.Server

	mu          sync.Mutex
	calls       []recordedCall
	tokenStatus int
	tokenBody   string
	apiStatus   int
	apiBody     string
	// tokenGate, when set, holds token responses until it is closed.
	tokenGate chan struct{}
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{
		tokenStatus: http.StatusOK,
		tokenBody:   `{"access_token":"T123","token_type":"bearer","expires_in":3600}`,
		apiStatus:   http.StatusOK,
		apiBody:     `{"response_code":200,"data":{"images":[]}}`,
	}

	api.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)

		err := request.ParseForm()
		assert.NoError(t, err)

		user, pass, hasBasic := request.BasicAuth()

		api.mu.Lock()
		api.calls = append(api.calls, recordedCall{
			Path:      request.URL.Path,
			RawQuery:  request.URL.RawQuery,
			Form:      request.PostForm,
			HasBasic:  hasBasic,
			BasicUser: user,
			BasicPass: pass,
		})

		status, body := api.apiStatus, api.apiBody

		var gate chan struct{}

		if strings.HasSuffix(request.URL.Path, "/"+bigstock.TokenEndpoint) {
			status, body, gate = api.tokenStatus, api.tokenBody, api.tokenGate
		}
		api.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-request.Context().Done():
				return
			}
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(api.server.Close)

	return api
}

func (a *fakeAPI) setToken(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.tokenStatus, a.tokenBody = status, body
}

func (a *fakeAPI) setAPI(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.apiStatus, a.apiBody = status, body
}

func (a *fakeAPI) holdTokens() chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.tokenGate = make(chan struct{})

	return a.tokenGate
}

func (a *fakeAPI) Calls() []recordedCall {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]recordedCall(nil), a.calls...)
}

func (a *fakeAPI) baseURL() string {
	return a.server.URL + "/2/oauth2"
}

func (a *fakeAPI) config() *bigstock.Config {
	return &bigstock.Config{BaseURL: a.baseURL()}
}

// recordingLogger keeps every message and its fields.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	Level  string
	Msg    string
	Fields map[string]interface{}
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{Level: level, Msg: msg, Fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.record("debug", msg, fields)
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.record("info", msg, fields)
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.record("warn", msg, fields)
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.record("error", msg, fields)
}

func (l *recordingLogger) find(level, msg string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.entries {
		if entry.Level == level && entry.Msg == msg {
			return entry, true
		}
	}

	return logEntry{}, false
}
