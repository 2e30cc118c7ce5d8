package server

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MixOptimizer_Go/internal/catalog"
	"github.com/osse101/MixOptimizer_Go/internal/config"
	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/profile"
	"github.com/osse101/MixOptimizer_Go/internal/search"
	"github.com/osse101/MixOptimizer_Go/internal/sse"
)

func testRouter(t *testing.T, apiKey string) http.Handler {
	t.Helper()
	c, err := catalog.Load(context.Background(), "../../configs/catalog.json")
	require.NoError(t, err)
	profiles, err := profile.LoadDir(context.Background(), "../../configs/profiles")
	require.NoError(t, err)

	svc := search.NewService(c, search.NewEngine(c, search.WithWorkers(2)), search.ServiceConfig{})
	cfg := &config.Config{Port: 8080, APIKey: apiKey}
	return NewRouter(cfg, svc, profiles, nil)
}

func serve(h http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	router := testRouter(t, "")

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK, `"status":"ok"`},
		{"readyz", http.MethodGet, "/readyz", "", http.StatusOK, `"status":"ok"`},
		{"version", http.MethodGet, "/version", "", http.StatusOK, `"go_version"`},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK, "go_goroutines"},
		{"catalog", http.MethodGet, "/api/v1/catalog", "", http.StatusOK, `"name":"OG Kush"`},
		{"profiles", http.MethodGet, "/api/v1/profiles", "", http.StatusOK, `"name":"cheap-sneaky"`},
		{"mix", http.MethodPost, "/api/v1/mix", `{"base_item":"OG Kush","modifiers":["Banana"]}`, http.StatusOK, `"profit":53`},
		{"search", http.MethodPost, "/api/v1/search",
			`{"base_items":["OG Kush"],"modifiers":["Paracetamol","Viagor"],"max_modifiers":2}`,
			http.StatusOK, `"modifiers":["Paracetamol","Viagor"]`},
		{"profile search", http.MethodPost, "/api/v1/profiles/cheap-sneaky/search", "", http.StatusOK, `"modifiers":["Banana"]`},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound, ""},
		{"events unmounted", http.MethodGet, "/api/v1/events", "", http.StatusNotFound, ""},
		{"wrong method", http.MethodGet, "/api/v1/search", "", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.method, tt.path, tt.body, nil)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	router := testRouter(t, "")

	first := serve(router, http.MethodGet, "/api/v1/catalog", "", nil)
	second := serve(router, http.MethodGet, "/api/v1/catalog", "", nil)

	assert.NotEmpty(t, first.Header().Get(HeaderRequestID))
	assert.NotEqual(t, first.Header().Get(HeaderRequestID), second.Header().Get(HeaderRequestID))

	health := serve(router, http.MethodGet, "/healthz", "", nil)
	assert.Empty(t, health.Header().Get(HeaderRequestID))
}

func TestRouter_Auth(t *testing.T) {
	router := testRouter(t, "secret-key")

	rec := serve(router, http.MethodGet, "/api/v1/catalog", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(router, http.MethodGet, "/api/v1/catalog", "", http.Header{HeaderAPIKey: {"secret-key"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/api/v1/catalog", "", http.Header{"x-api-key": {"secret-key"}})
	assert.Equal(t, http.StatusOK, rec.Code, "header name is case-insensitive")

	rec = serve(router, http.MethodGet, "/api/v1/catalog", "", http.Header{HeaderAPIKey: {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_BodyLimit(t *testing.T) {
	router := testRouter(t, "")
	huge := `{"base_item":"` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`

	rec := serve(router, http.MethodPost, "/api/v1/mix", huge, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_EventStream(t *testing.T) {
	c, err := catalog.Load(context.Background(), "../../configs/catalog.json")
	require.NoError(t, err)
	profiles, err := profile.LoadDir(context.Background(), "../../configs/profiles")
	require.NoError(t, err)

	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	svc := search.NewService(c, search.NewEngine(c, search.WithWorkers(2)), search.ServiceConfig{
		Observer: sse.NewPublisher(hub),
	})
	srv := httptest.NewServer(NewRouter(&config.Config{Port: 8080}, svc, profiles, hub))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events?types="+sse.EventTypeSearchFinished, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	nextEvent := func() string {
		for lines.Scan() {
			if name, ok := strings.CutPrefix(lines.Text(), "event: "); ok {
				return name
			}
		}
		return ""
	}
	require.Equal(t, sse.EventTypeConnected, nextEvent())
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	body := `{"base_items":["OG Kush"],"modifiers":["Paracetamol","Viagor"],"max_modifiers":2}`
	searchResp, err := srv.Client().Post(srv.URL+"/api/v1/search", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	searchResp.Body.Close()
	require.Equal(t, http.StatusOK, searchResp.StatusCode)

	assert.Equal(t, sse.EventTypeSearchFinished, nextEvent())
	require.True(t, lines.Scan())
	assert.Contains(t, lines.Text(), `"profit":71`)
}

func TestCatalogReady(t *testing.T) {
	empty, err := catalog.New([]domain.Property{{ID: 1, Name: "Calming", Multiplier: 0.1}}, nil, nil, nil)
	require.NoError(t, err)
	assert.Error(t, catalogReady(empty).CheckHealth(context.Background()))

	shipped, err := catalog.Load(context.Background(), "../../configs/catalog.json")
	require.NoError(t, err)
	assert.NoError(t, catalogReady(shipped).CheckHealth(context.Background()))
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")

	loggingMiddleware(okHandler).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, "TestAgent")
	assert.Contains(t, out, RedactedValue)
	assert.Contains(t, out, LogMsgRequestCompleted)
}

// streamRecorder records how often headers are sent after they already
// went out, which net/http reports as a superfluous WriteHeader call
type streamRecorder struct {
	header      http.Header
	code        int
	sent        bool
	superfluous int
	body        bytes.Buffer
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: make(http.Header)}
}

func (s *streamRecorder) Header() http.Header { return s.header }

func (s *streamRecorder) WriteHeader(code int) {
	if s.sent {
		s.superfluous++
		return
	}
	s.code = code
	s.sent = true
}

func (s *streamRecorder) Write(b []byte) (int, error) {
	if !s.sent {
		s.WriteHeader(http.StatusOK)
	}
	return s.body.Write(b)
}

func (s *streamRecorder) Flush() {
	if !s.sent {
		s.WriteHeader(http.StatusOK)
	}
}

// noFlushWriter hides the Flush method of the recorder it wraps
type noFlushWriter struct {
	rec *streamRecorder
}

func (w noFlushWriter) Header() http.Header         { return w.rec.Header() }
func (w noFlushWriter) WriteHeader(code int)        { w.rec.WriteHeader(code) }
func (w noFlushWriter) Write(b []byte) (int, error) { return w.rec.Write(b) }

func TestResponseWriter_FlushSendsHeadersOnce(t *testing.T) {
	rec := newStreamRecorder()
	rw := newResponseWriter(rec)

	require.NoError(t, http.NewResponseController(rw).Flush())
	_, err := rw.Write([]byte("data: {}\n\n"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.code)
	assert.Zero(t, rec.superfluous)
	assert.Equal(t, "data: {}\n\n", rec.body.String())
}

func TestResponseWriter_FlushUnsupported(t *testing.T) {
	rec := newStreamRecorder()
	rw := newResponseWriter(noFlushWriter{rec: rec})

	err := http.NewResponseController(rw).Flush()
	require.ErrorIs(t, err, http.ErrNotSupported)

	rw.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusInternalServerError, rec.code)
	assert.Equal(t, http.StatusInternalServerError, rw.statusCode)
	assert.Zero(t, rec.superfluous)
}

func TestRouter_EventStreamSendsHeadersOnce(t *testing.T) {
	c, err := catalog.Load(context.Background(), "../../configs/catalog.json")
	require.NoError(t, err)

	hub := sse.NewHub()
	hub.Start()

	profiles, err := profile.NewRegistry()
	require.NoError(t, err)

	svc := search.NewService(c, search.NewEngine(c, search.WithWorkers(1)), search.ServiceConfig{})
	router := NewRouter(&config.Config{Port: 8080}, svc, profiles, hub)

	rec := newStreamRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		router.ServeHTTP(rec, req)
	}()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event stream did not end after hub stop")
	}
	assert.Equal(t, http.StatusOK, rec.code)
	assert.Zero(t, rec.superfluous)
	assert.Contains(t, rec.body.String(), "event: "+sse.EventTypeConnected)
}
