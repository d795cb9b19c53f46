package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore is an in-memory HistoryStore
type mockStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*types.ResumeRecord
	err     error
	clock   time.Time
}

func newMockStore() *mockStore {
	return &mockStore{
		records: make(map[uuid.UUID]*types.ResumeRecord),
		clock:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *mockStore) Create(_ context.Context, rec *types.ResumeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.clock = m.clock.Add(time.Minute)
	rec.CreatedAt, rec.UpdatedAt = m.clock, m.clock
	stored := *rec
	m.records[rec.ID] = &stored
	return nil
}

func (m *mockStore) Get(_ context.Context, userID, id uuid.UUID) (*types.ResumeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

func (m *mockStore) List(_ context.Context, userID uuid.UUID, limit int) ([]types.ResumeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []types.ResumeRecord
	for _, rec := range m.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockStore) Update(_ context.Context, rec *types.ResumeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	existing, ok := m.records[rec.ID]
	if !ok || existing.UserID != rec.UserID {
		return fmt.Errorf("update %s: %w", rec.ID, db.ErrRecordNotFound)
	}
	m.clock = m.clock.Add(time.Minute)
	rec.CreatedAt, rec.UpdatedAt = existing.CreatedAt, m.clock
	stored := *rec
	m.records[rec.ID] = &stored
	return nil
}

func (m *mockStore) Delete(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	existing, ok := m.records[id]
	if !ok || existing.UserID != userID {
		return fmt.Errorf("delete %s: %w", id, db.ErrRecordNotFound)
	}
	delete(m.records, id)
	return nil
}

func (m *mockStore) Close() {}

// staticTokens accepts a fixed set of bearer tokens
type staticTokens map[string]uuid.UUID

type staticClaims uuid.UUID

func (c staticClaims) GetUserID() uuid.UUID { return uuid.UUID(c) }

func (t staticTokens) ValidateToken(token string) (middleware.UserIDGetter, error) {
	id, ok := t[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return staticClaims(id), nil
}

// fakePDF returns a fixed PDF body
type fakePDF struct {
	calls int
}

func (f *fakePDF) PrintPDF(_ context.Context, html string) ([]byte, error) {
	f.calls++
	return []byte("%PDF-1.4 " + fmt.Sprint(len(html))), nil
}

// mockLLM is a scripted llm.Client
type mockLLM struct {
	content string
	json    string
	err     error
	jsonErr error
}

func (m *mockLLM) GenerateContent(context.Context, llm.Message, llm.ModelTier) (string, error) {
	return m.content, m.err
}

func (m *mockLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	if m.jsonErr != nil {
		return "", m.jsonErr
	}
	return m.json, m.err
}

func (m *mockLLM) GetModel(llm.ModelTier) string { return "mock" }

func (m *mockLLM) Close() error { return nil }

const testToken = "test-token"

// testServer bundles a server with its fakes
type testServer struct {
	*Server
	store  *mockStore
	pdf    *fakePDF
	userID uuid.UUID
}

func newTestServer(t *testing.T, opts ...func(*Deps)) *testServer {
	t.Helper()
	ts := &testServer{
		store:  newMockStore(),
		pdf:    &fakePDF{},
		userID: uuid.New(),
	}
	deps := Deps{
		Store:    ts.store,
		Renderer: rendering.NewRenderer(ts.pdf),
		Tokens:   staticTokens{testToken: ts.userID},
	}
	for _, opt := range opts {
		opt(&deps)
	}
	ts.Server = NewWithDeps(deps)
	t.Cleanup(ts.rateLimiter.Stop)
	return ts
}

func withLLM(client llm.Client) func(*Deps) {
	return func(d *Deps) { d.Generator = generation.NewGenerator(client, false) }
}

// do sends a request through the full middleware chain.
func (ts *testServer) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[struct {
		Status   string          `json:"status"`
		Features map[string]bool `json:"features"`
	}](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Features["history"])
	assert.True(t, resp.Features["auth"])
	assert.False(t, resp.Features["generation"])
	assert.False(t, resp.Features["storage"])
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSMiddleware_OPTIONS(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodOptions, "/v1/resumes", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestLoggingMiddleware(t *testing.T) {
	s := newTestServer(t)

	called := false
	handler := s.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t, func(d *Deps) {
		d.RateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  2,
			DefaultWindow: time.Hour,
		})
	})

	body := map[string]any{"resume_text": "SKILLS\nGo"}
	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/v1/assemble", body, false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := s.do(http.MethodPost, "/v1/assemble", body, false)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, "rate_limit_exceeded", resp["error"])
}

func TestAuthenticatedRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/resumes"},
		{http.MethodPost, "/v1/resumes"},
		{http.MethodGet, "/v1/resumes/" + uuid.NewString()},
		{http.MethodDelete, "/v1/resumes/" + uuid.NewString()},
		{http.MethodPost, "/v1/generate"},
		{http.MethodPost, "/v1/autofill"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := s.do(rt.method, rt.path, nil, false)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthenticatedRoutes_NoValidator(t *testing.T) {
	s := newTestServer(t, func(d *Deps) { d.Tokens = nil })

	w := s.do(http.MethodGet, "/v1/resumes", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "authentication is not configured")
}

func TestJSONResponse(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()

	s.jsonResponse(w, http.StatusCreated, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestErrorResponse(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()

	s.errorResponse(w, http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad input"}`, w.Body.String())
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()

	s.writeError(w, errors.New("pq: connection refused at 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	assert.Equal(t, "203.0.113.7", s.extractClientID(req))

	req.RemoteAddr = "not-an-address"
	assert.Equal(t, "not-an-address", s.extractClientID(req))
}
