package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MixOptimizer_Go/internal/catalog"
	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/profile"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

var starterModifiers = []string{"Cuke", "Gasoline", "Donut", "Banana", "Paracetamol", "Viagor"}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(context.Background(), "../../configs/catalog.json")
	require.NoError(t, err)
	return c
}

func testService(t *testing.T) search.Service {
	t.Helper()
	c := testCatalog(t)
	return search.NewService(c, search.NewEngine(c, search.WithWorkers(2)), search.ServiceConfig{})
}

func testProfiles(t *testing.T) *profile.Registry {
	t.Helper()
	p, err := profile.ParseBytes([]byte(`
name: cheap-sneaky
base_items: [OG Kush]
modifiers: [Cuke, Gasoline, Donut, Banana, Paracetamol, Viagor]
required: [Sneaky]
blocked: [Toxic]
targets: [cost, profit]
max_modifiers: 3
`))
	require.NoError(t, err)
	broken, err := profile.ParseBytes([]byte(`
name: broken
base_items: [Unobtainium]
modifiers: ["*"]
`))
	require.NoError(t, err)
	reg, err := profile.NewRegistry(p, broken)
	require.NoError(t, err)
	return reg
}

// testRouter mounts the API routes the way the server does
func testRouter(svc search.Service, profiles ProfileSource) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/catalog", HandleGetCatalog(svc))
	r.Post("/api/v1/mix", HandleEvaluateMix(svc))
	r.Post("/api/v1/search", HandleSearch(svc))
	r.Get("/api/v1/profiles", HandleListProfiles(profiles))
	r.Post("/api/v1/profiles/{name}/search", HandleProfileSearch(svc, profiles))
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func intPtr(n int) *int { return &n }

// MockSearchService mocks search.Service
type MockSearchService struct {
	mock.Mock
	catalog search.Catalog
}

func (m *MockSearchService) Search(ctx context.Context, f *search.Filter) (*search.Result, error) {
	args := m.Called(ctx, f)
	if res := args.Get(0); res != nil {
		return res.(*search.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSearchService) Evaluate(ctx context.Context, base domain.BaseItem, modifiers []domain.Modifier) *search.Result {
	args := m.Called(ctx, base, modifiers)
	return args.Get(0).(*search.Result)
}

func (m *MockSearchService) NewFilterBuilder() *search.FilterBuilder {
	return search.NewFilterBuilder(m.catalog)
}

func (m *MockSearchService) Catalog() search.Catalog {
	return m.catalog
}
