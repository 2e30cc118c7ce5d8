package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/metrics"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, f *Filter) (*Result, error) {
	args := m.Called(ctx, f)
	res, _ := args.Get(0).(*Result)
	return res, args.Error(1)
}

func (m *mockSearcher) Evaluate(base domain.BaseItem, modifiers []domain.Modifier) *Result {
	args := m.Called(base, modifiers)
	return args.Get(0).(*Result)
}

func starterFilter(t *testing.T, c Catalog) *Filter {
	t.Helper()
	f, err := NewFilterBuilder(c).AddBaseItems("OG Kush").AddModifiers(starterModifiers...).MaxModifiers(2).Build()
	require.NoError(t, err)
	return f
}

func TestService_CachesResults(t *testing.T) {
	c := testCatalog(t)
	f := starterFilter(t, c)
	want := &Result{Profit: 42}

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, f).Return(want, nil).Once()

	svc := NewService(c, searcher, ServiceConfig{CacheSize: 4, CacheTTL: time.Minute})

	for range 3 {
		got, err := svc.Search(context.Background(), f)
		require.NoError(t, err)
		assert.Same(t, want, got)
	}
	searcher.AssertNumberOfCalls(t, "Search", 1)
}

func TestService_CachesNoCandidate(t *testing.T) {
	c := testCatalog(t)
	f := starterFilter(t, c)

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, f).Return(nil, nil).Once()

	svc := NewService(c, searcher, ServiceConfig{})

	for range 2 {
		got, err := svc.Search(context.Background(), f)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	searcher.AssertNumberOfCalls(t, "Search", 1)
}

func TestService_DoesNotCacheErrors(t *testing.T) {
	c := testCatalog(t)
	f := starterFilter(t, c)
	boom := errors.New("boom")

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, f).Return(nil, boom).Once()
	searcher.On("Search", mock.Anything, f).Return(&Result{Profit: 1}, nil).Once()

	svc := NewService(c, searcher, ServiceConfig{})

	_, err := svc.Search(context.Background(), f)
	assert.ErrorIs(t, err, boom)

	got, err := svc.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Profit)
	searcher.AssertExpectations(t)
}

func TestService_DistinctFiltersMiss(t *testing.T) {
	c := testCatalog(t)
	a := starterFilter(t, c)
	b, err := NewFilterBuilder(c).AddBaseItems("Cocaine").AddModifiers("Cuke").Build()
	require.NoError(t, err)

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, mock.Anything).Return(&Result{}, nil)

	svc := NewService(c, searcher, ServiceConfig{})
	_, err = svc.Search(context.Background(), a)
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), b)
	require.NoError(t, err)

	searcher.AssertNumberOfCalls(t, "Search", 2)
}

// blockingSearcher holds every search until release is closed.
type blockingSearcher struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *blockingSearcher) Search(ctx context.Context, f *Filter) (*Result, error) {
	s.calls.Add(1)
	<-s.release
	return &Result{Profit: 7}, nil
}

func (s *blockingSearcher) Evaluate(domain.BaseItem, []domain.Modifier) *Result {
	return &Result{}
}

func TestService_CollapsesConcurrentSearches(t *testing.T) {
	c := testCatalog(t)
	f := starterFilter(t, c)
	searcher := &blockingSearcher{release: make(chan struct{})}
	svc := NewService(c, searcher, ServiceConfig{})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*Result, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Search(context.Background(), f)
			assert.NoError(t, err)
			results[i] = res
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(searcher.release)
	wg.Wait()

	assert.Equal(t, int32(1), searcher.calls.Load())
	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, int64(7), res.Profit)
	}
}

func TestService_EndToEnd(t *testing.T) {
	c := testCatalog(t)
	svc := NewService(c, NewEngine(c, WithWorkers(2)), ServiceConfig{})

	f, err := svc.NewFilterBuilder().AddBaseItems("OG Kush").AddModifiers(starterModifiers...).MaxModifiers(3).Build()
	require.NoError(t, err)

	res, err := svc.Search(context.Background(), f)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, int64(81), res.Profit)
	assert.Same(t, c, svc.Catalog())

	kush, _ := c.BaseItemByName("OG Kush")
	eval := svc.Evaluate(context.Background(), kush, res.Modifiers)
	assert.Equal(t, res.Profit, eval.Profit)
	assert.Equal(t, res.Properties, eval.Properties)
}

type recordingObserver struct {
	mu       sync.Mutex
	started  int
	finished []error
}

func (o *recordingObserver) SearchStarted(context.Context, *Filter) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *recordingObserver) SearchFinished(_ context.Context, _ *Filter, _ *Result, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, err)
}

func TestService_Observer(t *testing.T) {
	c := testCatalog(t)
	f := starterFilter(t, c)
	boom := errors.New("boom")

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, f).Return(nil, boom).Once()
	searcher.On("Search", mock.Anything, f).Return(&Result{Profit: 1}, nil).Once()

	obs := &recordingObserver{}
	svc := NewService(c, searcher, ServiceConfig{Observer: obs})

	_, err := svc.Search(context.Background(), f)
	require.ErrorIs(t, err, boom)
	_, err = svc.Search(context.Background(), f)
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), f) // cache hit
	require.NoError(t, err)

	assert.Equal(t, 2, obs.started)
	require.Len(t, obs.finished, 2)
	assert.ErrorIs(t, obs.finished[0], boom)
	assert.NoError(t, obs.finished[1])
}

func TestResultCache_StoresNoCandidate(t *testing.T) {
	cache := newResultCache(2, time.Minute)
	cache.Set("none", nil)

	res, found := cache.Get("none")
	assert.True(t, found)
	assert.Nil(t, res)

	_, found = cache.Get("other")
	assert.False(t, found)
}

func TestResultCache_Evicts(t *testing.T) {
	cache := newResultCache(2, 0)
	cache.Set("a", &Result{})
	cache.Set("b", &Result{})
	cache.Set("c", &Result{})

	_, found := cache.Get("a")
	assert.False(t, found)
	assert.Equal(t, 2, cache.Len())
	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.SearchCacheEntries), 1e-9)
}
