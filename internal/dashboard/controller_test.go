package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywave/skywave/internal/location"
	"github.com/skywave/skywave/internal/prefs"
	"github.com/skywave/skywave/internal/weather"
)

type mapStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMapStore() *mapStore { return &mapStore{data: make(map[string]string)} }

func (m *mapStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mapStore) Close() error { return nil }

// gatedAggregator blocks each FetchBundle call until the test releases it,
// so completion order can be forced.
type gatedAggregator struct {
	mu      sync.Mutex
	calls   int
	started chan string
	gates   map[string]chan struct{}
}

func newGatedAggregator(cities ...string) *gatedAggregator {
	g := &gatedAggregator{
		started: make(chan string, 8),
		gates:   make(map[string]chan struct{}),
	}
	for _, city := range cities {
		g.gates[city] = make(chan struct{})
	}
	return g
}

func (g *gatedAggregator) FetchBundle(_ context.Context, q weather.LocationQuery) (*weather.Bundle, error) {
	g.mu.Lock()
	g.calls++
	gate := g.gates[q.City]
	g.mu.Unlock()

	g.started <- q.City
	if gate != nil {
		<-gate
	}
	return &weather.Bundle{
		Query:   q,
		Current: weather.CurrentConditions{City: q.City},
	}, nil
}

func (g *gatedAggregator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func newTestController(agg Aggregator, geo location.Geolocator) (*Controller, *mapStore) {
	store := newMapStore()
	resolver := location.NewResolver(store, geo)
	return NewController(agg, resolver), store
}

func TestLookupSuccessUpdatesStateAndPersists(t *testing.T) {
	agg := newGatedAggregator()
	ctrl, store := newTestController(agg, nil)

	bundle, err := ctrl.Lookup(context.Background(), weather.ByName("London"))

	require.NoError(t, err)
	assert.Equal(t, "London", bundle.Current.City)

	state := ctrl.State()
	assert.Equal(t, StatusReady, state.Status)
	require.NotNil(t, state.Bundle)
	assert.Equal(t, "London", state.Bundle.Current.City)
	assert.Empty(t, state.Err)

	city, ok, _ := store.Get(prefs.KeyLastCity)
	assert.True(t, ok)
	assert.Equal(t, "London", city)
}

func TestAutoFailureSkipsFetch(t *testing.T) {
	agg := newGatedAggregator()
	ctrl, _ := newTestController(agg, nil) // no geolocation capability

	_, err := ctrl.Lookup(context.Background(), weather.Auto())

	require.Error(t, err)
	assert.Equal(t, weather.KindLocationUnavailable, weather.KindOf(err))
	assert.Equal(t, 0, agg.callCount(), "no fetch may be attempted when geolocation fails")

	state := ctrl.State()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Nil(t, state.Bundle)
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	agg := newGatedAggregator("Slow", "Fast")
	ctrl, _ := newTestController(agg, nil)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, _ = ctrl.Lookup(context.Background(), weather.ByName("Slow"))
	}()
	require.Equal(t, "Slow", <-agg.started)

	go func() {
		defer wg.Done()
		_, _ = ctrl.Lookup(context.Background(), weather.ByName("Fast"))
	}()
	require.Equal(t, "Fast", <-agg.started)

	// The newer lookup finishes first...
	close(agg.gates["Fast"])
	require.Eventually(t, func() bool {
		s := ctrl.State()
		return s.Status == StatusReady && s.Bundle != nil && s.Bundle.Current.City == "Fast"
	}, time.Second, 5*time.Millisecond)

	// ...then the stale one completes and must not overwrite it.
	close(agg.gates["Slow"])
	wg.Wait()

	state := ctrl.State()
	assert.Equal(t, StatusReady, state.Status)
	require.NotNil(t, state.Bundle)
	assert.Equal(t, "Fast", state.Bundle.Current.City)
}

func TestNewLookupDiscardsPriorOutcome(t *testing.T) {
	agg := newGatedAggregator("First", "Second")
	close(agg.gates["First"])
	ctrl, _ := newTestController(agg, nil)

	_, err := ctrl.Lookup(context.Background(), weather.ByName("First"))
	require.NoError(t, err)
	<-agg.started

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = ctrl.Lookup(context.Background(), weather.ByName("Second"))
	}()
	require.Equal(t, "Second", <-agg.started)

	// While the second lookup is in flight the first bundle is gone.
	assert.Equal(t, StatusFetching, ctrl.State().Status)
	assert.Nil(t, ctrl.State().Bundle)

	close(agg.gates["Second"])
	<-done
	assert.Equal(t, "Second", ctrl.State().Bundle.Current.City)
}
