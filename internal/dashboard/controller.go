// Package dashboard tracks the lifecycle of weather lookups for the
// presentation layer: idle, fetching, ready or failed.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/skywave/skywave/internal/location"
	"github.com/skywave/skywave/internal/weather"
)

// Status names the phases of a lookup.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusFetching Status = "fetching"
	StatusReady    Status = "ready"
	StatusFailed   Status = "failed"
)

// State is the snapshot the presentation layer consumes: loading, a bundle,
// or an error. Bundle and Err are never both set.
type State struct {
	Status Status          `json:"status"`
	Bundle *weather.Bundle `json:"bundle,omitempty"`
	Err    string          `json:"error,omitempty"`
}

// Aggregator is the slice of the weather service the controller needs.
type Aggregator interface {
	FetchBundle(ctx context.Context, query weather.LocationQuery) (*weather.Bundle, error)
}

// Controller runs lookups and keeps the latest outcome. Each lookup gets a
// monotonically increasing sequence number; a completion only updates the
// shared state while its sequence is still the newest, so a slow stale
// lookup can never overwrite a more recently initiated one.
type Controller struct {
	svc      Aggregator
	resolver *location.Resolver

	seq atomic.Uint64

	mu    sync.Mutex
	state State
}

// NewController creates a Controller in the idle state.
func NewController(svc Aggregator, resolver *location.Resolver) *Controller {
	return &Controller{
		svc:      svc,
		resolver: resolver,
		state:    State{Status: StatusIdle},
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Lookup performs one complete fetch cycle and returns its outcome. An Auto
// query is resolved to coordinates first; if geolocation fails no provider
// request is issued. On success the resolved location is persisted,
// best-effort.
func (c *Controller) Lookup(ctx context.Context, query weather.LocationQuery) (*weather.Bundle, error) {
	id := c.seq.Add(1)
	c.apply(id, State{Status: StatusFetching})

	if query.Kind == weather.QueryAuto {
		resolved, err := c.resolver.Auto(ctx)
		if err != nil {
			c.apply(id, State{Status: StatusFailed, Err: err.Error()})
			return nil, err
		}
		query = resolved
	}

	bundle, err := c.svc.FetchBundle(ctx, query)
	if err != nil {
		c.apply(id, State{Status: StatusFailed, Err: err.Error()})
		return nil, err
	}

	c.apply(id, State{Status: StatusReady, Bundle: bundle})
	c.resolver.Persist(query)
	return bundle, nil
}

// apply installs the state transition unless a newer lookup has started.
func (c *Controller) apply(id uint64, next State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.seq.Load() {
		return
	}
	c.state = next
}
