// Package location decides which location a weather lookup targets.
// It never talks to the weather provider itself.
package location

import (
	"context"
	"encoding/json"
	"log"

	"github.com/skywave/skywave/internal/prefs"
	"github.com/skywave/skywave/internal/weather"
)

// Resolver produces lookup queries from persisted preferences and the
// geolocation capability. geo may be nil when the capability is absent.
type Resolver struct {
	store prefs.Store
	geo   Geolocator
}

// NewResolver creates a Resolver.
func NewResolver(store prefs.Store, geo Geolocator) *Resolver {
	return &Resolver{store: store, geo: geo}
}

// InitialQuery seeds the very first lookup at startup: the persisted city
// wins over persisted coordinates, and with neither present the device
// position is requested. Runs once, before any fetch.
func (r *Resolver) InitialQuery() weather.LocationQuery {
	if city, ok := r.get(prefs.KeyLastCity); ok && city != "" {
		return weather.ByName(city)
	}
	if raw, ok := r.get(prefs.KeyLastCoords); ok {
		var c weather.Coordinates
		if err := json.Unmarshal([]byte(raw), &c); err == nil {
			return weather.ByCoordinates(c.Lat, c.Lon)
		}
		log.Printf("ignoring malformed persisted coordinates %q", raw)
	}
	return weather.Auto()
}

// Auto asks the geolocation capability for the current position. When the
// capability is absent or fails, the lookup fails with a location error and
// no provider request is ever issued.
func (r *Resolver) Auto(ctx context.Context) (weather.LocationQuery, error) {
	if r.geo == nil {
		return weather.LocationQuery{}, weather.NewLocationUnavailable("geolocation is not available")
	}

	coords, err := r.geo.Locate(ctx)
	if err != nil {
		log.Printf("geolocation failed: %v", err)
		return weather.LocationQuery{}, weather.NewLocationUnavailable("unable to retrieve your location")
	}

	return weather.ByCoordinates(coords.Lat, coords.Lon), nil
}

// Persist records the query as the last searched location. A city clears
// stored coordinates and vice versa, so at most one is ever authoritative.
// Best-effort: store failures are logged, never propagated.
func (r *Resolver) Persist(query weather.LocationQuery) {
	switch query.Kind {
	case weather.QueryByName:
		r.set(prefs.KeyLastCity, query.City)
		r.remove(prefs.KeyLastCoords)
	case weather.QueryByCoords:
		raw, err := json.Marshal(query.Coords)
		if err != nil {
			log.Printf("could not encode coordinates for persistence: %v", err)
			return
		}
		r.set(prefs.KeyLastCoords, string(raw))
		r.remove(prefs.KeyLastCity)
	}
}

func (r *Resolver) get(key string) (string, bool) {
	value, ok, err := r.store.Get(key)
	if err != nil {
		log.Printf("preference read %s failed: %v", key, err)
		return "", false
	}
	return value, ok
}

func (r *Resolver) set(key, value string) {
	if err := r.store.Set(key, value); err != nil {
		log.Printf("preference write %s failed: %v", key, err)
	}
}

func (r *Resolver) remove(key string) {
	if err := r.store.Remove(key); err != nil {
		log.Printf("preference remove %s failed: %v", key, err)
	}
}
