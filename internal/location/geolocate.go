package location

import (
	"context"
	"fmt"

	"github.com/kelvins/geocoder"

	"github.com/skywave/skywave/internal/weather"
)

// Geolocator is the external capability that reports the device's current
// position. Implementations complete exactly once per call: either a
// coordinate pair or an error, never both.
type Geolocator interface {
	Locate(ctx context.Context) (weather.Coordinates, error)
}

// AddressGeolocator resolves a configured home address to coordinates
// through the Google geocoding API. On a headless host this plays the role
// a browser's geolocation API plays in the original dashboard.
type AddressGeolocator struct {
	address string
}

// NewAddressGeolocator returns nil when either the address or the API key
// is missing; a nil Geolocator means the capability is absent.
func NewAddressGeolocator(address, apiKey string) *AddressGeolocator {
	if address == "" || apiKey == "" {
		return nil
	}
	geocoder.ApiKey = apiKey
	return &AddressGeolocator{address: address}
}

func (g *AddressGeolocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	// The geocoder library offers no context plumbing; run it in a goroutine
	// so the caller's context still bounds the wait. The buffered channel
	// guarantees the single completion is delivered even after a cancel.
	type result struct {
		loc weather.Coordinates
		err error
	}

	ch := make(chan result, 1)
	go func() {
		loc, err := geocoder.Geocoding(geocoder.Address{Street: g.address})
		if err != nil {
			ch <- result{err: err}
			return
		}
		ch <- result{loc: weather.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude}}
	}()

	select {
	case <-ctx.Done():
		return weather.Coordinates{}, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return weather.Coordinates{}, fmt.Errorf("geocoding %q: %w", g.address, r.err)
		}
		return r.loc, nil
	}
}
