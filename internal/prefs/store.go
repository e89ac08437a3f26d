// Package prefs persists user preferences across restarts: the last
// searched location, the temperature unit and the theme.
package prefs

// Well-known preference keys.
const (
	KeyLastCity   = "lastSearchedCity"
	KeyLastCoords = "lastSearchedCoords" // JSON {"lat":..,"lon":..}
	KeyUnit       = "temperatureUnit"    // celsius | fahrenheit
	KeyTheme      = "theme"              // dark | light
)

// Store is the synchronous key-value contract the resolver and the API
// layer use. Implementations must survive process restarts.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores the value for key, overwriting any previous value.
	Set(key, value string) error
	// Remove deletes the key; removing an absent key is not an error.
	Remove(key string) error
	Close() error
}
