package weather

import (
	"encoding/json"
	"fmt"
	"time"
)

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// QueryKind discriminates the variants of LocationQuery.
type QueryKind int

const (
	// QueryAuto asks for the device's current position.
	QueryAuto QueryKind = iota
	// QueryByName targets an explicit city name.
	QueryByName
	// QueryByCoords targets an explicit coordinate pair.
	QueryByCoords
)

// LocationQuery identifies the location a weather lookup targets.
// Exactly one variant is active; use the constructors below.
type LocationQuery struct {
	Kind   QueryKind
	City   string
	Coords Coordinates
}

// ByName builds a query for an explicit city name.
func ByName(city string) LocationQuery {
	return LocationQuery{Kind: QueryByName, City: city}
}

// ByCoordinates builds a query for an explicit coordinate pair.
func ByCoordinates(lat, lon float64) LocationQuery {
	return LocationQuery{Kind: QueryByCoords, Coords: Coordinates{Lat: lat, Lon: lon}}
}

// Auto builds a query that resolves to the device's current position.
func Auto() LocationQuery {
	return LocationQuery{Kind: QueryAuto}
}

func (q LocationQuery) String() string {
	switch q.Kind {
	case QueryByName:
		return q.City
	case QueryByCoords:
		return q.Coords.String()
	default:
		return "auto"
	}
}

// MarshalJSON emits only the fields of the active variant.
func (q LocationQuery) MarshalJSON() ([]byte, error) {
	switch q.Kind {
	case QueryByName:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			City string `json:"city"`
		}{"name", q.City})
	case QueryByCoords:
		return json.Marshal(struct {
			Kind   string      `json:"kind"`
			Coords Coordinates `json:"coords"`
		}{"coords", q.Coords})
	default:
		return json.Marshal(struct {
			Kind string `json:"kind"`
		}{"auto"})
	}
}

// UnmarshalJSON mirrors MarshalJSON.
func (q *LocationQuery) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind   string      `json:"kind"`
		City   string      `json:"city"`
		Coords Coordinates `json:"coords"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case "name":
		*q = ByName(raw.City)
	case "coords":
		*q = ByCoordinates(raw.Coords.Lat, raw.Coords.Lon)
	case "auto", "":
		*q = Auto()
	default:
		return fmt.Errorf("unknown query kind %q", raw.Kind)
	}
	return nil
}

// Condition is the provider's weather condition descriptor, carried verbatim.
// ID is the numeric condition code; Icon is the provider's icon identifier
// that downstream presentation maps to visuals.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentConditions is the current-weather view of one location.
// Temperatures are Celsius; display conversion happens downstream.
type CurrentConditions struct {
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Temperature float64   `json:"temperatureC"`
	FeelsLike   float64   `json:"feelsLikeC"`
	Humidity    int       `json:"humidityPercent"`
	Pressure    int       `json:"pressureHpa"`
	WindSpeed   float64   `json:"windSpeed"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	Condition   Condition `json:"condition"`
}

// ForecastSample is one 3-hourly entry of the provider's forecast series.
type ForecastSample struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperatureC"`
	FeelsLike   float64   `json:"feelsLikeC"`
	Condition   Condition `json:"condition"`
	CloudCover  int       `json:"cloudCoverPercent"`
	PrecipMM    float64   `json:"precipMm,omitempty"`
}

// ForecastSeries is the provider's 3-hourly forecast list together with the
// location metadata needed to bucket samples by the location's calendar day.
type ForecastSeries struct {
	City      string           `json:"city"`
	Country   string           `json:"country"`
	UTCOffset int              `json:"utcOffsetSeconds"`
	Samples   []ForecastSample `json:"samples"`
}

// DaySummary is one derived day bucket of the multi-day outlook.
type DaySummary struct {
	Date      time.Time `json:"date"`
	MinTemp   float64   `json:"minTempC"`
	MaxTemp   float64   `json:"maxTempC"`
	Condition Condition `json:"condition"`
}

// Bundle is the aggregate result of one successful lookup. Current, Hourly
// and Daily are always populated together; a failed lookup yields no Bundle
// at all.
type Bundle struct {
	Query   LocationQuery     `json:"query"`
	Current CurrentConditions `json:"current"`
	Hourly  []ForecastSample  `json:"hourly"`
	Daily   []DaySummary      `json:"daily"`
}
