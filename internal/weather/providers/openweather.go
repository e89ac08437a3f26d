package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/skywave/skywave/internal/weather"
)

// DefaultBaseURL is OpenWeatherMap's v2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider implements weather.Provider against OpenWeatherMap.
// All requests use metric units; conversion to Fahrenheit is a display
// concern and never reaches the wire.
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider using the shared HTTP client.
// baseURL may be empty to use the real API.
func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

// locationValues sets the query's location parameters; every request of one
// lookup goes through here so the three cannot drift apart.
func locationValues(values url.Values, query weather.LocationQuery) error {
	switch query.Kind {
	case weather.QueryByName:
		values.Set("q", query.City)
	case weather.QueryByCoords:
		values.Set("lat", strconv.FormatFloat(query.Coords.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(query.Coords.Lon, 'f', -1, 64))
	default:
		return fmt.Errorf("query kind %d has no location parameters", query.Kind)
	}
	return nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, path string, query weather.LocationQuery, extra url.Values) (*http.Response, error) {
	if p.apiKey == "" {
		return nil, weather.NewTransportFailure("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		if err := locationValues(values, query); err != nil {
			return nil, err
		}
		for k, vs := range extra {
			for _, v := range vs {
				values.Set(k, v)
			}
		}

		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return nil, classify(err, query)
	}
	return resp, nil
}

// classify maps transport-level errors onto the lookup error taxonomy.
// A 404 on a by-name request means the city does not exist; everything else,
// coordinate lookups included, is a generic transport failure.
func classify(err error, query weather.LocationQuery) error {
	if errors.Is(err, errNotFound) && query.Kind == weather.QueryByName {
		return weather.NewNotFound(fmt.Sprintf("city %q not found", query.City))
	}
	return weather.NewTransportFailure(fmt.Sprintf("failed to fetch weather data: %v", err))
}

// Current implements weather.Provider.
func (p *OpenWeatherProvider) Current(ctx context.Context, query weather.LocationQuery) (weather.CurrentConditions, error) {
	resp, err := p.get(ctx, "/weather", query, nil)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Sys struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
		Weather []conditionPayload `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CurrentConditions{}, weather.NewTransportFailure(fmt.Sprintf("malformed current weather payload: %v", err))
	}

	return weather.CurrentConditions{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		WindSpeed:   payload.Wind.Speed,
		Sunrise:     time.Unix(payload.Sys.Sunrise, 0).UTC(),
		Sunset:      time.Unix(payload.Sys.Sunset, 0).UTC(),
		Condition:   firstCondition(payload.Weather),
	}, nil
}

// Forecast implements weather.Provider.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, query weather.LocationQuery, limit int) (weather.ForecastSeries, error) {
	var extra url.Values
	if limit > 0 {
		extra = url.Values{"cnt": []string{strconv.Itoa(limit)}}
	}

	resp, err := p.get(ctx, "/forecast", query, extra)
	if err != nil {
		return weather.ForecastSeries{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp      float64 `json:"temp"`
				FeelsLike float64 `json:"feels_like"`
			} `json:"main"`
			Weather []conditionPayload `json:"weather"`
			Clouds  struct {
				All int `json:"all"`
			} `json:"clouds"`
			Rain struct {
				ThreeH float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
		City struct {
			Name    string `json:"name"`
			Country string `json:"country"`
			// Shift in seconds from UTC at the forecast location.
			Timezone int `json:"timezone"`
		} `json:"city"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastSeries{}, weather.NewTransportFailure(fmt.Sprintf("malformed forecast payload: %v", err))
	}

	series := weather.ForecastSeries{
		City:      payload.City.Name,
		Country:   payload.City.Country,
		UTCOffset: payload.City.Timezone,
		Samples:   make([]weather.ForecastSample, 0, len(payload.List)),
	}

	for _, item := range payload.List {
		series.Samples = append(series.Samples, weather.ForecastSample{
			Time:        time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			Condition:   firstCondition(item.Weather),
			CloudCover:  item.Clouds.All,
			PrecipMM:    item.Rain.ThreeH,
		})
	}

	return series, nil
}

type conditionPayload struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func firstCondition(items []conditionPayload) weather.Condition {
	if len(items) == 0 {
		return weather.Condition{}
	}
	return weather.Condition(items[0])
}
