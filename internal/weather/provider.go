package weather

import "context"

// Provider abstracts the weather data source. One lookup issues three
// requests through it: current conditions, the hourly slice of the forecast
// and the full forecast series.
type Provider interface {
	// Current fetches current conditions for the query.
	Current(ctx context.Context, query LocationQuery) (CurrentConditions, error)
	// Forecast fetches the 3-hourly forecast series. A positive limit caps
	// the number of samples the provider returns; zero means the full series.
	Forecast(ctx context.Context, query LocationQuery, limit int) (ForecastSeries, error)
}
