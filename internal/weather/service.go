package weather

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Service is the aggregator: it fans one lookup out into three concurrent
// provider requests and merges them into a single Bundle, or fails the whole
// lookup. No partial result ever escapes.
type Service struct {
	provider Provider
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// FetchBundle performs one complete fetch cycle for the query. The query
// must already be resolved to a name or coordinates; QueryAuto is the
// resolver's job, not the aggregator's.
func (s *Service) FetchBundle(ctx context.Context, query LocationQuery) (*Bundle, error) {
	if query.Kind == QueryAuto {
		return nil, NewTransportFailure("unresolved auto query passed to aggregator")
	}

	var (
		wg      sync.WaitGroup
		current CurrentConditions
		hourly  ForecastSeries
		full    ForecastSeries
		errs    [3]error
	)

	// All three requests carry the exact same location parameters.
	wg.Add(3)
	go func() {
		defer wg.Done()
		current, errs[0] = s.provider.Current(ctx, query)
	}()
	go func() {
		defer wg.Done()
		hourly, errs[1] = s.provider.Forecast(ctx, query, HourlySamples)
	}()
	go func() {
		defer wg.Done()
		full, errs[2] = s.provider.Forecast(ctx, query, 0)
	}()
	wg.Wait()

	if err := firstError(errs[:]); err != nil {
		log.Printf("lookup failed for %s: %v", query, err)
		return nil, err
	}

	bundle := &Bundle{
		Query:   query,
		Current: current,
		Hourly:  HourlyView(hourly, HourlySamples),
		Daily:   DailyView(full, ForecastDays),
	}

	if len(bundle.Daily) == 0 {
		return nil, NewTransportFailure(fmt.Sprintf("empty forecast series for %s", query))
	}

	return bundle, nil
}

// firstError picks the error that fails the lookup. A not-found beats a
// transport failure so a bad city name reads as such even when the other
// requests also failed.
func firstError(errs []error) error {
	var first error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if KindOf(err) == KindNotFound {
			return err
		}
		if first == nil {
			first = err
		}
	}
	return first
}
