package weather

import "time"

const (
	// HourlySamples is how many 3-hourly entries the hourly outlook shows.
	HourlySamples = 8
	// ForecastDays is how many day buckets the multi-day outlook shows.
	ForecastDays = 5
)

// HourlyView returns the first n samples of the series in provider order.
func HourlyView(series ForecastSeries, n int) []ForecastSample {
	if len(series.Samples) <= n {
		return series.Samples
	}
	return series.Samples[:n]
}

// DailyView buckets the 3-hourly series by calendar date in the location's
// local time and summarizes at most maxDays distinct days, in the order they
// first appear. Min/max come from the day's sample temperatures; the
// representative condition is the temporally middle sample's, not the most
// frequent one.
func DailyView(series ForecastSeries, maxDays int) []DaySummary {
	loc := time.FixedZone("local", series.UTCOffset)

	type bucket struct {
		date    time.Time
		samples []ForecastSample
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, s := range series.Samples {
		local := s.Time.In(loc)
		key := local.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			if len(order) >= maxDays {
				// Later days past the cap still belong to no bucket.
				continue
			}
			b = &bucket{date: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)}
			buckets[key] = b
			order = append(order, key)
		}
		b.samples = append(b.samples, s)
	}

	days := make([]DaySummary, 0, len(order))
	for _, key := range order {
		b := buckets[key]

		minTemp := b.samples[0].Temperature
		maxTemp := b.samples[0].Temperature
		for _, s := range b.samples[1:] {
			if s.Temperature < minTemp {
				minTemp = s.Temperature
			}
			if s.Temperature > maxTemp {
				maxTemp = s.Temperature
			}
		}

		mid := b.samples[len(b.samples)/2]

		days = append(days, DaySummary{
			Date:      b.date,
			MinTemp:   minTemp,
			MaxTemp:   maxTemp,
			Condition: mid.Condition,
		})
	}

	return days
}
