package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeHourlySeries builds days*8 samples at a 3h cadence starting at start.
// Temperature encodes position (day*10 + index within day) and the condition
// ID encodes day*100 + index, so assertions can pinpoint any sample.
func threeHourlySeries(start time.Time, days, perDay int) ForecastSeries {
	series := ForecastSeries{City: "London", Country: "GB"}
	for d := 0; d < days; d++ {
		for i := 0; i < perDay; i++ {
			series.Samples = append(series.Samples, ForecastSample{
				Time:        start.Add(time.Duration(d*perDay+i) * 3 * time.Hour),
				Temperature: float64(d*10 + i),
				Condition:   Condition{ID: d*100 + i, Main: "Clouds"},
			})
		}
	}
	return series
}

func TestHourlyViewTruncatesToEight(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	series := threeHourlySeries(start, 5, 8) // the provider's standard 40-sample cadence

	hourly := HourlyView(series, HourlySamples)

	require.Len(t, hourly, 8)
	for i, s := range hourly {
		assert.Equal(t, start.Add(time.Duration(i)*3*time.Hour), s.Time, "sample %d out of order", i)
	}
}

func TestHourlyViewShortSeries(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	series := threeHourlySeries(start, 1, 3)

	assert.Len(t, HourlyView(series, HourlySamples), 3)
}

func TestDailyViewSixDaysYieldsFirstFive(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	series := threeHourlySeries(start, 6, 8)

	daily := DailyView(series, ForecastDays)

	require.Len(t, daily, 5)
	for d, day := range daily {
		assert.Equal(t, time.Date(2026, 3, 1+d, 0, 0, 0, 0, day.Date.Location()).Day(), day.Date.Day())
		assert.Equal(t, float64(d*10), day.MinTemp, "day %d min", d)
		assert.Equal(t, float64(d*10+7), day.MaxTemp, "day %d max", d)
		// 8 samples per day: the representative condition is sample 4's.
		assert.Equal(t, d*100+4, day.Condition.ID, "day %d condition", d)
	}
}

func TestDailyViewOddSampleCountPicksMiddle(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	series := threeHourlySeries(start, 1, 5)

	daily := DailyView(series, ForecastDays)

	require.Len(t, daily, 1)
	// floor(5/2) = 2
	assert.Equal(t, 2, daily[0].Condition.ID)
}

func TestDailyViewBucketsByLocationLocalDate(t *testing.T) {
	// 23:00 UTC with a +2h offset is already the next local day.
	series := ForecastSeries{
		UTCOffset: 2 * 3600,
		Samples: []ForecastSample{
			{Time: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC), Temperature: 5, Condition: Condition{ID: 1}},
			{Time: time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC), Temperature: 8, Condition: Condition{ID: 2}},
		},
	}

	daily := DailyView(series, ForecastDays)

	require.Len(t, daily, 2)
	assert.Equal(t, 1, daily[0].Date.Day())
	assert.Equal(t, 2, daily[1].Date.Day())
	assert.Equal(t, 5.0, daily[0].MinTemp)
	assert.Equal(t, 8.0, daily[1].MaxTemp)
}

func TestDailyViewEmptySeries(t *testing.T) {
	assert.Empty(t, DailyView(ForecastSeries{}, ForecastDays))
}
