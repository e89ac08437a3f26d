package weather

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFahrenheit(t *testing.T) {
	assert.Equal(t, 32, ToFahrenheit(0))
	assert.Equal(t, 212, ToFahrenheit(100))
	assert.Equal(t, -40, ToFahrenheit(-40))
	assert.Equal(t, 59, ToFahrenheit(15))
}

func TestConversionRoundTrip(t *testing.T) {
	for _, f := range []float64{-40, 0, 32, 59, 100, 212} {
		back := ToFahrenheit(float64(ToCelsius(f)))
		assert.LessOrEqual(t, math.Abs(float64(back)-f), 1.0,
			"round trip for %v°F drifted to %v°F", f, back)
	}
}

func TestDisplayTemp(t *testing.T) {
	assert.Equal(t, 15, DisplayTemp(15.4, UnitCelsius))
	assert.Equal(t, 16, DisplayTemp(15.5, UnitCelsius))
	assert.Equal(t, 60, DisplayTemp(15.5, UnitFahrenheit))
}
