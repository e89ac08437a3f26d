package weather

import "math"

// TemperatureUnit names a display unit for temperatures. Celsius is the
// canonical internal unit; Fahrenheit is a display-time conversion.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "celsius"
	UnitFahrenheit TemperatureUnit = "fahrenheit"
)

// ToFahrenheit converts a Celsius temperature to rounded Fahrenheit degrees.
func ToFahrenheit(c float64) int {
	return int(math.Round(c*9/5 + 32))
}

// ToCelsius converts a Fahrenheit temperature to rounded Celsius degrees.
func ToCelsius(f float64) int {
	return int(math.Round((f - 32) * 5 / 9))
}

// DisplayTemp rounds a Celsius temperature for display in the given unit.
func DisplayTemp(c float64, unit TemperatureUnit) int {
	if unit == UnitFahrenheit {
		return ToFahrenheit(c)
	}
	return int(math.Round(c))
}
