package environment

import (
	"math"

	"invasion-ca/internal/species"
)

// FavourableTolerance widens each survival range by this fraction of its
// width when deciding whether conditions are favourable.
const FavourableTolerance = 0.2

// TemperatureStress is the death-probability penalty for temperatures
// outside the profile's survival range.
func (s State) TemperatureStress(p species.Profile) float64 {
	return rangeStress(s.temperature, p.Temperature, Temperature.Bounds().Max)
}

// HumidityStress is the death-probability penalty for humidity outside the
// profile's survival range.
func (s State) HumidityStress(p species.Profile) float64 {
	return rangeStress(s.humidity, p.Humidity, Humidity.Bounds().Max)
}

func rangeStress(v float64, r species.Range, ceiling float64) float64 {
	switch {
	case v < r.Min:
		if r.Min <= 0 {
			return 0
		}
		return (r.Min - v) / r.Min
	case v > r.Max:
		if ceiling <= r.Max {
			return 0
		}
		return (v - r.Max) / (ceiling - r.Max)
	}
	return 0
}

// Favourable reports whether temperature and humidity fall inside the
// profile's ranges (with tolerance) and pollution reduction meets its
// threshold.
func (s State) Favourable(p species.Profile) bool {
	return p.Temperature.ContainsWithTolerance(s.temperature, FavourableTolerance) &&
		p.Humidity.ContainsWithTolerance(s.humidity, FavourableTolerance) &&
		s.pollutionReduction >= p.PollutionThreshold
}

// Pressure is the combined, species-independent environmental pressure used
// to derive growth and death rates. It is 0 at 15–30 °C and 50 % humidity.
func (s State) Pressure() float64 {
	tempStress := 0.0
	if s.temperature < 15 || s.temperature > 30 {
		tempStress = math.Min(math.Abs(s.temperature-15), math.Abs(s.temperature-30)) / 10
	}
	humidityStress := math.Abs(s.humidity-50) / 100
	return (tempStress + humidityStress) / 2
}
