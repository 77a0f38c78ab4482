// Package conditions advances a week-based calendar and samples the weather
// that drives the invasion grid.
package conditions

import (
	"math"
	"math/rand/v2"
	"slices"

	"invasion-ca/pkg/rng"
)

const (
	// StartYear is the calendar year of a fresh driver.
	StartYear = 2025
	// WeeksPerMonth is the calendar's fixed month length.
	WeeksPerMonth = 4
	// UnexpectedWeatherChance is the per-tick probability of the random
	// weather overlay.
	UnexpectedWeatherChance = 0.1
	// MeanReversion pulls temperature back towards the month's base.
	MeanReversion = 0.2
)

// Sample is one environmental reading fed to the grid.
type Sample struct {
	Temperature        float64
	Humidity           float64
	PollutionReduction float64
	Weather            string
}

// Report is a presentation-friendly snapshot of the driver.
type Report struct {
	Year        int     `json:"year" csv:"year"`
	Month       string  `json:"month" csv:"month"`
	Week        int     `json:"week" csv:"week"`
	Temperature float64 `json:"temperature" csv:"temperature"`
	Humidity    float64 `json:"humidity" csv:"humidity"`
	Weather     string  `json:"weather" csv:"weather"`
}

// Conditions is the seasonal weather driver. It is not safe for concurrent
// use.
type Conditions struct {
	climate Climate
	rng     *rand.Rand

	year, month, week int

	temperature float64
	humidity    float64
	weather     string

	// pollutionReduction is carried through to samples unchanged; it is a
	// policy dial rather than a weather quantity.
	pollutionReduction float64
}

// New returns a driver positioned at the first week of StartYear with an
// initial sample drawn around January's normals.
func New(climate Climate, r *rand.Rand) *Conditions {
	c := &Conditions{
		climate:     climate,
		rng:         r,
		year:        StartYear,
		month:       1,
		week:        1,
		temperature: 20,
		humidity:    60,
		weather:     WeatherClear,
	}
	c.initialSample()
	return c
}

func (c *Conditions) initialSample() {
	p := c.climate.Month(c.month)
	c.temperature = round1(p.BaseTemp + rng.Uniform(c.rng, -p.TempRange, p.TempRange))
	c.humidity = round1(p.BaseHumidity + rng.Uniform(c.rng, -p.HumidityRange, p.HumidityRange))
	c.weather = rng.Pick(c.rng, p.Weather)
}

// Advance moves the calendar forward one week and draws a new sample.
func (c *Conditions) Advance() Sample {
	c.week++
	if c.week > WeeksPerMonth {
		c.week = 1
		c.month++
		if c.month > 12 {
			c.month = 1
			c.year++
		}
	}

	p := c.climate.Month(c.month)

	deviation := c.temperature - p.BaseTemp
	correction := -MeanReversion*deviation + SeasonOf(c.month).Correction()
	noise := rng.Uniform(c.rng, -p.TempRange/3, p.TempRange/3)
	lo := p.BaseTemp - 1.5*p.TempRange
	hi := p.BaseTemp + 1.5*p.TempRange
	c.temperature = round1(clamp(c.temperature+correction+noise, lo, hi))

	c.humidity += rng.Uniform(c.rng, -p.HumidityRange, p.HumidityRange)
	c.humidity = round1(clamp(c.humidity, 0, 100))

	c.weather = c.pickWeather(p)
	return c.Current()
}

func (c *Conditions) pickWeather(p MonthProfile) string {
	w := WeatherFromTemperature(c.temperature)
	if h := WeatherFromHumidity(c.humidity); h != "" {
		w = h
	}
	if !slices.Contains(p.Weather, w) {
		w = rng.Pick(c.rng, p.Weather)
	}
	if c.rng.Float64() < UnexpectedWeatherChance {
		w = rng.Pick(c.rng, unexpectedWeather)
	}
	return w
}

// WeatherFromTemperature maps a temperature onto its band label.
func WeatherFromTemperature(t float64) string {
	switch {
	case t > 35:
		return WeatherExtremelyHot
	case t > 30:
		return WeatherHotAndSunny
	case t > 25:
		return WeatherWarm
	case t > 20:
		return WeatherMild
	case t > 10:
		return WeatherCool
	case t > 0:
		return WeatherCold
	default:
		return WeatherFreezing
	}
}

// WeatherFromHumidity returns the humidity override label, or "" when the air
// is dry enough for the temperature band to stand.
func WeatherFromHumidity(h float64) string {
	switch {
	case h > 80:
		return WeatherHeavyRain
	case h > 70:
		return WeatherRainy
	case h > 50:
		return WeatherCloudy
	default:
		return ""
	}
}

// SetPollutionReduction sets the policy value echoed in every sample.
func (c *Conditions) SetPollutionReduction(v float64) {
	c.pollutionReduction = clamp(v, 0, 100)
}

// Current returns the latest sample without advancing.
func (c *Conditions) Current() Sample {
	return Sample{
		Temperature:        c.temperature,
		Humidity:           c.humidity,
		PollutionReduction: c.pollutionReduction,
		Weather:            c.weather,
	}
}

// Date returns the calendar position.
func (c *Conditions) Date() (year, month, week int) { return c.year, c.month, c.week }

// Season returns the season of the current month.
func (c *Conditions) Season() Season { return SeasonOf(c.month) }

// Snapshot returns the current state for reporting.
func (c *Conditions) Snapshot() Report {
	return Report{
		Year:        c.year,
		Month:       MonthName(c.month),
		Week:        c.week,
		Temperature: c.temperature,
		Humidity:    c.humidity,
		Weather:     c.weather,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
