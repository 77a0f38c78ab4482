// Package environment holds the abiotic state of the grid and the stress it
// puts on each species.
package environment

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Dial enumerates the continuous environmental controls.
type Dial int

const (
	Temperature Dial = iota
	Humidity
	PollutionReduction
)

// ErrUnknownDial reports a dial name that matches none of the controls.
var ErrUnknownDial = errors.New("unknown environment dial")

// Dials lists every control in display order.
var Dials = []Dial{Temperature, Humidity, PollutionReduction}

// Bounds describes the domain of a dial.
type Bounds struct {
	Min, Max float64
	Unit     string
}

// Clamp limits v to the bounds.
func (b Bounds) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return b.Min
	}
	return math.Max(b.Min, math.Min(b.Max, v))
}

// Bounds returns the domain of d.
func (d Dial) Bounds() Bounds {
	switch d {
	case Temperature:
		return Bounds{Min: 0, Max: 40, Unit: "°C"}
	case Humidity:
		return Bounds{Min: 0, Max: 100, Unit: "%"}
	case PollutionReduction:
		return Bounds{Min: 0, Max: 100, Unit: "%"}
	default:
		panic(fmt.Sprintf("environment: unknown dial %d", int(d)))
	}
}

// Key is the stable snake_case identifier of d.
func (d Dial) Key() string {
	switch d {
	case Temperature:
		return "temperature"
	case Humidity:
		return "humidity"
	case PollutionReduction:
		return "pollution_reduction"
	default:
		return fmt.Sprintf("dial(%d)", int(d))
	}
}

// Label is the human readable name of d.
func (d Dial) Label() string {
	switch d {
	case Temperature:
		return "Temperature"
	case Humidity:
		return "Humidity"
	case PollutionReduction:
		return "Pollution reduction"
	default:
		return d.Key()
	}
}

func (d Dial) String() string { return d.Key() }

// ParseDial resolves a dial from its key, label or a common short name.
func ParseDial(name string) (Dial, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "temperature", "temp", "t":
		return Temperature, nil
	case "humidity", "hum", "h":
		return Humidity, nil
	case "pollution_reduction", "pollution reduction", "pollution", "p":
		return PollutionReduction, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDial, name)
}

// DefaultWeather is the label used before any sample is applied.
const DefaultWeather = "Clear"

// State is the clamped environmental state shared by the whole grid.
type State struct {
	temperature        float64
	humidity           float64
	pollutionReduction float64
	weather            string
}

// NewState returns the stock environment: 20 °C, 50 % humidity, no pollution
// reduction, clear weather.
func NewState() State {
	return State{temperature: 20, humidity: 50, weather: DefaultWeather}
}

// Temperature returns the current temperature in °C.
func (s State) Temperature() float64 { return s.temperature }

// Humidity returns the current relative humidity in percent.
func (s State) Humidity() float64 { return s.humidity }

// PollutionReduction returns the pollution reduction in percent.
func (s State) PollutionReduction() float64 { return s.pollutionReduction }

// Weather returns the weather label.
func (s State) Weather() string { return s.weather }

// Get returns the value of dial d.
func (s State) Get(d Dial) float64 {
	switch d {
	case Temperature:
		return s.temperature
	case Humidity:
		return s.humidity
	case PollutionReduction:
		return s.pollutionReduction
	default:
		panic(fmt.Sprintf("environment: unknown dial %d", int(d)))
	}
}

// Set clamps v to the domain of d and stores it.
func (s *State) Set(d Dial, v float64) {
	v = d.Bounds().Clamp(v)
	switch d {
	case Temperature:
		s.temperature = v
	case Humidity:
		s.humidity = v
	case PollutionReduction:
		s.pollutionReduction = v
	default:
		panic(fmt.Sprintf("environment: unknown dial %d", int(d)))
	}
}

// SetWeather stores the weather label; blank labels reset to DefaultWeather.
func (s *State) SetWeather(label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultWeather
	}
	s.weather = label
}
