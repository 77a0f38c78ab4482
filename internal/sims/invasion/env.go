package invasion

import (
	"invasion-ca/internal/conditions"
	"invasion-ca/internal/environment"
)

// Environment returns a copy of the current environmental state.
func (w *World) Environment() environment.State { return w.env }

// SetTemperature clamps degrees to [0, 40] °C and recomputes the rates.
func (w *World) SetTemperature(degrees float64) { w.SetDial(environment.Temperature, degrees) }

// SetHumidity clamps percentage to [0, 100] and recomputes the rates.
func (w *World) SetHumidity(percentage float64) { w.SetDial(environment.Humidity, percentage) }

// SetPollutionReduction clamps percentage to [0, 100] and recomputes the
// rates.
func (w *World) SetPollutionReduction(percentage float64) {
	w.SetDial(environment.PollutionReduction, percentage)
}

// SetWeather stores the weather label and recomputes the rates.
func (w *World) SetWeather(label string) {
	w.env.SetWeather(label)
	w.recomputeRates()
}

// SetDial clamps v to the domain of d, stores it and recomputes the rates.
func (w *World) SetDial(d environment.Dial, v float64) {
	w.env.Set(d, v)
	w.recomputeRates()
}

// Apply pushes a complete environmental sample through the setters.
func (w *World) Apply(s conditions.Sample) {
	w.env.Set(environment.Temperature, s.Temperature)
	w.env.Set(environment.Humidity, s.Humidity)
	w.env.Set(environment.PollutionReduction, s.PollutionReduction)
	w.env.SetWeather(s.Weather)
	w.recomputeRates()
}
