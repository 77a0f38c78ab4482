package invasion

import (
	"strconv"

	"invasion-ca/internal/core"
	"invasion-ca/internal/environment"
	"invasion-ca/internal/species"
)

func (w *World) Parameters() core.ParameterSnapshot {
	d := w.Densities().Percent()
	status, pct := w.EndangeredReport()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				stringParam("theory", "Theory", string(w.strategy.Theory())),
				stringParam("seeding", "Seeding", string(w.cfg.Seeding.Kind)),
				intParam("generation", "Generation", w.generation),
			},
		},
		{
			Name: "Environment",
			Params: []core.Parameter{
				dialParam(environment.Temperature, w.env),
				dialParam(environment.Humidity, w.env),
				dialParam(environment.PollutionReduction, w.env),
				stringParam("weather", "Weather", w.env.Weather()),
				floatParam("pressure", "Environmental pressure", w.env.Pressure()),
			},
		},
		{
			Name: "Rates",
			Params: []core.Parameter{
				floatParam("native_growth", "Native growth", w.growth[species.Native]),
				floatParam("native_death", "Native death", w.death[species.Native]),
				floatParam("invasive_growth", "Invasive growth", w.growth[species.Invasive]),
				floatParam("invasive_death", "Invasive death", w.death[species.Invasive]),
				floatParam("endangered_growth", "Endangered growth", w.growth[species.Endangered]),
				floatParam("endangered_death", "Endangered death", w.death[species.Endangered]),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				percentParam("native_pct", "Native", d.Native),
				percentParam("invasive_pct", "Invasive", d.Invasive),
				percentParam("endangered_pct", "Endangered", pct),
				stringParam("endangered_status", "Endangered status", string(status)),
				boolParam("victory", "Victory", w.victory),
				boolParam("game_over", "Game over", w.gameOver),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls exposes the three environmental dials to the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	controls := make([]core.ParameterControl, 0, len(environment.Dials))
	for _, d := range environment.Dials {
		b := d.Bounds()
		step := 1.0
		if d == environment.PollutionReduction {
			step = 5
		}
		controls = append(controls, core.ParameterControl{
			Key:   d.Key(),
			Label: d.Label(),
			Unit:  b.Unit,
			Step:  step,
			Min:   b.Min,
			Max:   b.Max,
		})
	}
	return controls
}

// SetFloatParameter routes a dial key to SetDial. Values are clamped.
func (w *World) SetFloatParameter(key string, value float64) bool {
	d, err := environment.ParseDial(key)
	if err != nil {
		return false
	}
	w.SetDial(d, value)
	return true
}

func dialParam(d environment.Dial, s environment.State) core.Parameter {
	p := floatParam(d.Key(), d.Label(), s.Get(d))
	p.Unit = d.Bounds().Unit
	return p
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func percentParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', 1, 64),
		Unit:  "%",
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return stringParam(key, label, strconv.FormatBool(value))
}
