package conditions

import (
	"slices"
	"testing"

	"invasion-ca/pkg/rng"
)

func TestAdvanceCalendarRollover(t *testing.T) {
	c := New(MaritimeClimate(), rng.New(1))

	for i := 0; i < 3; i++ {
		c.Advance()
	}
	if y, m, w := c.Date(); y != StartYear || m != 1 || w != 4 {
		t.Fatalf("after 3 advances got %d-%d w%d", y, m, w)
	}
	c.Advance()
	if _, m, w := c.Date(); m != 2 || w != 1 {
		t.Fatalf("expected week rollover into Feb, got month %d week %d", m, w)
	}

	for i := 0; i < 44; i++ {
		c.Advance()
	}
	if y, m, w := c.Date(); y != StartYear+1 || m != 1 || w != 1 {
		t.Fatalf("expected new year, got %d-%d w%d", y, m, w)
	}
	if got := c.Snapshot().Month; got != "Jan" {
		t.Fatalf("month name = %q", got)
	}
}

func TestAdvanceStaysWithinMonthBounds(t *testing.T) {
	climate := MaritimeClimate()
	c := New(climate, rng.New(99))
	for i := 0; i < 500; i++ {
		s := c.Advance()
		_, m, _ := c.Date()
		p := climate.Month(m)
		lo, hi := p.BaseTemp-1.5*p.TempRange, p.BaseTemp+1.5*p.TempRange
		if s.Temperature < lo-1e-9 || s.Temperature > hi+1e-9 {
			t.Fatalf("tick %d: temperature %.1f outside [%.1f, %.1f]", i, s.Temperature, lo, hi)
		}
		if s.Humidity < 0 || s.Humidity > 100 {
			t.Fatalf("tick %d: humidity %.1f out of range", i, s.Humidity)
		}
		if !slices.Contains(p.Weather, s.Weather) && !slices.Contains(unexpectedWeather, s.Weather) {
			t.Fatalf("tick %d: weather %q not allowed in month %d", i, s.Weather, m)
		}
	}
}

func TestAdvanceDeterministic(t *testing.T) {
	a := New(MaritimeClimate(), rng.New(2024))
	b := New(MaritimeClimate(), rng.New(2024))
	for i := 0; i < 100; i++ {
		if sa, sb := a.Advance(), b.Advance(); sa != sb {
			t.Fatalf("tick %d diverged: %+v vs %+v", i, sa, sb)
		}
	}
}

func TestUnexpectedWeatherIsOccasional(t *testing.T) {
	// A single-label month makes every other label an overlay hit.
	var climate Climate
	for i := range climate {
		climate[i] = MonthProfile{BaseTemp: 20, TempRange: 1, BaseHumidity: 40, HumidityRange: 0, Weather: []string{WeatherSunny}}
	}
	c := New(climate, rng.New(5))
	overlay := 0
	const ticks = 2000
	for i := 0; i < ticks; i++ {
		if c.Advance().Weather != WeatherSunny {
			overlay++
		}
	}
	// Overlay picks Windy/Foggy/Partly Cloudy/Overcast with p=0.1 each tick.
	if overlay < ticks/20 || overlay > ticks/6 {
		t.Fatalf("overlay rate %d/%d far from 10%%", overlay, ticks)
	}
}

func TestWeatherBands(t *testing.T) {
	temps := []struct {
		t    float64
		want string
	}{
		{-2, WeatherFreezing},
		{0, WeatherFreezing},
		{5, WeatherCold},
		{10, WeatherCold},
		{15, WeatherCool},
		{22, WeatherMild},
		{28, WeatherWarm},
		{33, WeatherHotAndSunny},
		{36, WeatherExtremelyHot},
	}
	for _, tt := range temps {
		if got := WeatherFromTemperature(tt.t); got != tt.want {
			t.Errorf("WeatherFromTemperature(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
	hums := map[float64]string{85: WeatherHeavyRain, 75: WeatherRainy, 60: WeatherCloudy, 50: ""}
	for h, want := range hums {
		if got := WeatherFromHumidity(h); got != want {
			t.Errorf("WeatherFromHumidity(%v) = %q, want %q", h, got, want)
		}
	}
}

func TestSeasonCorrection(t *testing.T) {
	want := map[int]float64{1: -0.5, 4: 0.3, 7: 0.5, 10: -0.3, 12: -0.5}
	for m, c := range want {
		if got := SeasonOf(m).Correction(); got != c {
			t.Errorf("month %d correction = %v, want %v", m, got, c)
		}
	}
}

func TestPollutionReductionCarriedThrough(t *testing.T) {
	c := New(MaritimeClimate(), rng.New(3))
	c.SetPollutionReduction(150)
	if got := c.Advance().PollutionReduction; got != 100 {
		t.Fatalf("pollution reduction = %v, want 100", got)
	}
}
