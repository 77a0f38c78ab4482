package directive

import (
	"errors"
	"testing"

	"invasion-ca/internal/environment"
	"invasion-ca/internal/sims/invasion"
)

func TestParseCanonicalForm(t *testing.T) {
	updates, err := Parse("Temperature: 25\nHumidity: 60\nPollution: 30")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Update{
		{Dial: environment.Temperature, Value: 25},
		{Dial: environment.Humidity, Value: 60},
		{Dial: environment.PollutionReduction, Value: 30},
	}
	if len(updates) != len(want) {
		t.Fatalf("got %d updates, want %d", len(updates), len(want))
	}
	for i := range want {
		if updates[i] != want[i] {
			t.Errorf("update %d = %+v, want %+v", i, updates[i], want[i])
		}
	}
}

func TestParseToleratesTyposUnitsAndComments(t *testing.T) {
	updates, err := Parse("# spring\n  temprature = 18°C ; HUMIDITY: 70%\nweather: Foggy\n\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(updates) != 3 {
		t.Fatalf("expected 3 updates, got %v", updates)
	}
	if updates[0].Dial != environment.Temperature || updates[0].Value != 18 {
		t.Fatalf("typo not resolved: %+v", updates[0])
	}
	if updates[1].Dial != environment.Humidity || updates[1].Value != 70 {
		t.Fatalf("unit not stripped: %+v", updates[1])
	}
	if !updates[2].Weather || updates[2].Label != "Foggy" {
		t.Fatalf("weather not parsed: %+v", updates[2])
	}
}

func TestParseRejectsUntrustedInput(t *testing.T) {
	tests := []struct {
		text string
		want error
	}{
		{"rainfall: 20", ErrUnknownKey},
		{"temperature: hot", ErrBadValue},
		{"humidity: NaN", ErrBadValue},
		{"temperature 25", ErrMalformed},
		{"weather:   ", ErrBadValue},
		{"temperature: 77F", ErrBadValue},
		{"temperature: 50°F", ErrBadValue},
		{"humidity: 60°C", ErrBadValue},
		{"temperature: 20%", ErrBadValue},
	}
	for _, tt := range tests {
		updates, err := Parse(tt.text)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.text, err, tt.want)
		}
		if updates != nil {
			t.Errorf("Parse(%q) returned updates despite error", tt.text)
		}
	}
}

func TestParseAcceptsMatchingUnits(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"temperature: 25°C", 25},
		{"temperature: 25 C", 25},
		{"temperature: 25", 25},
		{"humidity: 60 %", 60},
		{"pollution: 30%", 30},
	}
	for _, tt := range tests {
		updates, err := Parse(tt.text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.text, err)
		}
		if len(updates) != 1 || updates[0].Value != tt.want {
			t.Errorf("Parse(%q) = %v, want value %v", tt.text, updates, tt.want)
		}
	}
}

func TestParseFailsWholeBatch(t *testing.T) {
	updates, err := Parse("temperature: 30\nsalinity: 4")
	if !errors.Is(err, ErrUnknownKey) || updates != nil {
		t.Fatalf("expected batch rejection, got %v / %v", updates, err)
	}
}

func TestApplyClampsThroughWorld(t *testing.T) {
	cfg := invasion.DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	world, err := invasion.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	updates, err := Parse("temperature: 90\npollution reduction: 45\nweather: Windy")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	Apply(world, updates)
	env := world.Environment()
	if env.Temperature() != 40 || env.PollutionReduction() != 45 || env.Weather() != "Windy" {
		t.Fatalf("unexpected environment after apply: %v %v %q", env.Temperature(), env.PollutionReduction(), env.Weather())
	}
}
