// Package config loads the YAML configuration shared by the invasion
// binaries.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"invasion-ca/internal/environment"
	"invasion-ca/internal/sims/invasion"
	"invasion-ca/internal/species"
	"invasion-ca/internal/theory"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid reports a configuration value outside its domain.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every tunable of a session and its outputs.
type Config struct {
	Grid        GridConfig          `yaml:"grid"`
	Seeding     invasion.SeedPolicy `yaml:"seeding"`
	Species     SpeciesConfig       `yaml:"species"`
	Environment EnvironmentConfig   `yaml:"environment"`
	Conditions  ConditionsConfig    `yaml:"conditions"`
	Session     SessionConfig       `yaml:"session"`
	Output      OutputConfig        `yaml:"output"`
}

// GridConfig sizes the automaton and picks the invasion theory.
type GridConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Seed   int64  `yaml:"seed"`
	Theory string `yaml:"theory"` // canonical name or alias, see theory.Parse
}

// SpeciesConfig holds the survival profile of each living species.
type SpeciesConfig struct {
	Native     species.Profile `yaml:"native"`
	Invasive   species.Profile `yaml:"invasive"`
	Endangered species.Profile `yaml:"endangered"`
}

// EnvironmentConfig is the environment applied before the first tick. When
// Conditions.Enabled is set, the weather driver's initial sample replaces
// Temperature, Humidity and Weather; only PollutionReduction carries over.
type EnvironmentConfig struct {
	Temperature        float64 `yaml:"temperature"`
	Humidity           float64 `yaml:"humidity"`
	PollutionReduction float64 `yaml:"pollution_reduction"`
	Weather            string  `yaml:"weather"`
}

// ConditionsConfig controls the seasonal weather driver.
type ConditionsConfig struct {
	Enabled bool  `yaml:"enabled"` // false keeps the environment static between directives
	Seed    int64 `yaml:"seed"`
}

// SessionConfig sizes the per-session logs and the headless run.
type SessionConfig struct {
	HistoryLength    int `yaml:"history_length"`
	EndangeredWindow int `yaml:"endangered_window"`
	FeedbackLimit    int `yaml:"feedback_limit"`
	Ticks            int `yaml:"ticks"`
	TPS              int `yaml:"tps"`
}

// OutputConfig names the report files and the status stream address. An
// empty Dir disables file output; an empty Listen disables the stream.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	CSVFile   string `yaml:"csv_file"`
	ChartFile string `yaml:"chart_file"`
	Listen    string `yaml:"listen"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first value that would prevent a session from
// starting.
func (c *Config) Validate() error {
	if _, err := c.InvasionConfig(); err != nil {
		return err
	}
	s := c.Session
	if s.HistoryLength < 1 || s.EndangeredWindow < 1 || s.FeedbackLimit < 1 {
		return fmt.Errorf("%w: session windows must be positive (history %d, endangered %d, feedback %d)",
			ErrInvalid, s.HistoryLength, s.EndangeredWindow, s.FeedbackLimit)
	}
	if s.Ticks < 0 {
		return fmt.Errorf("%w: ticks %d", ErrInvalid, s.Ticks)
	}
	if s.TPS < 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, s.TPS)
	}
	return nil
}

// InvasionConfig converts the grid, seeding and species sections into the
// engine configuration.
func (c *Config) InvasionConfig() (invasion.Config, error) {
	t, err := theory.Parse(c.Grid.Theory)
	if err != nil {
		return invasion.Config{}, err
	}
	ic := invasion.DefaultConfig()
	ic.Width = c.Grid.Width
	ic.Height = c.Grid.Height
	ic.Seed = c.Grid.Seed
	ic.Theory = t
	ic.Seeding = c.Seeding
	ic.Profiles[species.Native] = c.Species.Native
	ic.Profiles[species.Invasive] = c.Species.Invasive
	ic.Profiles[species.Endangered] = c.Species.Endangered
	ic.HistoryWindow = c.Session.EndangeredWindow
	if err := ic.Validate(); err != nil {
		return invasion.Config{}, err
	}
	return ic, nil
}

// Dial returns the configured starting value of d.
func (e EnvironmentConfig) Dial(d environment.Dial) float64 {
	switch d {
	case environment.Temperature:
		return e.Temperature
	case environment.Humidity:
		return e.Humidity
	default:
		return e.PollutionReduction
	}
}

// CSVPath joins Output.Dir and Output.CSVFile, or returns "" when file
// output is disabled.
func (c *Config) CSVPath() string { return c.outputPath(c.Output.CSVFile) }

// ChartPath joins Output.Dir and Output.ChartFile, or returns "" when file
// output is disabled.
func (c *Config) ChartPath() string { return c.outputPath(c.Output.ChartFile) }

func (c *Config) outputPath(name string) string {
	if c.Output.Dir == "" || name == "" {
		return ""
	}
	return filepath.Join(c.Output.Dir, name)
}

// WriteYAML writes the configuration to a file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
