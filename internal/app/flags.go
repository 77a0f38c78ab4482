package app

import (
	"flag"

	"invasion-ca/internal/config"
)

// Config represents the command-line parameters for the GUI.
type Config struct {
	ConfigPath string
	Scale      int
	TPS        int
	PanelWidth int
	Seed       int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 6, TPS: 10, PanelWidth: 300}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML config overlaid on the embedded defaults")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.PanelWidth, "panel", c.PanelWidth, "HUD panel width in pixels")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "grid seed (0 keeps the configured seed)")
}

// Load reads the session configuration and applies the flag overrides.
func (c *Config) Load() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.Seed != 0 {
		cfg.Grid.Seed = c.Seed
	}
	if c.TPS > 0 {
		cfg.Session.TPS = c.TPS
	}
	return cfg, nil
}
