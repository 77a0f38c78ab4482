package invasion

import (
	"errors"
	"fmt"
	"strconv"

	"invasion-ca/internal/species"
	"invasion-ca/internal/theory"
)

// ErrInvalidConfig reports a configuration that cannot produce a grid.
var ErrInvalidConfig = errors.New("invalid invasion config")

// SeedKind selects the initial spatial distribution.
type SeedKind string

const (
	// SeedUniform scatters a fraction of the grid per species at random.
	SeedUniform SeedKind = "uniform"
	// SeedClustered drops square clusters around random centres.
	SeedClustered SeedKind = "clustered"
)

// SeedPolicy parameterises Seed.
type SeedPolicy struct {
	Kind SeedKind `yaml:"kind"`

	// Placement draws per species for SeedUniform, as fractions of the grid.
	NativeFraction     float64 `yaml:"native_fraction"`
	InvasiveFraction   float64 `yaml:"invasive_fraction"`
	EndangeredFraction float64 `yaml:"endangered_fraction"`

	ClustersPerSpecies int     `yaml:"clusters_per_species"`
	ClusterSize        int     `yaml:"cluster_size"`
	ClusterDensity     float64 `yaml:"cluster_density"`
}

// DefaultSeedPolicy returns the uniform 50/20/5 policy with the clustered
// fallback parameters filled in.
func DefaultSeedPolicy() SeedPolicy {
	return SeedPolicy{
		Kind:               SeedUniform,
		NativeFraction:     0.5,
		InvasiveFraction:   0.2,
		EndangeredFraction: 0.05,
		ClustersPerSpecies: 3,
		ClusterSize:        5,
		ClusterDensity:     0.7,
	}
}

// Validate checks the policy for the selected kind.
func (p SeedPolicy) Validate() error {
	switch p.Kind {
	case SeedUniform:
		for _, f := range []float64{p.NativeFraction, p.InvasiveFraction, p.EndangeredFraction} {
			if f < 0 || f > 1 {
				return fmt.Errorf("%w: seed fraction %v outside [0, 1]", ErrInvalidConfig, f)
			}
		}
	case SeedClustered:
		if p.ClustersPerSpecies < 0 || p.ClusterSize <= 0 {
			return fmt.Errorf("%w: clusters %d of size %d", ErrInvalidConfig, p.ClustersPerSpecies, p.ClusterSize)
		}
		if p.ClusterDensity < 0 || p.ClusterDensity > 1 {
			return fmt.Errorf("%w: cluster density %v outside [0, 1]", ErrInvalidConfig, p.ClusterDensity)
		}
	default:
		return fmt.Errorf("%w: unknown seed kind %q", ErrInvalidConfig, p.Kind)
	}
	return nil
}

// Config controls the invasion grid.
type Config struct {
	Width  int
	Height int

	Seed   int64
	Theory theory.Theory

	Seeding  SeedPolicy
	Profiles species.Profiles

	// HistoryWindow is the number of endangered-density samples used by
	// EndangeredStatus.
	HistoryWindow int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:         100,
		Height:        100,
		Seed:          1337,
		Theory:        theory.EnemyRelease,
		Seeding:       DefaultSeedPolicy(),
		Profiles:      species.DefaultProfiles(),
		HistoryWindow: 10,
	}
}

// Validate reports the first problem that would prevent construction.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.HistoryWindow < 1 {
		return fmt.Errorf("%w: history window %d", ErrInvalidConfig, c.HistoryWindow)
	}
	if _, err := theory.New(c.Theory); err != nil {
		return err
	}
	for _, s := range species.Living {
		p := c.Profiles[s]
		if p.Temperature.Width() < 0 || p.Humidity.Width() < 0 {
			return fmt.Errorf("%w: inverted survival range for %s", ErrInvalidConfig, s)
		}
	}
	return c.Seeding.Validate()
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparsable values are errors rather than silently ignored.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	ints := map[string]*int{
		"w":                    &c.Width,
		"h":                    &c.Height,
		"history_window":       &c.HistoryWindow,
		"clusters_per_species": &c.Seeding.ClustersPerSpecies,
		"cluster_size":         &c.Seeding.ClusterSize,
	}
	for key, dst := range ints {
		if v, ok := cfg[key]; ok {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return c, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
			}
			*dst = parsed
		}
	}
	floats := map[string]*float64{
		"native_fraction":     &c.Seeding.NativeFraction,
		"invasive_fraction":   &c.Seeding.InvasiveFraction,
		"endangered_fraction": &c.Seeding.EndangeredFraction,
		"cluster_density":     &c.Seeding.ClusterDensity,
	}
	for key, dst := range floats {
		if v, ok := cfg[key]; ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return c, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
			}
			*dst = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("%w: seed=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Seed = parsed
	}
	if v, ok := cfg["theory"]; ok {
		t, err := theory.Parse(v)
		if err != nil {
			return c, err
		}
		c.Theory = t
	}
	if v, ok := cfg["seeding"]; ok {
		c.Seeding.Kind = SeedKind(v)
	}
	return c, c.Validate()
}
