// Package species defines the cell tags of the invasion automaton and the
// survival profile attached to each living tag.
package species

import (
	"errors"
	"fmt"
)

// Species is the tag stored in every grid cell.
type Species uint8

const (
	Empty Species = iota
	Native
	Invasive
	Endangered
)

// Count is the number of tag values, including Empty.
const Count = 4

// ErrInvalidSpecies reports a tag outside the living species set.
var ErrInvalidSpecies = errors.New("invalid species")

// Living lists the populated tags in the fixed order used by colonisation.
var Living = [...]Species{Native, Invasive, Endangered}

// Valid reports whether s is one of the four cell tags.
func (s Species) Valid() bool { return s < Count }

// IsLiving reports whether s is a populated tag.
func (s Species) IsLiving() bool { return s >= Native && s <= Endangered }

// Check returns ErrInvalidSpecies unless s is a living tag.
func Check(s Species) error {
	if !s.IsLiving() {
		return fmt.Errorf("%w: %d", ErrInvalidSpecies, s)
	}
	return nil
}

func (s Species) String() string {
	switch s {
	case Empty:
		return "empty"
	case Native:
		return "native"
	case Invasive:
		return "invasive"
	case Endangered:
		return "endangered"
	default:
		return fmt.Sprintf("species(%d)", uint8(s))
	}
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Width returns Max-Min.
func (r Range) Width() float64 { return r.Max - r.Min }

// ContainsWithTolerance reports whether v lies inside the range widened on
// both sides by frac of its width.
func (r Range) ContainsWithTolerance(v, frac float64) bool {
	tol := r.Width() * frac
	return v >= r.Min-tol && v <= r.Max+tol
}

// Profile holds the environment-independent traits of a species.
type Profile struct {
	Temperature Range `yaml:"temperature"`
	Humidity    Range `yaml:"humidity"`

	// MinPopulation is the density below which the recovery pass may
	// repopulate the species.
	MinPopulation float64 `yaml:"min_population"`
	// RecoveryRate is the fraction of the grid repopulated per pass.
	RecoveryRate float64 `yaml:"recovery_rate"`
	// PollutionThreshold is the pollution reduction (percent) required
	// before conditions count as favourable.
	PollutionThreshold float64 `yaml:"pollution_threshold"`
}

// Profiles maps each living species to its profile. Index 0 is unused.
type Profiles [Count]Profile

// DefaultProfiles returns the stock survival profiles.
func DefaultProfiles() Profiles {
	var p Profiles
	p[Native] = Profile{
		Temperature:        Range{Min: 5, Max: 35},
		Humidity:           Range{Min: 20, Max: 90},
		MinPopulation:      0.05,
		RecoveryRate:       0.03,
		PollutionThreshold: 30,
	}
	p[Invasive] = Profile{
		Temperature:        Range{Min: 15, Max: 30},
		Humidity:           Range{Min: 40, Max: 70},
		MinPopulation:      0.02,
		RecoveryRate:       0.04,
		PollutionThreshold: 0,
	}
	p[Endangered] = Profile{
		Temperature:        Range{Min: 18, Max: 25},
		Humidity:           Range{Min: 45, Max: 65},
		MinPopulation:      0.01,
		RecoveryRate:       0.02,
		PollutionThreshold: 30,
	}
	return p
}
