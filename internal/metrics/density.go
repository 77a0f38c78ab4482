// Package metrics derives population coverage figures from grid counts and
// keeps short rolling histories of them.
package metrics

import (
	"invasion-ca/internal/species"
)

// Densities holds the fraction of the grid covered by each living species.
type Densities struct {
	Native     float64 `json:"native" csv:"native"`
	Invasive   float64 `json:"invasive" csv:"invasive"`
	Endangered float64 `json:"endangered" csv:"endangered"`
}

// FromCounts converts per-tag cell counts into fractions of total.
func FromCounts(counts [species.Count]int, total int) Densities {
	if total <= 0 {
		return Densities{}
	}
	t := float64(total)
	return Densities{
		Native:     float64(counts[species.Native]) / t,
		Invasive:   float64(counts[species.Invasive]) / t,
		Endangered: float64(counts[species.Endangered]) / t,
	}
}

// Of returns the density of s; non-living tags report 0.
func (d Densities) Of(s species.Species) float64 {
	switch s {
	case species.Native:
		return d.Native
	case species.Invasive:
		return d.Invasive
	case species.Endangered:
		return d.Endangered
	default:
		return 0
	}
}

// Competitors is the combined native and invasive cover used by the win and
// loss conditions.
func (d Densities) Competitors() float64 { return d.Native + d.Invasive }

// Percent returns d scaled to percentages.
func (d Densities) Percent() Densities {
	return Densities{Native: d.Native * 100, Invasive: d.Invasive * 100, Endangered: d.Endangered * 100}
}
