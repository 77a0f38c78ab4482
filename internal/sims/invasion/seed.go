package invasion

import (
	"fmt"

	"invasion-ca/internal/species"
)

// Seed clears the grid, latches and history, then populates it with p.
func (w *World) Seed(p SeedPolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	w.seed(p)
	return nil
}

// seed repopulates the grid with an already validated policy.
func (w *World) seed(p SeedPolicy) {
	w.clear()
	switch p.Kind {
	case SeedUniform:
		w.seedUniform(p)
	case SeedClustered:
		w.seedClusters(p)
	}
	w.finishSeeding()
}

// SeedCounts clears the grid and places exactly the given number of cells per
// species on distinct random positions.
func (w *World) SeedCounts(native, invasive, endangered int) error {
	total := w.cur.Len()
	if native < 0 || invasive < 0 || endangered < 0 || native+invasive+endangered > total {
		return fmt.Errorf("%w: counts %d/%d/%d do not fit %d cells", ErrInvalidConfig, native, invasive, endangered, total)
	}
	w.clear()
	w.placeOnEmpty(w.cur, species.Native, native)
	w.placeOnEmpty(w.cur, species.Invasive, invasive)
	w.placeOnEmpty(w.cur, species.Endangered, endangered)
	w.finishSeeding()
	return nil
}

func (w *World) clear() {
	w.cur.Clear()
	w.next.Clear()
	w.victory = false
	w.gameOver = false
	w.generation = 0
	w.endangered.Reset()
}

func (w *World) finishSeeding() {
	w.seeded = true
	w.recordEndangered()
}

// seedUniform makes fraction×N placement draws per species. Natives land
// anywhere; the others only on cells still empty, so collisions leave fewer
// cells than draws.
func (w *World) seedUniform(p SeedPolicy) {
	cells := w.cur.Cells()
	total := len(cells)
	draws := []struct {
		s    species.Species
		frac float64
	}{
		{species.Native, p.NativeFraction},
		{species.Invasive, p.InvasiveFraction},
		{species.Endangered, p.EndangeredFraction},
	}
	for _, d := range draws {
		n := int(float64(total) * d.frac)
		for i := 0; i < n; i++ {
			idx := w.rng.IntN(total)
			if d.s != species.Native && cells[idx] != uint8(species.Empty) {
				continue
			}
			cells[idx] = uint8(d.s)
		}
	}
}

// seedClusters drops ClustersPerSpecies square clusters of side ClusterSize
// per species, filling each cell with probability ClusterDensity. Clusters
// are clipped at the border and later species overwrite earlier ones.
func (w *World) seedClusters(p SeedPolicy) {
	half := p.ClusterSize / 2
	for _, s := range species.Living {
		for c := 0; c < p.ClustersPerSpecies; c++ {
			cx := w.clusterCentre(w.w, p.ClusterSize)
			cy := w.clusterCentre(w.h, p.ClusterSize)
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					x, y := cx+dx, cy+dy
					if !w.cur.InBounds(x, y) {
						continue
					}
					if w.rng.Float64() < p.ClusterDensity {
						w.cur.Set(x, y, uint8(s))
					}
				}
			}
		}
	}
}

// clusterCentre keeps centres a cluster's width from the edges when the
// dimension allows it.
func (w *World) clusterCentre(extent, size int) int {
	if extent > 2*size {
		return size + w.rng.IntN(extent-2*size)
	}
	return w.rng.IntN(extent)
}
