// Package invasion implements the environment-aware competition automaton
// between native, invasive and endangered species.
package invasion

import (
	"fmt"
	"math"
	"math/rand/v2"

	"invasion-ca/internal/core"
	"invasion-ca/internal/environment"
	"invasion-ca/internal/metrics"
	"invasion-ca/internal/species"
	"invasion-ca/internal/theory"
	"invasion-ca/pkg/rng"
)

const (
	// favouredGrowth and unfavouredGrowth scale colonisation chances.
	favouredGrowth   = 1.2
	unfavouredGrowth = 0.8
	// unfavouredDeath scales the death chance outside the survival envelope.
	unfavouredDeath = 1.5
	// minRecoveryShare is the smallest share of the grid a recovery pass
	// repopulates.
	minRecoveryShare = 0.02
)

// World stores the invasion grid and everything that drives its transitions.
type World struct {
	cfg Config

	w, h int

	cur  *core.Grid
	next *core.Grid

	env      environment.State
	strategy theory.Strategy
	profiles species.Profiles

	growth [species.Count]float64
	death  [species.Count]float64

	victory  bool
	gameOver bool
	seeded   bool

	generation int
	endangered *metrics.Window

	rng *rand.Rand

	empties []int
}

// New returns an unseeded grid. It fails on invalid dimensions or an unknown
// theory; nothing is defaulted silently.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategy, err := theory.New(cfg.Theory)
	if err != nil {
		return nil, err
	}
	w := &World{
		cfg:        cfg,
		w:          cfg.Width,
		h:          cfg.Height,
		cur:        core.NewGrid(cfg.Width, cfg.Height),
		next:       core.NewGrid(cfg.Width, cfg.Height),
		env:        environment.NewState(),
		strategy:   strategy,
		profiles:   cfg.Profiles,
		endangered: metrics.NewWindow(cfg.HistoryWindow),
		rng:        rng.New(cfg.Seed),
	}
	w.profiles[species.Invasive].RecoveryRate = strategy.Params().RecoveryRate
	w.recomputeRates()
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "invasion" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the current species tags in row-major order.
func (w *World) Cells() []uint8 { return w.cur.Cells() }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Strategy returns the active invasion strategy.
func (w *World) Strategy() theory.Strategy { return w.strategy }

// Generation counts completed steps since the last reset.
func (w *World) Generation() int { return w.generation }

// Seeded reports whether the grid has been populated.
func (w *World) Seeded() bool { return w.seeded }

// At returns the tag at (row, col). It panics outside the grid.
func (w *World) At(row, col int) species.Species {
	if !w.cur.InBounds(col, row) {
		panic(fmt.Sprintf("invasion: cell (%d, %d) outside %dx%d grid", row, col, w.h, w.w))
	}
	return species.Species(w.cur.At(col, row))
}

// Reset clears the grid, reseeds the random source and repopulates it with
// the configured seed policy. A zero seed reuses the configured seed. The
// environment is kept.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng = rng.New(seed)
	w.seed(w.cfg.Seeding)
}

// GrowthRate returns the current base colonisation rate of s.
func (w *World) GrowthRate(s species.Species) float64 {
	if !s.IsLiving() {
		return 0
	}
	return w.growth[s]
}

// DeathRate returns the current base death rate of s.
func (w *World) DeathRate(s species.Species) float64 {
	if !s.IsLiving() {
		return 0
	}
	return w.death[s]
}

// recomputeRates derives the per-species growth and death tables from the
// environment. The invasive rates go through the active strategy.
func (w *World) recomputeRates() {
	p := w.env.Pressure()

	w.growth[species.Native] = math.Max(0.02, 0.04-p*0.03)
	w.death[species.Native] = math.Min(0.02, 0.01+p*0.02)

	base := math.Max(0.03, 0.05-p*0.02)
	w.growth[species.Invasive] = w.strategy.GrowthModifier(base, math.Max(0, 1-p))
	w.death[species.Invasive] = w.strategy.Params().DeathRate + math.Min(0.005, p*0.01)

	w.growth[species.Endangered] = math.Max(0.01, 0.03-p*0.04)
	w.death[species.Endangered] = math.Min(0.03, 0.02+p*0.03)
}

// Favourable reports whether the current environment favours s.
func (w *World) Favourable(s species.Species) bool {
	if !s.IsLiving() {
		return false
	}
	return w.env.Favourable(w.profiles[s])
}

// PollutionOffset is the amount pollution reduction subtracts from the death
// chance of s. It never exceeds 0.5.
func (w *World) PollutionOffset(s species.Species) float64 {
	off := w.env.PollutionReduction() / 200
	if s == species.Endangered {
		off *= 0.5
	}
	return off
}

// DeathProbability returns the per-step death probability of an occupied
// cell of species s given the pre-step densities d, clamped to [0, 1].
func (w *World) DeathProbability(s species.Species, d metrics.Densities) float64 {
	if !s.IsLiving() {
		return 0
	}
	prof := w.profiles[s]
	tStress := w.env.TemperatureStress(prof)
	hStress := w.env.HumidityStress(prof)
	if s == species.Endangered {
		tStress *= 2
		hStress *= 2
	}
	p := w.death[s] + tStress + hStress - w.PollutionOffset(s)
	if !w.env.Favourable(prof) {
		p *= unfavouredDeath
	}
	if s == species.Native {
		p *= 1 + w.strategy.CompetitionEffect(d.Native, d.Invasive)
	}
	return clamp01(p)
}

// colonisationRate is the growth chance of s per occupied neighbour slot
// (before dividing by 8).
func (w *World) colonisationRate(s species.Species) float64 {
	f := unfavouredGrowth
	if w.env.Favourable(w.profiles[s]) {
		f = favouredGrowth
	}
	return w.growth[s] * f
}

// Step advances the automaton by one generation. Every cell reads only the
// previous generation; results land in the back buffer which is swapped in
// at the end. Victory and loss are not evaluated here.
func (w *World) Step() {
	pre := w.Densities()

	var colonise, die [species.Count]float64
	for _, s := range species.Living {
		colonise[s] = w.colonisationRate(s) / 8
		die[s] = w.DeathProbability(s, pre)
	}

	cur := w.cur.Cells()
	next := w.next.Cells()
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			idx := y*w.w + x
			s := species.Species(cur[idx])
			if s != species.Empty {
				next[idx] = uint8(s)
				if w.rng.Float64() < die[s] {
					next[idx] = uint8(species.Empty)
				}
				continue
			}

			next[idx] = uint8(species.Empty)
			draw := w.rng.Float64()
			cumulative := 0.0
			for _, sp := range species.Living {
				cumulative += colonise[sp] * float64(w.cur.CountMoore(x, y, uint8(sp)))
				if draw < cumulative {
					next[idx] = uint8(sp)
					break
				}
			}
		}
	}

	w.recover(pre)

	w.cur, w.next = w.next, w.cur
	w.generation++
	w.recordEndangered()
}

// recover repopulates species whose pre-step density fell below their floor
// while the environment favours them. Targets are cells empty in the back
// buffer, drawn without replacement.
func (w *World) recover(pre metrics.Densities) {
	total := w.next.Len()
	for _, s := range species.Living {
		prof := w.profiles[s]
		if pre.Of(s) >= prof.MinPopulation || !w.env.Favourable(prof) {
			continue
		}
		want := max(int(prof.RecoveryRate*float64(total)), int(minRecoveryShare*float64(total)), 1)
		w.placeOnEmpty(w.next, s, want)
	}
}

// placeOnEmpty writes s into up to n distinct cells of g that are currently
// empty, chosen uniformly at random. It returns the number placed.
func (w *World) placeOnEmpty(g *core.Grid, s species.Species, n int) int {
	cells := g.Cells()
	w.empties = w.empties[:0]
	for i, v := range cells {
		if species.Species(v) == species.Empty {
			w.empties = append(w.empties, i)
		}
	}
	n = min(n, len(w.empties))
	for i := 0; i < n; i++ {
		j := i + w.rng.IntN(len(w.empties)-i)
		w.empties[i], w.empties[j] = w.empties[j], w.empties[i]
		cells[w.empties[i]] = uint8(s)
	}
	return n
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func init() {
	core.Register("invasion", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		w, err := New(c)
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
