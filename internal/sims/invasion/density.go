package invasion

import (
	"fmt"

	"invasion-ca/internal/metrics"
	"invasion-ca/internal/species"
)

const (
	victoryInvasiveCeiling = 0.10
	victoryCompetitorFloor = 0.10
	gameOverCompetitorMin  = 0.05
	criticalEndangeredPct  = 2.0
)

// Counts returns the number of cells holding each tag.
func (w *World) Counts() [species.Count]int {
	var counts [species.Count]int
	w.cur.Histogram(counts[:])
	return counts
}

// Densities returns the coverage of every living species in one pass.
func (w *World) Densities() metrics.Densities {
	return metrics.FromCounts(w.Counts(), w.cur.Len())
}

// Density returns the fraction of the grid occupied by s.
func (w *World) Density(s species.Species) (float64, error) {
	if err := species.Check(s); err != nil {
		return 0, err
	}
	return w.Densities().Of(s), nil
}

// CheckVictory reports whether invasives are down to at most 10% while
// natives and invasives together still cover at least 10%. Once true it stays
// true for the life of the grid.
func (w *World) CheckVictory() bool {
	if w.victory {
		return true
	}
	d := w.Densities()
	if d.Invasive <= victoryInvasiveCeiling && d.Competitors() >= victoryCompetitorFloor {
		w.victory = true
	}
	return w.victory
}

// CheckGameOver reports whether natives and invasives together cover less
// than 5% of the grid. Once true it stays true.
func (w *World) CheckGameOver() bool {
	if w.gameOver {
		return true
	}
	if w.Densities().Competitors() < gameOverCompetitorMin {
		w.gameOver = true
	}
	return w.gameOver
}

// Victory returns the latched victory flag without evaluating the grid.
func (w *World) Victory() bool { return w.victory }

// GameOver returns the latched loss flag without evaluating the grid.
func (w *World) GameOver() bool { return w.gameOver }

// Status classifies the recent trajectory of the endangered species.
type Status string

const (
	StatusCritical   Status = "critical"
	StatusDeclining  Status = "declining"
	StatusRecovering Status = "recovering"
	StatusStable     Status = "stable"
)

// Message renders a player-facing line for the status at pct percent cover.
func (s Status) Message(pct float64) string {
	switch s {
	case StatusCritical:
		return "WARNING: Endangered species critical!"
	case StatusDeclining:
		return fmt.Sprintf("Alert: Endangered species declining (%.1f%%)", pct)
	case StatusRecovering:
		return fmt.Sprintf("Good: Endangered species recovering (%.1f%%)", pct)
	default:
		return fmt.Sprintf("Stable: Endangered species at %.1f%%", pct)
	}
}

func (w *World) recordEndangered() {
	w.endangered.Push(w.Densities().Endangered * 100)
}

// EndangeredStatus compares the newest endangered cover (percent) with the
// oldest sample in the rolling window.
func (w *World) EndangeredStatus() Status {
	status, _ := w.EndangeredReport()
	return status
}

// EndangeredReport returns the status and the newest endangered cover in
// percent.
func (w *World) EndangeredReport() (Status, float64) {
	if w.endangered.Len() == 0 {
		return StatusStable, 0
	}
	current := w.endangered.Last()
	oldest := w.endangered.First()
	switch {
	case current < criticalEndangeredPct:
		return StatusCritical, current
	case current < oldest:
		return StatusDeclining, current
	case current > oldest:
		return StatusRecovering, current
	default:
		return StatusStable, current
	}
}
