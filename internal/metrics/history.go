package metrics

import (
	"gonum.org/v1/gonum/stat"

	"invasion-ca/internal/species"
)

// DefaultHistoryLength matches the span of the density plot.
const DefaultHistoryLength = 100

// Window is a fixed-capacity rolling series of float64 samples.
type Window struct {
	cap  int
	vals []float64
}

// NewWindow returns an empty window holding at most n samples (n < 1 is
// treated as 1).
func NewWindow(n int) *Window {
	if n < 1 {
		n = 1
	}
	return &Window{cap: n, vals: make([]float64, 0, n)}
}

// Push appends v, evicting the oldest sample when full.
func (w *Window) Push(v float64) {
	if len(w.vals) == w.cap {
		copy(w.vals, w.vals[1:])
		w.vals = w.vals[:len(w.vals)-1]
	}
	w.vals = append(w.vals, v)
}

// Len returns the number of stored samples.
func (w *Window) Len() int { return len(w.vals) }

// Values returns the samples oldest first. The slice is owned by w.
func (w *Window) Values() []float64 { return w.vals }

// First returns the oldest sample, or 0 if empty.
func (w *Window) First() float64 {
	if len(w.vals) == 0 {
		return 0
	}
	return w.vals[0]
}

// Last returns the newest sample, or 0 if empty.
func (w *Window) Last() float64 {
	if len(w.vals) == 0 {
		return 0
	}
	return w.vals[len(w.vals)-1]
}

// Trend is Last minus First.
func (w *Window) Trend() float64 { return w.Last() - w.First() }

// Reset drops all samples.
func (w *Window) Reset() { w.vals = w.vals[:0] }

// History keeps one Window of percentages per living species.
type History struct {
	series [species.Count]*Window
}

// NewHistory allocates a history with n samples per species.
func NewHistory(n int) *History {
	h := &History{}
	for _, s := range species.Living {
		h.series[s] = NewWindow(n)
	}
	return h
}

// Record appends d (as percentages).
func (h *History) Record(d Densities) {
	p := d.Percent()
	for _, s := range species.Living {
		h.series[s].Push(p.Of(s))
	}
}

// Series returns the window for s, or nil for non-living tags.
func (h *History) Series(s species.Species) *Window {
	if !s.IsLiving() {
		return nil
	}
	return h.series[s]
}

// Summary describes a series with gonum's descriptive statistics.
type Summary struct {
	Mean   float64 `json:"mean" csv:"mean"`
	StdDev float64 `json:"std_dev" csv:"std_dev"`
	Min    float64 `json:"min" csv:"min"`
	Max    float64 `json:"max" csv:"max"`
	Trend  float64 `json:"trend" csv:"trend"`
}

// Summarize computes a Summary of w. An empty window yields the zero value.
func Summarize(w *Window) Summary {
	vals := w.Values()
	if len(vals) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(vals, nil)
	if len(vals) < 2 {
		std = 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return Summary{Mean: mean, StdDev: std, Min: lo, Max: hi, Trend: w.Trend()}
}
