package metrics

import (
	"math"
	"testing"

	"invasion-ca/internal/species"
)

func TestFromCounts(t *testing.T) {
	var counts [species.Count]int
	counts[species.Empty] = 325
	counts[species.Native] = 50
	counts[species.Invasive] = 20
	counts[species.Endangered] = 5

	d := FromCounts(counts, 400)
	if d.Native != 0.125 || d.Invasive != 0.05 || d.Endangered != 0.0125 {
		t.Fatalf("unexpected densities %+v", d)
	}
	if got := d.Competitors(); math.Abs(got-0.175) > 1e-12 {
		t.Fatalf("competitors = %v", got)
	}
	if got := d.Percent().Native; got != 12.5 {
		t.Fatalf("percent native = %v", got)
	}
	if FromCounts(counts, 0) != (Densities{}) {
		t.Fatal("zero total should give zero densities")
	}
}

func TestWindowEvictsOldest(t *testing.T) {
	w := NewWindow(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.Push(v)
	}
	if w.Len() != 3 || w.First() != 3 || w.Last() != 5 {
		t.Fatalf("unexpected window %v", w.Values())
	}
	if w.Trend() != 2 {
		t.Fatalf("trend = %v", w.Trend())
	}
	w.Reset()
	if w.Len() != 0 || w.Trend() != 0 {
		t.Fatal("reset should empty the window")
	}
}

func TestHistoryRecordsPercentages(t *testing.T) {
	h := NewHistory(DefaultHistoryLength)
	h.Record(Densities{Native: 0.5, Invasive: 0.2, Endangered: 0.05})
	h.Record(Densities{Native: 0.4, Invasive: 0.3, Endangered: 0.05})

	if got := h.Series(species.Invasive).Trend(); math.Abs(got-10) > 1e-9 {
		t.Fatalf("invasive trend = %v", got)
	}
	if h.Series(species.Empty) != nil {
		t.Fatal("empty tag should have no series")
	}
}

func TestSummarize(t *testing.T) {
	w := NewWindow(10)
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		w.Push(v)
	}
	s := Summarize(w)
	if s.Mean != 5 || s.Min != 2 || s.Max != 9 || s.Trend != 7 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.StdDev <= 0 {
		t.Fatalf("expected positive std dev, got %v", s.StdDev)
	}

	single := NewWindow(2)
	single.Push(3)
	if got := Summarize(single); got.StdDev != 0 || got.Mean != 3 {
		t.Fatalf("single sample summary %+v", got)
	}
}

func TestMedian(t *testing.T) {
	if got := Median([]float64{5, 1, 3}); got != 3 {
		t.Fatalf("odd median = %v", got)
	}
	if got := Median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Fatalf("even median = %v", got)
	}
	xs := []float64{3, 1, 2}
	Median(xs)
	if xs[0] != 3 {
		t.Fatal("Median must not reorder its input")
	}
	if Median(nil) != 0 {
		t.Fatal("empty median should be 0")
	}
}
