package metrics

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Median returns the empirical median of xs; it does not modify xs.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	if len(sorted)%2 == 1 {
		return sorted[len(sorted)/2]
	}
	lo := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	hi := sorted[len(sorted)/2]
	return (lo + hi) / 2
}

// Quantile returns the empirical p-quantile of xs.
func Quantile(p float64, xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
