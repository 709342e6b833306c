// sim/metrics_utils.go
package sim

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CalculateMean returns the arithmetic mean of data, or 0 for an empty slice.
func CalculateMean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// CalculateSum returns the sum of data.
func CalculateSum(data []float64) float64 {
	return floats.Sum(data)
}

// CalculateMax returns the largest value of data, or 0 for an empty slice.
func CalculateMax(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// CalculateCV returns the coefficient of variation (sample standard deviation
// divided by the mean). Fewer than two samples or a zero mean yield 0.
func CalculateCV(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	mean, std := stat.MeanStdDev(data, nil)
	if mean == 0 {
		return 0.0
	}
	return std / mean
}

// CalculatePercentile returns the p-th percentile (0-100) of data using linear
// interpolation, or 0 for an empty slice. data is not modified.
func CalculatePercentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	return stat.Quantile(p/100.0, stat.LinInterp, sorted, nil)
}
