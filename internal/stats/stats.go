// internal/stats/stats.go
// Package stats reduces timing sample sets into summary statistics.
package stats

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Summary holds the statistics derived from a single sample set.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	P95      float64 `json:"p95"`
}

// Mean returns the arithmetic mean of samples. It returns NaN for an empty slice.
func Mean(samples []float64) float64 {
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// Variance returns the population variance of samples (divided by N, not N-1).
func Variance(samples []float64) float64 {
	avg := Mean(samples)
	sum := 0.0
	for _, v := range samples {
		diff := v - avg
		sum += diff * diff
	}
	return sum / float64(len(samples))
}

// Std returns the population standard deviation of samples.
func Std(samples []float64) float64 {
	return math.Sqrt(Variance(samples))
}

// Summarize computes the mean, variance and standard deviation of samples along
// with a few order statistics. samples is left untouched.
func Summarize(samples []float64) Summary {
	summary := Summary{
		Count:    len(samples),
		Mean:     Mean(samples),
		Variance: Variance(samples),
		Std:      Std(samples),
	}
	if len(samples) == 0 {
		summary.Min = math.NaN()
		summary.Max = math.NaN()
		summary.Median = math.NaN()
		summary.P95 = math.NaN()
		return summary
	}

	sorted := stats.Sample{Xs: append([]float64(nil), samples...)}
	sorted.Sort()
	summary.Min, summary.Max = sorted.Bounds()
	summary.Median = sorted.Quantile(0.5)
	summary.P95 = sorted.Quantile(0.95)
	return summary
}
