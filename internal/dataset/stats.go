package dataset

import (
	"math"
)

// Describe holds descriptive statistics for one series.
type Describe struct {
	Mean float64
	Min  float64
	Max  float64
	Std  float64
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// populationStd is the uncorrected standard deviation (ddof=0).
func populationStd(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return math.Sqrt(sumSquaredDev(xs) / float64(len(xs)))
}

// sampleStd is the Bessel-corrected standard deviation (ddof=1). It is NaN
// for a single observation, matching how grouped stats are conventionally
// reported.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return math.Sqrt(sumSquaredDev(xs) / float64(len(xs)-1))
}

func sumSquaredDev(xs []float64) float64 {
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum
}

// describe computes Describe with the given standard deviation function.
func describe(xs []float64, std func([]float64) float64) Describe {
	return Describe{
		Mean: mean(xs),
		Min:  minOf(xs),
		Max:  maxOf(xs),
		Std:  std(xs),
	}
}
