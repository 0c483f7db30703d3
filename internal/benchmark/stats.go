package benchmark

import "math"

// Mean returns the arithmetic mean of samples, or 0 for an empty slice.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// PopulationVariance returns the biased variance of samples: the mean of
// squared deviations from the mean, with no Bessel correction.
func PopulationVariance(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	mean := Mean(samples)
	var sum float64
	for _, s := range samples {
		d := s - mean
		sum += d * d
	}
	return sum / float64(len(samples))
}

// StdDev returns the population standard deviation of samples.
func StdDev(samples []float64) float64 {
	return math.Sqrt(PopulationVariance(samples))
}
