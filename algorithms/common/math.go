package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistical helpers shared by the analysis pipeline, backed by gonum

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// MinMaxNormalize rescales data to the [0, 1] range. A near-constant
// input (max - min below 1e-10) yields an all-zero slice instead of
// amplifying noise through a vanishing denominator.
func MinMaxNormalize(data []float64) []float64 {
	if len(data) == 0 {
		return data
	}

	min := floats.Min(data)
	max := floats.Max(data)

	if math.Abs(max-min) < 1e-10 {
		return make([]float64, len(data))
	}

	normalized := make([]float64, len(data))
	for i, val := range data {
		normalized[i] = (val - min) / (max - min)
	}

	return normalized
}

// CenteredMovingAverage smooths data with a centered window of fixed
// size, producing output the same length as the input. Edge positions
// sum over the partial overlap but still divide by the full window
// size, so the ends taper instead of being renormalized. For an even
// window the span leans one frame left of center: [i-w/2, i+w/2-1].
func CenteredMovingAverage(data []float64, window int) []float64 {
	if len(data) == 0 || window <= 0 {
		return data
	}

	result := make([]float64, len(data))
	offset := (window - 1) / 2

	for i := range data {
		lo := i + offset - window + 1
		hi := i + offset
		if lo < 0 {
			lo = 0
		}
		if hi > len(data)-1 {
			hi = len(data) - 1
		}

		sum := 0.0
		for m := lo; m <= hi; m++ {
			sum += data[m]
		}
		result[i] = sum / float64(window)
	}

	return result
}
