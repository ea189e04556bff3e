package temporal

import (
	"math"
)

// Energy computes short-time energy features over overlapping frames.
// Frames are non-centered: frame i covers samples [i*hop, i*hop+frameSize).
type Energy struct {
	frameSize int
	hopSize   int
}

// NewEnergy creates a new energy calculator
func NewEnergy(frameSize, hopSize int) *Energy {
	return &Energy{
		frameSize: frameSize,
		hopSize:   hopSize,
	}
}

// NumFrames reports how many full frames fit in a signal of the given length
func (e *Energy) NumFrames(signalLen int) int {
	if signalLen < e.frameSize || e.frameSize <= 0 || e.hopSize <= 0 {
		return 0
	}
	return (signalLen-e.frameSize)/e.hopSize + 1
}

// ComputeShortTimeEnergy calculates per-frame RMS amplitude, the loudness
// envelope of the signal. A trailing partial frame is dropped.
func (e *Energy) ComputeShortTimeEnergy(signal []float64) []float64 {
	numFrames := e.NumFrames(len(signal))
	if numFrames == 0 {
		return []float64{}
	}

	energies := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		frame := signal[i*e.hopSize : i*e.hopSize+e.frameSize]

		sumSquares := 0.0
		for _, s := range frame {
			sumSquares += s * s
		}
		energies[i] = math.Sqrt(sumSquares / float64(e.frameSize))
	}

	return energies
}
