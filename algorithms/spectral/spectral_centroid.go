package spectral

// SpectralCentroid computes the spectral centroid (center of mass) of a
// magnitude spectrum. Higher values indicate brighter, more treble-heavy
// content such as cymbals and vocal presence.
type SpectralCentroid struct {
	sampleRate int
	freqBins   []float64
}

// NewSpectralCentroid creates a new spectral centroid calculator
func NewSpectralCentroid(sampleRate int) *SpectralCentroid {
	return &SpectralCentroid{
		sampleRate: sampleRate,
	}
}

// Compute calculates the spectral centroid for a single magnitude spectrum.
// Returns 0 for empty or silent spectra.
func (sc *SpectralCentroid) Compute(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	if len(sc.freqBins) != len(spectrum) {
		sc.initFreqBins(len(spectrum))
	}

	weightedSum := 0.0
	totalEnergy := 0.0

	for i, mag := range spectrum {
		weightedSum += sc.freqBins[i] * mag
		totalEnergy += mag
	}

	if totalEnergy == 0 {
		return 0.0
	}

	return weightedSum / totalEnergy
}

// ComputeFrames calculates the centroid for every frame of a spectrogram
func (sc *SpectralCentroid) ComputeFrames(spectrogram [][]float64) []float64 {
	if len(spectrogram) == 0 {
		return []float64{}
	}

	centroids := make([]float64, len(spectrogram))
	for t, spectrum := range spectrogram {
		centroids[t] = sc.Compute(spectrum)
	}

	return centroids
}

// initFreqBins pre-calculates the center frequency of each bin. Bin i of an
// N-bin positive-frequency spectrum sits at i*sampleRate/((N-1)*2) Hz.
func (sc *SpectralCentroid) initFreqBins(numBins int) {
	sc.freqBins = make([]float64, numBins)
	if numBins < 2 {
		return
	}
	for i := 0; i < numBins; i++ {
		sc.freqBins[i] = float64(i) * float64(sc.sampleRate) / float64((numBins-1)*2)
	}
}
