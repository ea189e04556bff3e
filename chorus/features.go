package chorus

import (
	"fmt"

	"github.com/RyanBlaney/estribillo/algorithms/spectral"
	"github.com/RyanBlaney/estribillo/algorithms/temporal"
)

// FeatureProvider turns a decoded signal into one per-frame scalar series.
// The spectrogram is computed once per signal and shared across providers;
// providers that work on raw PCM ignore it.
type FeatureProvider interface {
	Name() string
	Compute(pcm []float64, spectrogram *spectral.STFTResult) ([]float64, error)
}

// NewFeatureProvider builds the provider for a configured feature name
func NewFeatureProvider(name string, config *Config) (FeatureProvider, error) {
	switch name {
	case FeatureLoudness:
		return &loudnessProvider{
			energy: temporal.NewEnergy(config.FrameSize, config.HopLength),
		}, nil
	case FeatureBrightness:
		return &brightnessProvider{}, nil
	case FeatureRhythm:
		return &rhythmProvider{
			flux: spectral.NewSpectralFlux(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown feature: %s", name)
	}
}

// loudnessProvider computes the short-time RMS envelope from raw PCM
type loudnessProvider struct {
	energy *temporal.Energy
}

func (p *loudnessProvider) Name() string {
	return FeatureLoudness
}

func (p *loudnessProvider) Compute(pcm []float64, _ *spectral.STFTResult) ([]float64, error) {
	series := p.energy.ComputeShortTimeEnergy(pcm)
	if len(series) == 0 {
		return nil, fmt.Errorf("signal too short for loudness analysis")
	}
	return series, nil
}

// brightnessProvider computes the spectral centroid per frame
type brightnessProvider struct{}

func (p *brightnessProvider) Name() string {
	return FeatureBrightness
}

func (p *brightnessProvider) Compute(_ []float64, spectrogram *spectral.STFTResult) ([]float64, error) {
	if spectrogram == nil || spectrogram.TimeFrames == 0 {
		return nil, fmt.Errorf("no spectrogram available for brightness analysis")
	}
	centroid := spectral.NewSpectralCentroid(spectrogram.SampleRate)
	return centroid.ComputeFrames(spectrogram.Magnitude), nil
}

// rhythmProvider computes the positive spectral flux onset envelope
type rhythmProvider struct {
	flux *spectral.SpectralFlux
}

func (p *rhythmProvider) Name() string {
	return FeatureRhythm
}

func (p *rhythmProvider) Compute(_ []float64, spectrogram *spectral.STFTResult) ([]float64, error) {
	if spectrogram == nil || spectrogram.TimeFrames < 2 {
		return nil, fmt.Errorf("not enough frames for rhythm analysis")
	}
	return p.flux.Compute(spectrogram.Magnitude), nil
}
