package chorus

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/estribillo/algorithms/common"
	"github.com/RyanBlaney/estribillo/algorithms/spectral"
	"github.com/RyanBlaney/estribillo/algorithms/windowing"
	"github.com/RyanBlaney/estribillo/logging"
	"github.com/RyanBlaney/estribillo/transcode"
)

const (
	// Confidence assigned when the signal is too short to search
	shortSignalConfidence = 0.5
	// Confidence assigned when guard bands leave no room for the window
	emptyRangeConfidence = 0.5
	// Confidence assigned with a duration-proportional start after a
	// failed extraction
	proportionalFailureConfidence = 0.3

	// Denominator stabilizer for ratio confidence on near-silent signals
	confidenceRatioEpsilon = 0.01
	// Multiplier for scaled confidence
	confidenceScaleFactor = 1.5
)

// Result is the outcome of chorus-start detection for one signal
type Result struct {
	StartTime  float64 `json:"start_time"` // Clip start in seconds
	Confidence float64 `json:"confidence"` // Heuristic confidence in [0, 1]
}

// Detector finds the most recognizable segment of an audio recording, a
// heuristic proxy for the chorus, and reports where it starts.
type Detector struct {
	config    *Config
	decoder   *transcode.Decoder
	providers []FeatureProvider
	stft      *spectral.STFT
	window    *windowing.Hann
}

// NewDetector creates a detector for the given configuration. A nil config
// selects the playlist profile; a nil decoder gets one matched to the
// configured analysis rate.
func NewDetector(config *Config, decoder *transcode.Decoder) (*Detector, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}

	if decoder == nil {
		decoderConfig := transcode.DefaultDecoderConfig()
		decoderConfig.TargetSampleRate = config.SampleRate
		decoderConfig.TargetChannels = 1
		decoder = transcode.NewDecoder(decoderConfig)
	}

	providers := make([]FeatureProvider, len(config.Features))
	for i, fw := range config.Features {
		provider, err := NewFeatureProvider(fw.Feature, config)
		if err != nil {
			return nil, err
		}
		providers[i] = provider
	}

	return &Detector{
		config:    config,
		decoder:   decoder,
		providers: providers,
		stft:      spectral.NewSTFT(),
		window:    windowing.NewHann(config.FrameSize),
	}, nil
}

// Config returns the detector's configuration
func (d *Detector) Config() *Config {
	return d.config
}

// DetectFile decodes an audio file and locates its most recognizable
// segment. Detection is total: extraction failures are logged and mapped
// to the configured fallback result rather than returned as errors.
func (d *Detector) DetectFile(path string) Result {
	logger := logging.WithFields(logging.Fields{
		"component": "chorus_detector",
		"file":      path,
	})

	audioData, err := d.decoder.DecodeFile(path)
	if err != nil {
		logger.Warn("Decode failed, using fallback start", logging.Fields{
			"error": err.Error(),
		})
		return d.failureFallback(path)
	}

	result, err := d.DetectSignal(audioData.PCM, audioData.SampleRate)
	if err != nil {
		logger.Warn("Detection failed, using fallback start", logging.Fields{
			"error": err.Error(),
		})
		return d.failureFallback(path)
	}

	logger.Debug("Chorus detection complete", logging.Fields{
		"start_time": result.StartTime,
		"confidence": result.Confidence,
	})
	return result
}

// DetectSignal locates the most recognizable segment of decoded mono PCM.
// The sample rate must match the configured analysis rate.
func (d *Detector) DetectSignal(pcm []float64, sampleRate int) (Result, error) {
	if sampleRate != d.config.SampleRate {
		return Result{}, fmt.Errorf("sample rate %d does not match analysis rate %d",
			sampleRate, d.config.SampleRate)
	}

	duration := float64(len(pcm)) / float64(sampleRate)

	// Signals no longer than the clip are used whole
	if duration <= d.config.ClipDuration {
		return Result{StartTime: 0.0, Confidence: shortSignalConfidence}, nil
	}

	combined, err := d.interestSeries(pcm)
	if err != nil {
		return Result{}, err
	}

	windowFrames := d.config.WindowFrames()
	guardHead := d.config.guardHeadFrames()
	guardTail := d.config.guardTailFrames()

	bestStart, bestScore, ok := bestWindow(combined, windowFrames, guardHead, guardTail)
	if !ok {
		// Guard bands leave no candidate start, place the clip proportionally
		start := fallbackStart(duration, d.config.ClipDuration, d.config.FallbackDivisor)
		return Result{StartTime: start, Confidence: emptyRangeConfidence}, nil
	}

	startTime := d.config.FrameTime(bestStart)
	if d.config.RoundStart {
		// Whole seconds read better in playlist metadata
		startTime = math.Round(startTime)
	}

	return Result{
		StartTime:  startTime,
		Confidence: d.confidence(bestScore, combined),
	}, nil
}

// interestSeries extracts, normalizes and combines all configured features
// into a single per-frame score series, smoothed when configured.
func (d *Detector) interestSeries(pcm []float64) ([]float64, error) {
	spectrogram, err := d.stft.ComputeWithWindow(pcm, d.config.FrameSize, d.config.HopLength, d.config.SampleRate, d.window)
	if err != nil {
		return nil, fmt.Errorf("spectrogram failed: %w", err)
	}

	series := make([][]float64, len(d.providers))
	minLen := 0
	for i, provider := range d.providers {
		values, err := provider.Compute(pcm, spectrogram)
		if err != nil {
			return nil, fmt.Errorf("feature %s failed: %w", provider.Name(), err)
		}
		series[i] = values
		if i == 0 || len(values) < minLen {
			minLen = len(values)
		}
	}
	if minLen == 0 {
		return nil, fmt.Errorf("feature extraction produced no frames")
	}

	// Align lengths, then rescale each feature independently before weighting
	combined := make([]float64, minLen)
	for i, values := range series {
		normalized := common.MinMaxNormalize(values[:minLen])
		weight := d.config.Features[i].Weight
		for j, v := range normalized {
			combined[j] += weight * v
		}
	}

	if d.config.SmoothingWindow > 0 {
		combined = common.CenteredMovingAverage(combined, d.config.SmoothingWindow)
	}

	return combined, nil
}

// bestWindow scans every candidate start inside the guard bands and returns
// the earliest start whose forward window has the highest mean score.
// ok is false when the guards and window leave no candidate.
func bestWindow(series []float64, windowFrames, guardHead, guardTail int) (int, float64, bool) {
	searchEnd := len(series) - windowFrames - guardTail
	if guardHead >= searchEnd {
		return 0, 0, false
	}

	bestStart := guardHead
	bestScore := 0.0

	for start := guardHead; start < searchEnd; start++ {
		sum := 0.0
		for _, v := range series[start : start+windowFrames] {
			sum += v
		}
		score := sum / float64(windowFrames)

		// Strictly greater keeps the earliest start on ties
		if score > bestScore {
			bestScore = score
			bestStart = start
		}
	}

	return bestStart, bestScore, true
}

// confidence maps the winning window score to [0, 1]
func (d *Detector) confidence(bestScore float64, series []float64) float64 {
	switch d.config.ConfidenceMethod {
	case ConfidenceScaled:
		return math.Min(1.0, bestScore*confidenceScaleFactor)
	default:
		avg := common.Mean(series)
		return math.Min(1.0, bestScore/(avg+confidenceRatioEpsilon))
	}
}

// fallbackStart places a clip proportionally into a recording that could
// not be scored, leaving more lead-in the longer the recording is
func fallbackStart(duration, clipDuration, divisor float64) float64 {
	return math.Max(0, (duration-clipDuration)/divisor)
}

// failureFallback produces the result for a file whose extraction failed.
// When configured, the file's duration is probed so the clip can still be
// placed proportionally; otherwise the fixed fallback applies.
func (d *Detector) failureFallback(path string) Result {
	if d.config.FailureProportional {
		if duration, err := d.decoder.ProbeDuration(path); err == nil {
			return Result{
				StartTime:  fallbackStart(duration, d.config.ClipDuration, d.config.FallbackDivisor),
				Confidence: proportionalFailureConfidence,
			}
		}
	}
	return Result{
		StartTime:  d.config.FallbackStart,
		Confidence: d.config.FallbackConfidence,
	}
}
