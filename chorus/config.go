package chorus

import (
	"fmt"
	"math"
)

// Profile selects a tuned parameter set for one consumer of the detector
type Profile string

const (
	// ProfilePlaylist tunes detection for playlist metadata: three features,
	// smoothing and a short head guard.
	ProfilePlaylist Profile = "playlist"
	// ProfileClip tunes detection for physical clip extraction: two features,
	// no smoothing and symmetric guards.
	ProfileClip Profile = "clip"
)

// ConfidenceMethod selects how the winning window score becomes a confidence value
type ConfidenceMethod string

const (
	// ConfidenceRatio compares the winning score against the series average
	ConfidenceRatio ConfidenceMethod = "ratio"
	// ConfidenceScaled multiplies the winning score by a fixed factor
	ConfidenceScaled ConfidenceMethod = "scaled"
)

// Recognized feature names
const (
	FeatureLoudness   = "loudness"
	FeatureBrightness = "brightness"
	FeatureRhythm     = "rhythmic-density"
)

// FeatureWeight pairs a feature with its combination weight. Features are
// combined in slice order, so a config always produces the same sum.
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Config holds all detection parameters
type Config struct {
	// Analysis parameters
	SampleRate int `json:"sample_rate"` // Analysis sample rate in Hz
	FrameSize  int `json:"frame_size"`  // Samples per analysis frame
	HopLength  int `json:"hop_length"`  // Samples advanced between frames

	// Scoring parameters
	ClipDuration    float64         `json:"clip_duration"`    // Target window length in seconds
	Features        []FeatureWeight `json:"features"`         // Features and their weights, in order
	SmoothingWindow int             `json:"smoothing_window"` // Moving average width in frames, 0 disables
	GuardHead       float64         `json:"guard_head"`       // Seconds excluded at the start of the search
	GuardTail       float64         `json:"guard_tail"`       // Seconds excluded at the end of the search

	// Confidence parameters
	ConfidenceMethod ConfidenceMethod `json:"confidence_method"`

	// Fallback parameters
	FallbackDivisor     float64 `json:"fallback_divisor"`     // Divisor for proportional fallback starts
	FailureProportional bool    `json:"failure_proportional"` // Probe duration on failure for a proportional start
	FallbackStart       float64 `json:"fallback_start"`       // Start seconds when nothing else applies
	FallbackConfidence  float64 `json:"fallback_confidence"`  // Confidence reported with FallbackStart

	// Output parameters
	RoundStart bool `json:"round_start"` // Round scanned start times to whole seconds, fallbacks stay exact
}

// DefaultConfig returns the playlist profile, the richer of the two tunings
func DefaultConfig() *Config {
	return PlaylistConfig()
}

// PlaylistConfig returns detection parameters tuned for playlist metadata
func PlaylistConfig() *Config {
	return &Config{
		SampleRate:   22050,
		FrameSize:    2048,
		HopLength:    512,
		ClipDuration: 45.0,
		Features: []FeatureWeight{
			{Feature: FeatureLoudness, Weight: 0.4},
			{Feature: FeatureBrightness, Weight: 0.3},
			{Feature: FeatureRhythm, Weight: 0.3},
		},
		SmoothingWindow:     10,
		GuardHead:           5.0,
		GuardTail:           0.0,
		ConfidenceMethod:    ConfidenceRatio,
		FallbackDivisor:     4.0,
		FailureProportional: false,
		FallbackStart:       30.0,
		FallbackConfidence:  0.3,
		RoundStart:          true,
	}
}

// ClipConfig returns detection parameters tuned for clip extraction
func ClipConfig() *Config {
	return &Config{
		SampleRate:   22050,
		FrameSize:    2048,
		HopLength:    512,
		ClipDuration: 45.0,
		Features: []FeatureWeight{
			{Feature: FeatureLoudness, Weight: 0.6},
			{Feature: FeatureBrightness, Weight: 0.4},
		},
		SmoothingWindow:     0,
		GuardHead:           10.0,
		GuardTail:           10.0,
		ConfidenceMethod:    ConfidenceScaled,
		FallbackDivisor:     3.0,
		FailureProportional: true,
		FallbackStart:       30.0,
		FallbackConfidence:  0.1,
	}
}

// ConfigForProfile returns the tuned config for a named profile
func ConfigForProfile(profile Profile) (*Config, error) {
	switch profile {
	case ProfilePlaylist:
		return PlaylistConfig(), nil
	case ProfileClip:
		return ClipConfig(), nil
	default:
		return nil, fmt.Errorf("unknown profile: %s", profile)
	}
}

// Validate checks the configuration for usable values
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive: %d", c.SampleRate)
	}
	if c.FrameSize <= 0 {
		return fmt.Errorf("frame size must be positive: %d", c.FrameSize)
	}
	if c.HopLength <= 0 {
		return fmt.Errorf("hop length must be positive: %d", c.HopLength)
	}
	if c.ClipDuration <= 0 {
		return fmt.Errorf("clip duration must be positive: %v", c.ClipDuration)
	}
	if len(c.Features) == 0 {
		return fmt.Errorf("at least one feature is required")
	}
	for _, fw := range c.Features {
		switch fw.Feature {
		case FeatureLoudness, FeatureBrightness, FeatureRhythm:
		default:
			return fmt.Errorf("unknown feature: %s", fw.Feature)
		}
		if fw.Weight <= 0 {
			return fmt.Errorf("feature %s weight must be positive: %v", fw.Feature, fw.Weight)
		}
	}
	if c.SmoothingWindow < 0 {
		return fmt.Errorf("smoothing window must not be negative: %d", c.SmoothingWindow)
	}
	if c.GuardHead < 0 || c.GuardTail < 0 {
		return fmt.Errorf("guard durations must not be negative: %v, %v", c.GuardHead, c.GuardTail)
	}
	switch c.ConfidenceMethod {
	case ConfidenceRatio, ConfidenceScaled:
	default:
		return fmt.Errorf("unknown confidence method: %s", c.ConfidenceMethod)
	}
	if c.FallbackDivisor <= 0 {
		return fmt.Errorf("fallback divisor must be positive: %v", c.FallbackDivisor)
	}
	return nil
}

// WindowFrames returns the scoring window length in frames, rounded to the
// nearest frame so the window covers the clip duration as closely as possible
func (c *Config) WindowFrames() int {
	return int(math.Round(c.ClipDuration * float64(c.SampleRate) / float64(c.HopLength)))
}

// guardHeadFrames returns the head guard band length in whole frames
func (c *Config) guardHeadFrames() int {
	return int(c.GuardHead * float64(c.SampleRate) / float64(c.HopLength))
}

// guardTailFrames returns the tail guard band length in whole frames
func (c *Config) guardTailFrames() int {
	return int(c.GuardTail * float64(c.SampleRate) / float64(c.HopLength))
}

// FrameTime converts a frame index to its start time in seconds
func (c *Config) FrameTime(frame int) float64 {
	return float64(frame) * float64(c.HopLength) / float64(c.SampleRate)
}

// TimeFrame converts a time in seconds to the nearest frame index. It is
// the exact inverse of FrameTime for frame-aligned times.
func (c *Config) TimeFrame(seconds float64) int {
	return int(math.Round(seconds * float64(c.SampleRate) / float64(c.HopLength)))
}
