package transcode

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/RyanBlaney/estribillo/logging"
)

// EncoderConfig holds clip encoder configuration
type EncoderConfig struct {
	FFmpegPath string        `json:"ffmpeg_path"`
	Codec      string        `json:"codec"`   // Audio codec passed to -c:a
	Bitrate    string        `json:"bitrate"` // Bitrate passed to -b:a
	Timeout    time.Duration `json:"timeout"`
}

// DefaultEncoderConfig returns default encoder configuration
func DefaultEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		FFmpegPath: "ffmpeg",
		Codec:      "libmp3lame",
		Bitrate:    "192k",
		Timeout:    120 * time.Second,
	}
}

// Encoder extracts re-encoded clips from audio files using FFmpeg
type Encoder struct {
	config *EncoderConfig
}

// NewEncoder creates a new clip encoder
func NewEncoder(config *EncoderConfig) *Encoder {
	if config == nil {
		config = DefaultEncoderConfig()
	}
	return &Encoder{config: config}
}

// ClipOptions defines clip extraction parameters
type ClipOptions struct {
	Start         float64 // Clip start in seconds
	Duration      float64 // Desired clip length in seconds
	FadeDuration  float64 // Fade in/out length in seconds
	TotalDuration float64 // Source duration for bounds clamping, 0 to skip
	Output        string
}

// ExtractClip cuts a clip from an audio file, applying fade in/out and
// re-encoding to the configured codec. If the requested window runs past
// the end of the source, it is shifted back to fit.
func (e *Encoder) ExtractClip(input string, opts ClipOptions) error {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_encoder",
		"function":  "ExtractClip",
		"input":     input,
		"output":    opts.Output,
	})

	if opts.Duration <= 0 {
		return fmt.Errorf("clip duration must be positive: %v", opts.Duration)
	}

	start := opts.Start
	clipLen := opts.Duration
	if opts.TotalDuration > 0 {
		start, clipLen = ClampClipBounds(opts.Start, opts.Duration, opts.TotalDuration)
	}
	if clipLen <= 0 {
		return fmt.Errorf("source too short for clip: %v", opts.TotalDuration)
	}

	args := []string{
		"-i", input,
		"-ss", fmt.Sprintf("%.3f", start),
		"-t", fmt.Sprintf("%.3f", clipLen),
	}

	if opts.FadeDuration > 0 {
		fadeOutStart := max(0, clipLen-opts.FadeDuration)
		filters := []string{
			fmt.Sprintf("afade=t=in:st=0:d=%.3f", opts.FadeDuration),
			fmt.Sprintf("afade=t=out:st=%.3f:d=%.3f", fadeOutStart, opts.FadeDuration),
		}
		args = append(args, "-af", strings.Join(filters, ","))
	}

	args = append(args,
		"-c:a", e.config.Codec,
		"-b:a", e.config.Bitrate,
		"-v", "error",
		"-y", // Overwrite existing output
		opts.Output,
	)

	cmd := exec.Command(e.config.FFmpegPath, args...)

	if e.config.Timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.config.Timeout)
		defer cancel()
		cmd = exec.CommandContext(ctx, e.config.FFmpegPath, args...)
	}

	logger.Debug("Running ffmpeg clip command", logging.Fields{
		"args":     strings.Join(args, " "),
		"start":    start,
		"clip_len": clipLen,
	})

	if output, err := cmd.CombinedOutput(); err != nil {
		logger.Error(err, "Ffmpeg clip extraction failed", logging.Fields{
			"stderr": string(output),
		})
		return fmt.Errorf("ffmpeg clip extraction failed: %w, stderr: %s", err, string(output))
	}

	logger.Debug("Clip extraction complete")
	return nil
}

// ClampClipBounds shifts a clip window back so it fits inside the source.
// Returns the adjusted start and the achievable clip length, which is
// shorter than requested when the whole source is shorter than the clip.
func ClampClipBounds(start, duration, total float64) (float64, float64) {
	end := start + duration
	if end > total {
		end = total
		start = max(0, end-duration)
	}
	return start, end - start
}
