// Package trim cuts detected chorus clips out of full-length audio files.
package trim

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/estribillo/batch"
	"github.com/RyanBlaney/estribillo/chorus"
	"github.com/RyanBlaney/estribillo/logging"
	"github.com/RyanBlaney/estribillo/transcode"
)

// StartDetector locates the most recognizable segment of an audio file
type StartDetector interface {
	DetectFile(path string) chorus.Result
}

// ClipEncoder extracts a re-encoded clip from an audio file
type ClipEncoder interface {
	ExtractClip(input string, opts transcode.ClipOptions) error
}

// DurationProber reads a file's duration without decoding it
type DurationProber interface {
	ProbeDuration(path string) (float64, error)
}

// Trimmer detects chorus starts and extracts faded MP3 clips for a folder
// of audio files. Existing clips are left untouched. The callbacks report
// progress; with Workers above one they may be invoked concurrently.
type Trimmer struct {
	Detector StartDetector
	Encoder  ClipEncoder
	Prober   DurationProber

	ClipDuration float64 // Clip length in seconds
	FadeDuration float64 // Fade in/out length in seconds
	Workers      int

	OnFile   func(index, total int, file string)
	OnResult func(file string, detail Detail)
	OnSkip   func(file string)
}

// NewTrimmer creates a sequential trimmer with 45s clips and 2s fades
func NewTrimmer(detector StartDetector, encoder ClipEncoder, prober DurationProber) *Trimmer {
	return &Trimmer{
		Detector:     detector,
		Encoder:      encoder,
		Prober:       prober,
		ClipDuration: 45.0,
		FadeDuration: 2.0,
		Workers:      1,
	}
}

// Run processes every audio file directly inside inputDir, writing
// <stem>.mp3 clips into outputDir. Report details follow the sorted input
// order regardless of worker count.
func (t *Trimmer) Run(inputDir, outputDir string) (*Report, error) {
	logger := logging.WithFields(logging.Fields{
		"component":  "clip_trimmer",
		"input_dir":  inputDir,
		"output_dir": outputDir,
	})

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output folder: %w", err)
	}

	files, err := transcode.ListAudioFiles(inputDir)
	if err != nil {
		return nil, err
	}

	logger.Info("Processing audio files", logging.Fields{
		"count":   len(files),
		"workers": t.Workers,
	})

	type outcome struct {
		skipped bool
		detail  Detail
	}
	outcomes := make([]outcome, len(files))

	batch.Run(len(files), t.Workers, func(i int) {
		path := files[i]
		name := filepath.Base(path)
		output := filepath.Join(outputDir, clipName(name))

		if t.OnFile != nil {
			t.OnFile(i+1, len(files), name)
		}

		if _, err := os.Stat(output); err == nil {
			if t.OnSkip != nil {
				t.OnSkip(name)
			}
			outcomes[i] = outcome{skipped: true}
			return
		}

		outcomes[i] = outcome{detail: t.trimFile(path, name, output)}

		if t.OnResult != nil {
			t.OnResult(name, outcomes[i].detail)
		}
	})

	report := &Report{Details: make([]Detail, 0, len(files))}
	for _, o := range outcomes {
		switch {
		case o.skipped:
			report.Skipped++
		case o.detail.Status == StatusSuccess:
			report.Processed++
			report.Details = append(report.Details, o.detail)
		default:
			report.Failed++
			report.Details = append(report.Details, o.detail)
		}
	}

	return report, nil
}

// trimFile detects the chorus in one file and extracts its clip
func (t *Trimmer) trimFile(path, name, output string) Detail {
	logger := logging.WithFields(logging.Fields{
		"component": "clip_trimmer",
		"file":      name,
	})

	result := t.Detector.DetectFile(path)
	logger.Debug("Chorus detected", logging.Fields{
		"start_time": result.StartTime,
		"confidence": result.Confidence,
	})

	// The source duration bounds the clip window; without it the window
	// is used as requested
	total, err := t.Prober.ProbeDuration(path)
	if err != nil {
		logger.Warn("Duration probe failed, extracting without bounds", logging.Fields{
			"error": err.Error(),
		})
		total = 0
	}

	err = t.Encoder.ExtractClip(path, transcode.ClipOptions{
		Start:         result.StartTime,
		Duration:      t.ClipDuration,
		FadeDuration:  t.FadeDuration,
		TotalDuration: total,
		Output:        output,
	})
	if err != nil {
		logger.Error(err, "Clip extraction failed")
		return Detail{File: name, Status: StatusFailed}
	}

	return Detail{
		File:       name,
		Output:     output,
		Start:      result.StartTime,
		Confidence: result.Confidence,
		Status:     StatusSuccess,
	}
}

// clipName maps an input file name to its clip name, always MP3
func clipName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".mp3"
}
