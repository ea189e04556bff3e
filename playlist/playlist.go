package playlist

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/RyanBlaney/estribillo/batch"
	"github.com/RyanBlaney/estribillo/chorus"
	"github.com/RyanBlaney/estribillo/logging"
	"github.com/RyanBlaney/estribillo/transcode"
)

// Song is one playlist entry with its detected start time
type Song struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	AudioFile  string  `json:"audioFile"`
	StartTime  float64 `json:"startTime"`
	Confidence float64 `json:"_confidence"` // Kept for reference, consumers may drop it
}

// Playlist is the generated metadata document
type Playlist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	BaseAudioURL string `json:"baseAudioUrl"`
	Songs        []Song `json:"songs"`
}

// StartDetector locates the most recognizable segment of an audio file
type StartDetector interface {
	DetectFile(path string) chorus.Result
}

// Builder scans a folder of audio files and assembles a Playlist.
// The callbacks report progress; with Workers above one they may be
// invoked concurrently.
type Builder struct {
	Detector StartDetector
	Workers  int

	OnFile   func(index, total int, file string)
	OnResult func(file string, song Song)
}

// NewBuilder creates a sequential playlist builder
func NewBuilder(detector StartDetector) *Builder {
	return &Builder{
		Detector: detector,
		Workers:  1,
	}
}

// Build analyzes every audio file directly inside inputDir and returns the
// assembled playlist. Song order follows the sorted file names regardless
// of worker count.
func (b *Builder) Build(inputDir string) (*Playlist, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "playlist_builder",
		"input_dir": inputDir,
	})

	files, err := transcode.ListAudioFiles(inputDir)
	if err != nil {
		return nil, err
	}

	logger.Info("Analyzing audio files", logging.Fields{
		"count":   len(files),
		"workers": b.Workers,
	})

	songs := make([]Song, len(files))
	batch.Run(len(files), b.Workers, func(i int) {
		path := files[i]
		name := filepath.Base(path)

		if b.OnFile != nil {
			b.OnFile(i+1, len(files), name)
		}

		title, artist := ParseFilename(name)
		result := b.Detector.DetectFile(path)

		songs[i] = Song{
			ID:         SongID(title, artist),
			Title:      title,
			Artist:     artist,
			AudioFile:  name,
			StartTime:  result.StartTime,
			Confidence: roundConfidence(result.Confidence),
		}

		if b.OnResult != nil {
			b.OnResult(name, songs[i])
		}
	})

	return &Playlist{
		ID:           "generated-playlist",
		Name:         "Generated Playlist",
		Description:  fmt.Sprintf("Auto-generated from %s", filepath.Base(filepath.Clean(inputDir))),
		BaseAudioURL: "./audio/",
		Songs:        songs,
	}, nil
}

// WriteFile serializes the playlist as indented JSON
func (p *Playlist) WriteFile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal playlist: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write playlist: %w", err)
	}
	return nil
}

// roundConfidence trims confidence to two decimals for readable metadata
func roundConfidence(c float64) float64 {
	return math.Round(c*100) / 100
}
