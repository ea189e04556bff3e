package trim

import (
	"fmt"
	"os"
	"strings"
)

// Detail statuses
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Detail records the outcome for one input file
type Detail struct {
	File       string  `json:"file"`
	Output     string  `json:"output,omitempty"`
	Start      float64 `json:"start,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Status     string  `json:"status"`
}

// Report summarizes a trim run. Skipped files are counted but carry no
// detail line.
type Report struct {
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Skipped   int      `json:"skipped"`
	Details   []Detail `json:"details"`
}

// WriteFile writes the human-readable trim report
func (r *Report) WriteFile(path string) error {
	var b strings.Builder

	b.WriteString("Audio Trim Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, detail := range r.Details {
		if detail.Status == StatusSuccess {
			fmt.Fprintf(&b, "%s: %.1fs (confidence: %.0f%%)\n",
				detail.File, detail.Start, detail.Confidence*100)
		} else {
			fmt.Fprintf(&b, "%s: FAILED\n", detail.File)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
