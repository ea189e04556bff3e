package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"fatal", FatalLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLogrusLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLoggerWithOptions(LogrusOptions{
		Level:   DebugLevel,
		Output:  &buf,
		NoColor: true,
	})

	logger.WithFields(Fields{"component": "detector"}).Info("analysis complete", Fields{"file": "song.mp3"})

	out := buf.String()
	if !strings.Contains(out, "analysis complete") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "component=detector") {
		t.Errorf("output missing preset field: %q", out)
	}
	if !strings.Contains(out, "file=song.mp3") {
		t.Errorf("output missing call field: %q", out)
	}
}

func TestLogrusLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLoggerWithOptions(LogrusOptions{
		Level:   WarnLevel,
		Output:  &buf,
		NoColor: true,
	})

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warn")
	logger.Error(errors.New("boom"), "visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level messages leaked through filter: %q", out)
	}
	if !strings.Contains(out, "visible warn") || !strings.Contains(out, "visible error") {
		t.Errorf("expected warn and error output, got: %q", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("error value not attached: %q", out)
	}
}

func TestGlobalLoggerSwap(t *testing.T) {
	orig := GetGlobalLogger()
	defer SetGlobalLogger(orig)

	var buf bytes.Buffer
	SetGlobalLogger(NewLogrusLoggerWithOptions(LogrusOptions{
		Level:   InfoLevel,
		Output:  &buf,
		NoColor: true,
	}))

	Info("routed through global")
	if !strings.Contains(buf.String(), "routed through global") {
		t.Errorf("global logger did not route to installed backend: %q", buf.String())
	}

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*NoOpLogger); !ok {
		t.Errorf("nil SetGlobalLogger should install NoOpLogger, got %T", GetGlobalLogger())
	}
}
