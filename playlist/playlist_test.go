package playlist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/RyanBlaney/estribillo/chorus"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename   string
		wantTitle  string
		wantArtist string
	}{
		{"Bohemian Rhapsody - Queen.mp3", "Bohemian Rhapsody", "Queen"},
		{"Halo - Beyoncé.flac", "Halo", "Beyoncé"},
		{"Mystery Song.mp3", "Mystery Song", "Unknown Artist"},
		{"A - B - C.ogg", "A", "B - C"},
		{"  Spaced  -  Artist .wav", "Spaced", "Artist"},
		{"Dash-NoSpaces.mp3", "Dash-NoSpaces", "Unknown Artist"},
		{"noext", "noext", "Unknown Artist"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			title, artist := ParseFilename(tt.filename)
			if title != tt.wantTitle || artist != tt.wantArtist {
				t.Errorf("ParseFilename(%q) = (%q, %q), want (%q, %q)",
					tt.filename, title, artist, tt.wantTitle, tt.wantArtist)
			}
		})
	}
}

func TestSongID(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{"simple", "Bohemian Rhapsody", "Queen", "queen-bohemian-rhapsody"},
		{"punctuation", "T.N.T.", "AC/DC", "ac-dc-t-n-t"},
		{"unicode collapsed", "Halo", "Beyoncé", "beyonc-halo"},
		{"parens stripped", "(Live!)", "Band", "band-live"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SongID(tt.title, tt.artist); got != tt.want {
				t.Errorf("SongID(%q, %q) = %q, want %q", tt.title, tt.artist, got, tt.want)
			}
		})
	}
}

func TestSongIDLengthCap(t *testing.T) {
	long := strings.Repeat("verylongtitle ", 10)
	id := SongID(long, "Artist")
	if len(id) > 50 {
		t.Errorf("len(id) = %d, want at most 50", len(id))
	}
	if !strings.HasPrefix(id, "artist-verylongtitle") {
		t.Errorf("id = %q, want artist prefix", id)
	}
}

type stubDetector struct {
	results map[string]chorus.Result
}

func (s *stubDetector) DetectFile(path string) chorus.Result {
	return s.results[filepath.Base(path)]
}

func writeTestFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuildAssemblesPlaylist(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir,
		"Zebra Song - Last Artist.mp3",
		"Anthem - First Artist.wav",
		"notes.txt",
	)

	builder := NewBuilder(&stubDetector{results: map[string]chorus.Result{
		"Anthem - First Artist.wav":    {StartTime: 42, Confidence: 0.876},
		"Zebra Song - Last Artist.mp3": {StartTime: 0.75, Confidence: 0.5},
	}})

	p, err := builder.Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if p.ID != "generated-playlist" || p.Name != "Generated Playlist" {
		t.Errorf("playlist header = %q/%q", p.ID, p.Name)
	}
	if p.BaseAudioURL != "./audio/" {
		t.Errorf("BaseAudioURL = %q, want ./audio/", p.BaseAudioURL)
	}
	wantDescription := "Auto-generated from " + filepath.Base(dir)
	if p.Description != wantDescription {
		t.Errorf("Description = %q, want %q", p.Description, wantDescription)
	}

	if len(p.Songs) != 2 {
		t.Fatalf("len(Songs) = %d, want 2 (non-audio files skipped)", len(p.Songs))
	}

	// Sorted by file name: Anthem before Zebra Song
	first := p.Songs[0]
	if first.Title != "Anthem" || first.Artist != "First Artist" {
		t.Errorf("Songs[0] = %q by %q", first.Title, first.Artist)
	}
	if first.ID != "first-artist-anthem" {
		t.Errorf("Songs[0].ID = %q, want first-artist-anthem", first.ID)
	}
	if first.AudioFile != "Anthem - First Artist.wav" {
		t.Errorf("Songs[0].AudioFile = %q", first.AudioFile)
	}
	if first.StartTime != 42 {
		t.Errorf("Songs[0].StartTime = %v, want 42", first.StartTime)
	}
	if first.Confidence != 0.88 {
		t.Errorf("Songs[0].Confidence = %v, want 0.88 (two decimals)", first.Confidence)
	}

	if p.Songs[1].StartTime != 0.75 {
		t.Errorf("Songs[1].StartTime = %v, want 0.75", p.Songs[1].StartTime)
	}
}

func TestBuildParallelKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.mp3", "b.mp3", "c.mp3", "d.mp3", "e.mp3", "f.mp3"}
	writeTestFiles(t, dir, names...)

	results := make(map[string]chorus.Result, len(names))
	for i, name := range names {
		results[name] = chorus.Result{StartTime: float64(i * 10), Confidence: 0.9}
	}

	builder := NewBuilder(&stubDetector{results: results})
	builder.Workers = 4

	p, err := builder.Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(p.Songs) != len(names) {
		t.Fatalf("len(Songs) = %d, want %d", len(p.Songs), len(names))
	}
	for i, song := range p.Songs {
		if song.AudioFile != names[i] {
			t.Errorf("Songs[%d].AudioFile = %q, want %q", i, song.AudioFile, names[i])
		}
		if song.StartTime != float64(i*10) {
			t.Errorf("Songs[%d].StartTime = %v, want %v", i, song.StartTime, float64(i*10))
		}
	}
}

func TestBuildCallbacks(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir, "one.mp3", "two.mp3")

	builder := NewBuilder(&stubDetector{results: map[string]chorus.Result{}})

	var fileCalls, resultCalls atomic.Int64
	builder.OnFile = func(index, total int, file string) {
		fileCalls.Add(1)
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
	}
	builder.OnResult = func(file string, song Song) {
		resultCalls.Add(1)
	}

	if _, err := builder.Build(dir); err != nil {
		t.Fatalf("Build: %v", err)
	}

	if fileCalls.Load() != 2 || resultCalls.Load() != 2 {
		t.Errorf("callbacks = %d/%d, want 2/2", fileCalls.Load(), resultCalls.Load())
	}
}

func TestBuildMissingDir(t *testing.T) {
	builder := NewBuilder(&stubDetector{})
	if _, err := builder.Build(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestPlaylistWriteFile(t *testing.T) {
	p := &Playlist{
		ID:           "generated-playlist",
		Name:         "Generated Playlist",
		Description:  "Auto-generated from music",
		BaseAudioURL: "./audio/",
		Songs: []Song{
			{ID: "queen-bohemian-rhapsody", Title: "Bohemian Rhapsody", Artist: "Queen",
				AudioFile: "Bohemian Rhapsody - Queen.mp3", StartTime: 45, Confidence: 0.92},
		},
	}

	path := filepath.Join(t.TempDir(), "playlist.json")
	if err := p.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{`"baseAudioUrl"`, `"audioFile"`, `"startTime"`, `"_confidence"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("serialized playlist missing key %s", key)
		}
	}

	var decoded Playlist
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if decoded.Songs[0].StartTime != 45 || decoded.Songs[0].Confidence != 0.92 {
		t.Errorf("round trip songs = %+v", decoded.Songs[0])
	}
}
