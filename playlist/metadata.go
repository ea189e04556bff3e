// Package playlist builds playlist metadata with detected start times for
// a folder of audio files.
package playlist

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	unknownArtist = "Unknown Artist"
	maxSongIDLen  = 50
)

var songIDInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// ParseFilename extracts title and artist from a "Title - Artist.ext"
// filename. Files without the separator keep the whole stem as title.
func ParseFilename(filename string) (title, artist string) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	if before, after, found := strings.Cut(name, " - "); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}

	return name, unknownArtist
}

// SongID derives a URL-safe identifier from artist and title: lowercase,
// runs of anything outside [a-z0-9] collapsed to single hyphens, trimmed
// and capped in length.
func SongID(title, artist string) string {
	combined := strings.ToLower(artist + "-" + title)

	id := songIDInvalid.ReplaceAllString(combined, "-")
	id = strings.Trim(id, "-")
	if len(id) > maxSongIDLen {
		id = id[:maxSongIDLen]
	}
	return id
}
