package model

import (
	"errors"
	"strings"
)

// ErrEmptyTitle is returned by Validate for a track without a usable title
var ErrEmptyTitle = errors.New("title is required")

// Track is one song to download, as read from the tracks file
type Track struct {
	Title  string `toml:"title"`
	Artist string `toml:"artist,omitempty"`
	Album  string `toml:"album,omitempty"`
	Genre  string `toml:"genre,omitempty"`  // sub-directory of the download directory
	Search string `toml:"search,omitempty"` // overrides the generated search query
	URL    string `toml:"url,omitempty"`    // direct video URL, bypasses searching
}

// Validate checks that the track carries enough information to be fetched
func (t Track) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Query returns the search query used to look the track up
func (t Track) Query() string {
	if s := strings.TrimSpace(t.Search); s != "" {
		return s
	}
	title := strings.TrimSpace(t.Title)
	if artist := strings.TrimSpace(t.Artist); artist != "" {
		return artist + " " + title
	}
	return title
}

// DisplayName returns "Artist - Title", or the title alone when there is no artist
func (t Track) DisplayName() string {
	title := strings.TrimSpace(t.Title)
	if artist := strings.TrimSpace(t.Artist); artist != "" {
		return artist + " - " + title
	}
	return title
}

// Key identifies the track for in-run collision checks.
// Two tracks with equal keys are the same song.
func (t Track) Key() string {
	return strings.ToLower(strings.Join([]string{
		strings.TrimSpace(t.Genre),
		strings.TrimSpace(t.Artist),
		strings.TrimSpace(t.Title),
		strings.TrimSpace(t.Album),
		strings.TrimSpace(t.Query()),
		strings.TrimSpace(t.URL),
	}, "\x00"))
}
