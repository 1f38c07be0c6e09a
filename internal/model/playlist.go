package model

import (
	"strings"
	"unicode/utf8"
)

// Title separators commonly used in music video titles, in order of preference
var titleSeparators = []string{" - ", " – ", " — ", " | "}

// Noise suffixes stripped from video titles when converting them to tracks
var titleNoise = []string{
	"(official video)", "(official music video)", "(official audio)",
	"(audio)", "(lyrics)", "(lyric video)", "[official video]",
	"[official music video]", "[official audio]", "(hd)", "[hd]",
}

// PlaylistEntry represents a single video in a playlist
type PlaylistEntry struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

// Playlist represents a YouTube playlist imported into the tracks file
type Playlist struct {
	ID      string           `json:"id"`
	URL     string           `json:"url"`
	Entries []*PlaylistEntry `json:"entries"`
}

// NewPlaylist creates a new playlist instance
func NewPlaylist(id, url string) *Playlist {
	return &Playlist{
		ID:      id,
		URL:     url,
		Entries: make([]*PlaylistEntry, 0),
	}
}

// AddEntry adds a video to the playlist
func (p *Playlist) AddEntry(entry *PlaylistEntry) {
	p.Entries = append(p.Entries, entry)
}

// Tracks converts the playlist entries into track records placed under genre.
// Entries without a title are dropped.
func (p *Playlist) Tracks(genre string) []Track {
	tracks := make([]Track, 0, len(p.Entries))
	for _, entry := range p.Entries {
		track := entry.ToTrack()
		if track.Validate() != nil {
			continue
		}
		track.Genre = genre
		tracks = append(tracks, track)
	}
	return tracks
}

// ToTrack converts the entry into a track record, splitting "Artist - Title"
// video titles into their parts
func (e *PlaylistEntry) ToTrack() Track {
	artist, title := SplitVideoTitle(e.Title)
	return Track{
		Title:  title,
		Artist: artist,
		URL:    e.URL,
	}
}

// SplitVideoTitle splits a video title into artist and title.
// When no separator is found the artist is empty.
func SplitVideoTitle(videoTitle string) (artist, title string) {
	cleaned := strings.TrimSpace(videoTitle)
	for _, noise := range titleNoise {
		if start, end := indexFold(cleaned, noise); start >= 0 {
			cleaned = strings.TrimSpace(cleaned[:start] + cleaned[end:])
		}
	}

	for _, sep := range titleSeparators {
		if idx := strings.Index(cleaned, sep); idx > 0 {
			artist = strings.TrimSpace(cleaned[:idx])
			title = strings.TrimSpace(cleaned[idx+len(sep):])
			if title != "" {
				return artist, title
			}
		}
	}
	return "", cleaned
}

// indexFold returns the byte range of the first case-insensitive match of
// substr in s, or -1, -1. Offsets always refer to s, whose case-folded form
// may have a different byte length.
func indexFold(s, substr string) (start, end int) {
	for i := range s {
		j := i
		matched := true
		for _, want := range substr {
			if j >= len(s) {
				matched = false
				break
			}
			got, size := utf8.DecodeRuneInString(s[j:])
			if got != want && !strings.EqualFold(string(got), string(want)) {
				matched = false
				break
			}
			j += size
		}
		if matched {
			return i, j
		}
	}
	return -1, -1
}
