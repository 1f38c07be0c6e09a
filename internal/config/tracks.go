package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ytget/traknab/internal/model"
)

// TracksFileExt is the only accepted tracks file extension
const TracksFileExt = ".toml"

// tracksKey holds the canonical [[tracks]] array of tables.
// Every other top-level table is read with the legacy genre layout.
const tracksKey = "tracks"

// Configuration is the loaded set of tracks plus the two paths of a run
type Configuration struct {
	TracksPath  string
	DownloadDir string
	Tracks      []model.Track
}

// Load reads the tracks file and returns a configuration for downloadDir
func Load(tracksPath, downloadDir string) (*Configuration, error) {
	tracks, err := LoadTracks(tracksPath)
	if err != nil {
		return nil, err
	}
	return &Configuration{
		TracksPath:  tracksPath,
		DownloadDir: downloadDir,
		Tracks:      tracks,
	}, nil
}

// LoadTracks parses a tracks file into track records in document order.
//
// Two layouts are accepted and may be mixed:
//
//	[[tracks]]
//	title = "Windowlicker"
//	artist = "Aphex Twin"
//
//	[electronic]
//	"Aphex Twin" = ["Windowlicker", "Xtal"]
//
// In the second one each top-level table is a genre, each key an artist and
// each value the list of titles.
func LoadTracks(path string) ([]model.Track, error) {
	if !strings.EqualFold(filepath.Ext(path), TracksFileExt) {
		return nil, &ParseError{Path: path, Err: errNotTOML}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ParseError{Path: path, Err: errIsDirectory}
	}

	var raw map[string]toml.Primitive
	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var entries []model.Track
	if prim, ok := raw[tracksKey]; ok {
		if err := md.PrimitiveDecode(prim, &entries); err != nil {
			return nil, &ValidationError{Path: path, Field: tracksKey, Err: err}
		}
	}

	// Every [[tracks]] header is reported as its own "tracks" key, so the
	// entries can be interleaved with the genre tables around them.
	headers := 0
	for _, key := range md.Keys() {
		if len(key) == 1 && key[0] == tracksKey {
			headers++
		}
	}

	var tracks []model.Track
	next := 0
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		name := key[0]
		if name == tracksKey {
			if len(key) != 1 {
				continue
			}
			headers--
			end := next + 1
			if headers == 0 || end > len(entries) {
				end = len(entries)
			}
			tracks = append(tracks, entries[next:end]...)
			next = end
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		var artists map[string][]string
		if err := md.PrimitiveDecode(raw[name], &artists); err != nil {
			return nil, &ValidationError{Path: path, Field: name, Err: fmt.Errorf("%w: %v", errLegacyLayout, err)}
		}
		for _, artist := range childKeys(md, toml.Key{name}) {
			for _, title := range artists[artist] {
				tracks = append(tracks, model.Track{Title: title, Artist: artist, Genre: name})
			}
		}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, &ValidationError{Path: path, Field: undecoded[0].String(), Err: errUnknownField}
	}

	for i, track := range tracks {
		if err := track.Validate(); err != nil {
			return nil, &ValidationError{Path: path, Entry: i + 1, Field: "title", Err: err}
		}
	}

	return tracks, nil
}

// childKeys returns the direct children of parent in document order
func childKeys(md toml.MetaData, parent toml.Key) []string {
	seen := make(map[string]bool)
	var names []string
	for _, key := range md.Keys() {
		if len(key) <= len(parent) || !hasPrefix(key, parent) {
			continue
		}
		name := key[len(parent)]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func hasPrefix(key, prefix toml.Key) bool {
	for i := range prefix {
		if key[i] != prefix[i] {
			return false
		}
	}
	return true
}

// AppendTracks appends tracks to the tracks file as [[tracks]] tables,
// creating the file if needed
func AppendTracks(path string, tracks []model.Track) error {
	if !strings.EqualFold(filepath.Ext(path), TracksFileExt) {
		return &ParseError{Path: path, Err: errNotTOML}
	}
	if len(tracks) == 0 {
		return nil
	}

	var buf bytes.Buffer
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(existing) > 0 {
		if !bytes.HasSuffix(existing, []byte("\n")) {
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}

	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	doc := struct {
		Tracks []model.Track `toml:"tracks"`
	}{Tracks: tracks}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode tracks: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
