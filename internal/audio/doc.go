// Package audio writes ID3 metadata into downloaded MP3 files so players
// show the title, artist, album and genre from the tracks file instead of
// whatever the source video was called.
package audio
