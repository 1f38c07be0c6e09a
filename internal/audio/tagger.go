package audio

import (
	"fmt"

	"github.com/bogem/id3v2/v2"
	"github.com/ytget/traknab/internal/model"
)

// CommentDescription marks the comment frame written by the tagger
const CommentDescription = "traknab"

// Tagger writes ID3v2 tags to MP3 files.
//
// Only frames with a value in the track are touched; everything else already
// present in the file is kept.
type Tagger struct {
	version byte
}

// NewTagger creates a Tagger that writes ID3v2.4 tags
func NewTagger() *Tagger {
	return &Tagger{version: 4}
}

// Tag writes the track metadata into the file at path. When source is not
// empty it is stored as a comment so the origin of the audio can be traced.
func (t *Tagger) Tag(path string, track model.Track, source string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open tags of %s: %w", path, err)
	}
	defer tag.Close()

	tag.SetVersion(t.version)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if track.Title != "" {
		tag.SetTitle(track.Title)
	}
	if track.Artist != "" {
		tag.SetArtist(track.Artist)
	}
	if track.Album != "" {
		tag.SetAlbum(track.Album)
	}
	if track.Genre != "" {
		tag.SetGenre(track.Genre)
	}
	if source != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: CommentDescription,
			Text:        source,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags of %s: %w", path, err)
	}
	return nil
}
