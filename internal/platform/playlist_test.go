package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ytget/traknab/internal/model"
)

func TestNewPlaylistImporter(t *testing.T) {
	importer := NewPlaylistImporter()

	require.NotNil(t, importer)
	assert.Equal(t, DefaultImportTimeout, importer.timeout)
	assert.NotNil(t, importer.fetchItems)

	importer.SetTimeout(30 * time.Second)
	assert.Equal(t, 30*time.Second, importer.timeout)

	importer.SetLimit(-3)
	assert.Equal(t, 0, importer.limit)
	importer.SetLimit(25)
	assert.Equal(t, 25, importer.limit)
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{"playlist URL", "https://www.youtube.com/playlist?list=PLAYLIST_ID", "PLAYLIST_ID", false},
		{"watch URL", "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID", "PLAYLIST_ID", false},
		{"additional parameters", "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&index=1&t=30", "PLAYLIST_ID", false},
		{"multiple list parameters", "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&list=OTHER_ID", "PLAYLIST_ID", false},
		{"music subdomain", "https://music.youtube.com/playlist?list=PLAYLIST_ID", "PLAYLIST_ID", false},
		{"no playlist parameter", "https://www.youtube.com/watch?v=VIDEO_ID", "", true},
		{"empty playlist parameter", "https://www.youtube.com/watch?v=VIDEO_ID&list=", "", true},
		{"not a URL", "list=PLAYLIST_ID", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractPlaylistID(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPlaylistURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestPlaylistImporter_Import(t *testing.T) {
	var gotID string
	var gotLimit int
	importer := NewPlaylistImporter()
	importer.SetLimit(10)
	importer.fetchItems = func(ctx context.Context, playlistID string, limit int) ([]*model.PlaylistEntry, error) {
		gotID, gotLimit = playlistID, limit
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return []*model.PlaylistEntry{
			{VideoID: "a", Title: "Aphex Twin - Xtal", URL: "https://www.youtube.com/watch?v=a"},
			{VideoID: "b", Title: "Burial - Archangel", URL: "https://www.youtube.com/watch?v=b"},
		}, nil
	}

	playlist, err := importer.Import(context.Background(), "https://www.youtube.com/playlist?list=PL42")
	require.NoError(t, err)

	assert.Equal(t, "PL42", gotID)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, "PL42", playlist.ID)
	assert.Len(t, playlist.Entries, 2)
}

func TestPlaylistImporter_ImportErrors(t *testing.T) {
	called := false
	importer := NewPlaylistImporter()
	importer.fetchItems = func(ctx context.Context, playlistID string, limit int) ([]*model.PlaylistEntry, error) {
		called = true
		return nil, errors.New("network unreachable")
	}

	_, err := importer.Import(context.Background(), "https://www.youtube.com/watch?v=abc")
	assert.ErrorIs(t, err, ErrInvalidPlaylistURL)
	assert.False(t, called, "invalid URLs must not reach the network")

	_, err = importer.Import(context.Background(), "https://www.youtube.com/playlist?list=PL42")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "network unreachable")
	}
}
