package platform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/traknab/internal/model"
	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultImportTimeout = 60 * time.Second
)

// URL parameters and templates
const (
	PlaylistParam           = "list"
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// ErrInvalidPlaylistURL is returned for URLs without a playlist ID
var ErrInvalidPlaylistURL = errors.New("invalid playlist URL")

// ItemsFunc lists the videos of a playlist; limit 0 means all of them
type ItemsFunc func(ctx context.Context, playlistID string, limit int) ([]*model.PlaylistEntry, error)

// PlaylistImporter reads YouTube playlists so they can be added to the tracks file
type PlaylistImporter struct {
	timeout    time.Duration
	limit      int
	fetchItems ItemsFunc
}

// NewPlaylistImporter creates an importer backed by the ytdlp library
func NewPlaylistImporter() *PlaylistImporter {
	return &PlaylistImporter{
		timeout:    DefaultImportTimeout,
		fetchItems: fetchPlaylistItems,
	}
}

// SetTimeout sets the timeout for a single import
func (p *PlaylistImporter) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// SetLimit caps the number of imported videos, 0 imports all of them
func (p *PlaylistImporter) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	p.limit = limit
}

// SetItemsFunc replaces the source of playlist items
func (p *PlaylistImporter) SetItemsFunc(fn ItemsFunc) {
	if fn != nil {
		p.fetchItems = fn
	}
}

// Import fetches the playlist behind rawURL
func (p *PlaylistImporter) Import(ctx context.Context, rawURL string) (*model.Playlist, error) {
	playlistID, err := ExtractPlaylistID(rawURL)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	entries, err := p.fetchItems(ctx, playlistID, p.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	playlist := model.NewPlaylist(playlistID, rawURL)
	for _, entry := range entries {
		playlist.AddEntry(entry)
	}
	return playlist, nil
}

// ExtractPlaylistID returns the value of the list parameter of a YouTube URL.
// Supported forms:
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&index=1
//   - https://music.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPlaylistURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlaylistURL, rawURL)
	}

	id := u.Query().Get(PlaylistParam)
	if id == "" {
		return "", fmt.Errorf("%w: no %s parameter in %q", ErrInvalidPlaylistURL, PlaylistParam, rawURL)
	}
	return id, nil
}

// fetchPlaylistItems lists playlist videos with the ytdlp library
func fetchPlaylistItems(ctx context.Context, playlistID string, limit int) ([]*model.PlaylistEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, &model.PlaylistEntry{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}
