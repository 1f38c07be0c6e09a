package download

import (
	"context"

	"github.com/ytget/traknab/internal/config"
	"github.com/ytget/traknab/internal/model"
)

// Request describes one audio fetch
type Request struct {
	Query     string // search query, used when URL is empty
	URL       string // direct video URL
	Dir       string // destination directory, must exist
	BaseName  string // output file name without extension
	Format    string // audio container, e.g. "mp3"
	Overwrite bool   // replace an existing file instead of keeping it
}

// Target returns what the fetcher should resolve: the URL if set, else the query
func (r Request) Target() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Query
}

// Result describes the file produced by a successful fetch
type Result struct {
	Path  string // written file
	Title string // title of the source video, empty if unknown
}

// Fetcher locates audio for a request and writes it to disk
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Result, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, req Request) (*Result, error)

// Fetch calls f(ctx, req)
func (f FetcherFunc) Fetch(ctx context.Context, req Request) (*Result, error) {
	return f(ctx, req)
}

// Tagger writes track metadata into a produced file
type Tagger interface {
	Tag(path string, track model.Track, source string) error
}

// Runner defines the interface of the batch runner
type Runner interface {
	SetUpdateCallback(func(*model.Outcome))
	Run(ctx context.Context, cfg *config.Configuration) (*model.Report, error)
}
