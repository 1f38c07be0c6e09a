package download

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/ytget/traknab/internal/platform"
)

// yt-dlp constants
const (
	SearchPrefix       = "ytsearch1:"
	DefaultAudioFormat = "mp3"
	OutputExtTemplate  = ".%(ext)s"
	ProgressInterval   = 2 * time.Second
)

// YTDLPOptions configures the yt-dlp backed fetcher
type YTDLPOptions struct {
	AudioQuality string        // --audio-quality value
	MaxDuration  time.Duration // longer videos are filtered out, 0 disables
	MinFileSize  int64         // smaller files are removed and reported, 0 disables
	Timeout      time.Duration // upper bound for one fetch, 0 disables
	Verbose      bool          // log download progress
}

// YTDLPFetcher searches YouTube and extracts audio with yt-dlp
type YTDLPFetcher struct {
	opts   YTDLPOptions
	logger *log.Logger
}

// NewYTDLPFetcher creates a fetcher; yt-dlp and ffmpeg must be reachable
func NewYTDLPFetcher(opts YTDLPOptions, logger *log.Logger) *YTDLPFetcher {
	if logger == nil {
		logger = log.Default()
	}
	return &YTDLPFetcher{opts: opts, logger: logger}
}

// Fetch downloads the first search result (or the given URL) as audio-only
// and converts it to req.Format
func (f *YTDLPFetcher) Fetch(ctx context.Context, req Request) (*Result, error) {
	target := req.URL
	if target == "" {
		target = SearchPrefix + req.Query
	}
	format := req.Format
	if format == "" {
		format = DefaultAudioFormat
	}

	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	dl := f.command(req, format)
	if f.opts.Verbose {
		dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			f.logProgress(req.BaseName, &update)
		})
	}

	res, err := dl.Run(ctx, target)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &FetchError{Target: target, Err: ctxErr}
		}
		return nil, &FetchError{Target: target, Err: err}
	}

	path, err := platform.FindOutputFile(req.Dir, req.BaseName, "."+format)
	if err != nil {
		if _, rmErr := platform.RemoveLeftovers(req.Dir, req.BaseName, "."+format); rmErr != nil {
			f.logger.Printf("failed to clean up after %s: %v", req.BaseName, rmErr)
		}
		return nil, &FetchError{Target: target, Err: fmt.Errorf("%w: %v", ErrNoResult, err)}
	}

	if f.opts.MinFileSize > 0 {
		size, err := platform.FileSize(path)
		if err != nil {
			return nil, &FetchError{Target: target, Err: err}
		}
		if size < f.opts.MinFileSize {
			if rmErr := os.Remove(path); rmErr != nil {
				f.logger.Printf("failed to remove undersized file %s: %v", path, rmErr)
			}
			return nil, &FetchError{Target: target, Err: fmt.Errorf("%w: %.2fMB", ErrTooSmall, float64(size)/1e6)}
		}
	}

	return &Result{Path: path, Title: extractedTitle(res)}, nil
}

// command configures yt-dlp for a single audio-only download
func (f *YTDLPFetcher) command(req Request, format string) *ytdlp.Command {
	dl := ytdlp.New().
		NoPlaylist().
		ExtractAudio().
		AudioFormat(format).
		Output(OutputTemplate(req.Dir, req.BaseName))

	if f.opts.AudioQuality != "" {
		dl.AudioQuality(f.opts.AudioQuality)
	}
	if req.Overwrite {
		dl.ForceOverwrites()
	} else {
		dl.NoOverwrites()
	}
	if filter := DurationFilter(f.opts.MaxDuration); filter != "" {
		dl.MatchFilters(filter)
	}
	return dl
}

// logProgress reports percentage and speed of a running download
func (f *YTDLPFetcher) logProgress(name string, update *ytdlp.ProgressUpdate) {
	if update.TotalBytes <= 0 {
		return
	}
	percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100

	speed := ""
	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started).Seconds(); elapsed > 0 {
			speed = fmt.Sprintf(" %.1fMB/s", float64(update.DownloadedBytes)/elapsed/1024/1024)
		}
	}
	f.logger.Printf("%s: %.0f%%%s", name, percent, speed)
}

// extractedTitle returns the title of the first downloaded video, if reported
func extractedTitle(res *ytdlp.Result) string {
	if res == nil {
		return ""
	}
	info, err := res.GetExtractedInfo()
	if err != nil || len(info) == 0 || info[0].Title == nil {
		return ""
	}
	return *info[0].Title
}

// OutputTemplate builds a yt-dlp output template writing dir/base.<ext>.
// Percent signs are doubled so they are not read as template fields.
func OutputTemplate(dir, base string) string {
	escaped := strings.ReplaceAll(filepath.Join(dir, base), "%", "%%")
	return escaped + OutputExtTemplate
}

// DurationFilter returns a --match-filters expression rejecting videos longer
// than max, or "" when max is not positive
func DurationFilter(max time.Duration) string {
	if max <= 0 {
		return ""
	}
	return fmt.Sprintf("duration <= %d", int64(max.Seconds()))
}
