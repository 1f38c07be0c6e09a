package download

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/traknab/internal/config"
	"github.com/ytget/traknab/internal/model"
	"github.com/ytget/traknab/internal/platform"
)

// Skip reasons
const (
	ReasonAlreadyDownloaded = "already downloaded"
	ReasonDryRun            = "dry run"
)

// Options configures the batch runner
type Options struct {
	OnCollision config.CollisionPolicy
	Sleep       time.Duration // pause after every downloaded track
	Format      string        // audio container, defaults to mp3
	DryRun      bool
	Verbose     bool
}

var _ Runner = (*Service)(nil)

// Service runs the tracks of a configuration one after another
type Service struct {
	fetcher  Fetcher
	tagger   Tagger
	opts     Options
	logger   *log.Logger
	onUpdate func(*model.Outcome) // callback for progress output
}

// NewService creates a new batch runner
func NewService(fetcher Fetcher, opts Options) *Service {
	if opts.OnCollision == "" {
		opts.OnCollision = config.DefaultOnCollision
	}
	if opts.Format == "" {
		opts.Format = DefaultAudioFormat
	}
	return &Service{
		fetcher: fetcher,
		opts:    opts,
		logger:  log.Default(),
	}
}

// SetUpdateCallback sets the callback function for outcome updates
func (s *Service) SetUpdateCallback(callback func(*model.Outcome)) {
	s.onUpdate = callback
}

// SetTagger enables tagging of produced files
func (s *Service) SetTagger(tagger Tagger) {
	s.tagger = tagger
}

// SetLogger replaces the diagnostic logger
func (s *Service) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Run processes every track of cfg in order. A failed track never stops the
// batch; only a download directory that cannot be created, or cancellation
// of ctx, ends it early. In the latter case the report is marked interrupted
// and tracks that were not attempted stay pending.
func (s *Service) Run(ctx context.Context, cfg *config.Configuration) (*model.Report, error) {
	if err := platform.CreateDirectoryIfNotExists(cfg.DownloadDir); err != nil {
		return nil, &FilesystemError{Op: "create download directory", Path: cfg.DownloadDir, Err: err}
	}

	report := &model.Report{
		RunID:     uuid.NewString(),
		Outcomes:  make([]*model.Outcome, 0, len(cfg.Tracks)),
		StartedAt: time.Now(),
	}
	for i, track := range cfg.Tracks {
		report.Outcomes = append(report.Outcomes, &model.Outcome{
			ID:     fmt.Sprintf("%s-%d", report.RunID, i+1),
			Index:  i,
			Track:  track,
			Query:  track.Query(),
			Status: model.TrackStatusPending,
		})
	}

	s.debugf("Run %s: %d tracks into %s", report.RunID, len(cfg.Tracks), cfg.DownloadDir)

	claims := newNameClaims()
	for i, outcome := range report.Outcomes {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}

		s.processTrack(ctx, cfg.DownloadDir, outcome, claims)

		if outcome.Status == model.TrackStatusStopped {
			report.Interrupted = true
			break
		}

		if outcome.Status == model.TrackStatusCompleted && s.opts.Sleep > 0 && i < len(report.Outcomes)-1 {
			s.debugf("Sleeping for %s", s.opts.Sleep)
			if err := wait(ctx, s.opts.Sleep); err != nil {
				report.Interrupted = true
				break
			}
		}
	}

	report.FinishedAt = time.Now()
	return report, nil
}

// processTrack takes a single outcome from pending to a final state
func (s *Service) processTrack(ctx context.Context, downloadDir string, outcome *model.Outcome, claims *nameClaims) {
	track := outcome.Track
	outcome.StartedAt = time.Now()
	defer func() {
		outcome.FinishedAt = time.Now()
		s.notifyUpdate(outcome)
	}()

	dir := downloadDir
	if genre := strings.TrimSpace(track.Genre); genre != "" {
		dir = filepath.Join(downloadDir, platform.SanitizeFileName(genre))
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		s.fail(outcome, &FilesystemError{Op: "create directory", Path: dir, Err: err})
		return
	}

	ext := "." + s.opts.Format
	base := platform.SanitizeFileName(track.DisplayName())
	name, overwrite, err := s.resolveName(dir, base, ext, track, claims)
	if err != nil {
		s.fail(outcome, &FilesystemError{Op: "resolve file name", Path: filepath.Join(dir, base+ext), Err: err})
		return
	}
	claims.claim(dir, name, track)
	outcome.OutputPath = filepath.Join(dir, name+ext)

	if !overwrite && platform.FileExists(outcome.OutputPath) {
		outcome.Status = model.TrackStatusSkipped
		outcome.Reason = ReasonAlreadyDownloaded
		return
	}

	if s.opts.DryRun {
		outcome.Status = model.TrackStatusSkipped
		outcome.Reason = ReasonDryRun
		return
	}

	outcome.Status = model.TrackStatusDownloading
	s.notifyUpdate(outcome)

	res, err := s.fetcher.Fetch(ctx, Request{
		Query:     outcome.Query,
		URL:       strings.TrimSpace(track.URL),
		Dir:       dir,
		BaseName:  name,
		Format:    s.opts.Format,
		Overwrite: overwrite,
	})
	if err != nil {
		if ctx.Err() != nil {
			outcome.Status = model.TrackStatusStopped
			outcome.Err = ctx.Err()
			if removed, rmErr := platform.RemoveLeftovers(dir, name, ext); rmErr != nil {
				s.logger.Printf("Cleanup after interrupt failed: %v", rmErr)
			} else if len(removed) > 0 {
				s.debugf("Removed unfinished files: %s", strings.Join(removed, ", "))
			}
			return
		}
		s.fail(outcome, err)
		return
	}

	outcome.Status = model.TrackStatusCompleted
	outcome.OutputPath = res.Path
	outcome.MatchedTitle = res.Title
	if res.Title != "" {
		outcome.MatchScore = MatchScore(track.DisplayName(), res.Title)
		if outcome.MatchScore < LowMatchScore {
			s.logger.Printf("Doubtful match for %q: got %q (score %.2f)", track.DisplayName(), res.Title, outcome.MatchScore)
		}
	}

	if s.tagger != nil {
		source := strings.TrimSpace(track.URL)
		if source == "" {
			source = SearchPrefix + outcome.Query
		}
		if err := s.tagger.Tag(res.Path, track, source); err != nil {
			s.logger.Printf("Tagging %s failed: %v", res.Path, err)
		}
	}
}

// resolveName picks the file name for track in dir according to the
// collision policy. Distinct tracks that share a name get stable slots in run
// order: the first keeps the plain name, the next "Name (2)" and so on, so a
// re-run finds the files of the previous run. A name already used in this run
// by a different track is never reused, whatever the policy.
func (s *Service) resolveName(dir, base, ext string, track model.Track, claims *nameClaims) (name string, overwrite bool, err error) {
	name, err = claims.slot(dir, base, track.Key())
	if err != nil {
		return "", false, err
	}

	if !platform.FileExists(filepath.Join(dir, name+ext)) {
		return name, false, nil
	}

	switch s.opts.OnCollision {
	case config.CollisionOverwrite:
		return name, true, nil
	case config.CollisionRename:
		name, err = platform.UniqueBaseName(dir, base, ext, claims.names(dir))
		return name, false, err
	default:
		return name, false, nil
	}
}

// fail marks the outcome as failed
func (s *Service) fail(outcome *model.Outcome, err error) {
	outcome.Status = model.TrackStatusError
	outcome.Err = err
	s.debugf("Track %d failed: %v", outcome.Index+1, err)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(outcome *model.Outcome) {
	if s.onUpdate != nil {
		s.onUpdate(outcome)
	}
}

func (s *Service) debugf(format string, args ...any) {
	if s.opts.Verbose {
		s.logger.Printf(format, args...)
	}
}

// nameClaims tracks which file names the current run has handed out
type nameClaims struct {
	byDir map[string]map[string]string // dir -> lowercased name -> track key
}

func newNameClaims() *nameClaims {
	return &nameClaims{byDir: make(map[string]map[string]string)}
}

func (c *nameClaims) claim(dir, name string, track model.Track) {
	names, ok := c.byDir[dir]
	if !ok {
		names = make(map[string]string)
		c.byDir[dir] = names
	}
	names[strings.ToLower(name)] = track.Key()
}

func (c *nameClaims) owner(dir, name string) (string, bool) {
	key, ok := c.byDir[dir][strings.ToLower(name)]
	return key, ok
}

// slot returns the first of base, "base (2)", "base (3)", ... that is free in
// this run or already belongs to key
func (c *nameClaims) slot(dir, base, key string) (string, error) {
	candidate := base
	for n := 2; n <= platform.MaxRenameAttempts+1; n++ {
		if owner, ok := c.owner(dir, candidate); !ok || owner == key {
			return candidate, nil
		}
		candidate = fmt.Sprintf(platform.RenameSuffixFormat, base, n)
	}
	return "", fmt.Errorf("no free file name for %q in %s after %d attempts", base, dir, platform.MaxRenameAttempts)
}

// names returns the claimed names of dir in the form UniqueBaseName expects
func (c *nameClaims) names(dir string) map[string]bool {
	taken := make(map[string]bool)
	for name := range c.byDir[dir] {
		taken[name] = true
	}
	return taken
}
