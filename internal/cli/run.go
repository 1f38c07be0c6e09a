package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytget/traknab/internal/audio"
	"github.com/ytget/traknab/internal/config"
	"github.com/ytget/traknab/internal/download"
	"github.com/ytget/traknab/internal/platform"
)

// runBatch downloads every track of the tracks file and maps the report to an exit code
func (a *app) runBatch(ctx context.Context, s *config.Settings) error {
	cfg, err := config.Load(s.TracksPath, s.DownloadDir)
	if err != nil {
		return err
	}

	if err := a.prepareTools(ctx, s); err != nil {
		return err
	}

	logger := a.logger
	fetcher := download.NewRetryFetcher(a.newFetcher(s, logger), s.Retries, s.RetryBackoff, logger)
	service := download.NewService(fetcher, download.Options{
		OnCollision: s.OnCollision,
		Sleep:       s.Sleep,
		DryRun:      s.DryRun,
		Verbose:     s.Verbose,
	})
	service.SetLogger(logger)
	if s.Tag {
		service.SetTagger(audio.NewTagger())
	}

	out := newPrinter(a.out, len(cfg.Tracks), s.Verbose)
	service.SetUpdateCallback(out.update)

	// Handle interrupts
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	release := cancelOnSignal(ctx, cancel, out.interrupted)
	defer release()

	if s.Verbose {
		logger.Printf("Loaded %d tracks from %s", len(cfg.Tracks), cfg.TracksPath)
	}

	report, err := service.Run(ctx, cfg)
	if err != nil {
		return err
	}
	out.summary(report)

	switch {
	case report.Interrupted:
		return &exitError{code: ExitInterrupted}
	case report.Failed() > 0:
		return &exitError{code: ExitFailures}
	}
	return nil
}

// prepareTools makes sure yt-dlp and ffmpeg can be run. A dry run needs neither.
func (a *app) prepareTools(ctx context.Context, s *config.Settings) error {
	if s.DryRun {
		return nil
	}

	if s.Install {
		a.logger.Printf("Installing yt-dlp...")
		if err := a.install(ctx); err != nil {
			return fmt.Errorf("failed to install yt-dlp: %w", err)
		}
		return a.checkTools(platform.FFmpegCommand)
	}
	return a.checkTools(platform.YTDLPCommand, platform.FFmpegCommand)
}

// Signal plumbing, replaced in tests
var (
	notifySignals = signal.Notify
	stopSignals   = signal.Stop
)

// cancelOnSignal calls onSignal and cancels the run on the first SIGINT or
// SIGTERM. Default handling is restored right away, so a second signal ends
// the process even if a download does not stop. The returned func releases
// the handler.
func cancelOnSignal(ctx context.Context, cancel context.CancelFunc, onSignal func()) func() {
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-sigCh:
			stopSignals(sigCh)
			onSignal()
			cancel()
		case <-ctx.Done():
		}
	}()

	return func() {
		stopSignals(sigCh)
		cancel()
		<-done
	}
}
