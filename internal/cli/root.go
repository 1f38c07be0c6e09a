package cli

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytget/traknab/internal/config"
	"github.com/ytget/traknab/internal/download"
	"github.com/ytget/traknab/internal/platform"
)

// LogPrefix is prepended to every diagnostic line
const LogPrefix = "traknab: "

// app holds the collaborators of the commands so tests can replace them
type app struct {
	out         io.Writer
	logger      *log.Logger
	newFetcher  func(s *config.Settings, logger *log.Logger) download.Fetcher
	newImporter func() *platform.PlaylistImporter
	install     func(ctx context.Context) error
	checkTools  func(commands ...string) error
}

func defaultApp() *app {
	return &app{
		out:    os.Stdout,
		logger: log.New(os.Stderr, LogPrefix, 0),
		newFetcher: func(s *config.Settings, logger *log.Logger) download.Fetcher {
			return download.NewYTDLPFetcher(download.YTDLPOptions{
				AudioQuality: s.AudioQuality,
				MaxDuration:  s.MaxDuration,
				MinFileSize:  s.MinFileSize,
				Timeout:      s.FetchTimeout,
				Verbose:      s.Verbose,
			}, logger)
		},
		newImporter: platform.NewPlaylistImporter,
		install: func(ctx context.Context) error {
			_, err := ytdlp.Install(ctx, nil)
			return err
		},
		checkTools: platform.ValidateEnvironment,
	}
}

// Execute runs the command line and returns the process exit code
func Execute(version string) int {
	a := defaultApp()
	err := newRootCommand(a, version).ExecuteContext(context.Background())
	if reportable(err) {
		a.logger.Printf("%v", err)
	}
	return ExitCode(err)
}

func newRootCommand(a *app, version string) *cobra.Command {
	v := config.NewViper()
	d := config.DefaultSettings()

	cmd := &cobra.Command{
		Use:           "traknab",
		Short:         "Download the tracks listed in a TOML file as MP3s from YouTube",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.FromViper(v)
			if err != nil {
				return err
			}
			return a.runBatch(cmd.Context(), settings)
		},
	}
	cmd.SetOut(a.out)

	persistent := cmd.PersistentFlags()
	persistent.String(config.KeyTracksPath, d.TracksPath, "tracks file (TOML)")
	persistent.Bool(config.KeyVerbose, false, "log diagnostic details")

	flags := cmd.Flags()
	flags.String(config.KeyDownloadDir, d.DownloadDir, "directory the MP3 files are written to")
	flags.String(config.KeyOnCollision, string(d.OnCollision), "what to do when a file already exists: skip, overwrite or rename")
	flags.Duration(config.KeySleep, d.Sleep, "pause after every downloaded track")
	flags.Duration(config.KeyFetchTimeout, d.FetchTimeout, "upper bound for a single download, 0 disables")
	flags.Duration(config.KeyMaxDuration, d.MaxDuration, "reject videos longer than this, 0 disables")
	flags.Int64(config.KeyMinFileSize, d.MinFileSize, "reject MP3 files smaller than this many bytes, 0 disables")
	flags.String(config.KeyAudioQuality, d.AudioQuality, "yt-dlp audio quality, 0 (best) to 10 (worst) or a bitrate such as 192K")
	flags.Int(config.KeyRetries, d.Retries, "retries for transient download failures")
	flags.Duration(config.KeyRetryBackoff, d.RetryBackoff, "pause between retries")
	flags.Bool(config.KeyNoTags, false, "do not write ID3 tags")
	flags.Bool(config.KeyDryRun, false, "resolve file names without downloading")
	flags.Bool(config.KeyInstall, false, "download a managed yt-dlp binary instead of using the one in PATH")

	bindFlags(v, cmd)
	cmd.AddCommand(newImportCommand(a, v))
	return cmd
}

// bindFlags makes every flag of cmd a viper key, so flags win over the environment
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		panic(err)
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
}
