package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytget/traknab/internal/config"
	"github.com/ytget/traknab/internal/platform"
)

// Import flags
const (
	flagGenre         = "genre"
	flagLimit         = "limit"
	flagImportTimeout = "import-timeout"
)

func newImportCommand(a *app, v *viper.Viper) *cobra.Command {
	var (
		genre   string
		limit   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "import <playlist-url>",
		Short: "Append the videos of a YouTube playlist to the tracks file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracksPath := v.GetString(config.KeyTracksPath)
			if strings.TrimSpace(tracksPath) == "" {
				return &config.ValidationError{Field: config.KeyTracksPath, Err: fmt.Errorf("path is required")}
			}

			importer := a.newImporter()
			importer.SetTimeout(timeout)
			importer.SetLimit(limit)

			playlist, err := importer.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			tracks := playlist.Tracks(strings.TrimSpace(genre))
			if err := config.AppendTracks(tracksPath, tracks); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Added %d of %d videos from playlist %s to %s\n",
				len(tracks), len(playlist.Entries), playlist.ID, tracksPath)
			if v.GetBool(config.KeyVerbose) {
				for _, t := range tracks {
					a.logger.Printf("  %s (%s)", t.DisplayName(), t.URL)
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&genre, flagGenre, "", "genre (sub-directory) for the imported tracks")
	flags.IntVar(&limit, flagLimit, 0, "import at most this many videos, 0 imports all")
	flags.DurationVar(&timeout, flagImportTimeout, platform.DefaultImportTimeout, "upper bound for reading the playlist")
	return cmd
}
