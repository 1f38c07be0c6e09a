package platform

import (
	"errors"
	"fmt"
	"os/exec"
)

// Executables required to extract MP3 audio
const (
	YTDLPCommand  = "yt-dlp"
	FFmpegCommand = "ffmpeg"
)

// ErrToolMissing is returned when a required executable is not in PATH
var ErrToolMissing = errors.New("required tool not found")

// lookPath is replaced in tests
var lookPath = exec.LookPath

// ValidateEnvironment checks that every command is available in PATH
func ValidateEnvironment(commands ...string) error {
	for _, cmd := range commands {
		if _, err := lookPath(cmd); err != nil {
			return fmt.Errorf("%w: %q is not in PATH", ErrToolMissing, cmd)
		}
	}
	return nil
}
