package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CollisionPolicy decides what happens when the target MP3 already exists
type CollisionPolicy string

const (
	CollisionSkip      CollisionPolicy = "skip"
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionRename    CollisionPolicy = "rename"
)

// Settings keys, shared by flags and TRAKNAB_* environment variables
const (
	KeyTracksPath   = "tracks"
	KeyDownloadDir  = "downloads"
	KeyOnCollision  = "on-collision"
	KeySleep        = "sleep"
	KeyFetchTimeout = "timeout"
	KeyMaxDuration  = "max-duration"
	KeyMinFileSize  = "min-size"
	KeyAudioQuality = "quality"
	KeyRetries      = "retries"
	KeyRetryBackoff = "retry-backoff"
	KeyNoTags       = "no-tags"
	KeyDryRun       = "dry-run"
	KeyInstall      = "install"
	KeyVerbose      = "verbose"
)

// EnvPrefix is prepended to every key when read from the environment
const EnvPrefix = "TRAKNAB"

// Default values
const (
	DefaultTracksPath   = "tracks.toml"
	DefaultDownloadDir  = "downloads"
	DefaultOnCollision  = CollisionSkip
	DefaultSleep        = time.Duration(0)
	DefaultFetchTimeout = 10 * time.Minute
	DefaultMaxDuration  = 15 * time.Minute
	DefaultMinFileSize  = int64(2_000_000)
	DefaultAudioQuality = "0"
	DefaultRetries      = 0
	DefaultRetryBackoff = 2 * time.Second
)

// Settings holds everything a run needs besides the track list
type Settings struct {
	TracksPath   string
	DownloadDir  string
	OnCollision  CollisionPolicy
	Sleep        time.Duration // pause between tracks
	FetchTimeout time.Duration // upper bound for a single fetch
	MaxDuration  time.Duration // longer videos are rejected, 0 disables the check
	MinFileSize  int64         // smaller files are rejected, 0 disables the check
	AudioQuality string        // yt-dlp --audio-quality, 0 (best) to 10 (worst) or a bitrate
	Retries      int
	RetryBackoff time.Duration
	Tag          bool
	DryRun       bool
	Install      bool
	Verbose      bool
}

// DefaultSettings returns settings with default values
func DefaultSettings() *Settings {
	return &Settings{
		TracksPath:   DefaultTracksPath,
		DownloadDir:  DefaultDownloadDir,
		OnCollision:  DefaultOnCollision,
		Sleep:        DefaultSleep,
		FetchTimeout: DefaultFetchTimeout,
		MaxDuration:  DefaultMaxDuration,
		MinFileSize:  DefaultMinFileSize,
		AudioQuality: DefaultAudioQuality,
		Retries:      DefaultRetries,
		RetryBackoff: DefaultRetryBackoff,
		Tag:          true,
	}
}

// NewViper returns a viper instance with defaults registered and
// TRAKNAB_* environment variables enabled. Flags are bound by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := DefaultSettings()
	v.SetDefault(KeyTracksPath, d.TracksPath)
	v.SetDefault(KeyDownloadDir, d.DownloadDir)
	v.SetDefault(KeyOnCollision, string(d.OnCollision))
	v.SetDefault(KeySleep, d.Sleep)
	v.SetDefault(KeyFetchTimeout, d.FetchTimeout)
	v.SetDefault(KeyMaxDuration, d.MaxDuration)
	v.SetDefault(KeyMinFileSize, d.MinFileSize)
	v.SetDefault(KeyAudioQuality, d.AudioQuality)
	v.SetDefault(KeyRetries, d.Retries)
	v.SetDefault(KeyRetryBackoff, d.RetryBackoff)
	v.SetDefault(KeyNoTags, !d.Tag)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyInstall, false)
	v.SetDefault(KeyVerbose, false)
	return v
}

// FromViper builds validated settings from v
func FromViper(v *viper.Viper) (*Settings, error) {
	policy, err := ParseCollisionPolicy(v.GetString(KeyOnCollision))
	if err != nil {
		return nil, &ValidationError{Field: KeyOnCollision, Err: err}
	}

	s := &Settings{
		TracksPath:   v.GetString(KeyTracksPath),
		DownloadDir:  v.GetString(KeyDownloadDir),
		OnCollision:  policy,
		Sleep:        v.GetDuration(KeySleep),
		FetchTimeout: v.GetDuration(KeyFetchTimeout),
		MaxDuration:  v.GetDuration(KeyMaxDuration),
		MinFileSize:  v.GetInt64(KeyMinFileSize),
		AudioQuality: strings.TrimSpace(v.GetString(KeyAudioQuality)),
		Retries:      v.GetInt(KeyRetries),
		RetryBackoff: v.GetDuration(KeyRetryBackoff),
		Tag:          !v.GetBool(KeyNoTags),
		DryRun:       v.GetBool(KeyDryRun),
		Install:      v.GetBool(KeyInstall),
		Verbose:      v.GetBool(KeyVerbose),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks paths and numeric limits
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.TracksPath) == "" {
		return &ValidationError{Field: KeyTracksPath, Err: fmt.Errorf("path is required")}
	}
	if strings.TrimSpace(s.DownloadDir) == "" {
		return &ValidationError{Field: KeyDownloadDir, Err: fmt.Errorf("path is required")}
	}

	durations := []struct {
		key   string
		value time.Duration
	}{
		{KeySleep, s.Sleep},
		{KeyFetchTimeout, s.FetchTimeout},
		{KeyMaxDuration, s.MaxDuration},
		{KeyRetryBackoff, s.RetryBackoff},
	}
	for _, d := range durations {
		if d.value < 0 {
			return &ValidationError{Field: d.key, Err: errNegativeValue}
		}
	}
	if s.MinFileSize < 0 {
		return &ValidationError{Field: KeyMinFileSize, Err: errNegativeValue}
	}
	if s.Retries < 0 {
		return &ValidationError{Field: KeyRetries, Err: errNegativeValue}
	}
	if s.AudioQuality == "" {
		s.AudioQuality = DefaultAudioQuality
	}
	return nil
}

// ParseCollisionPolicy converts a flag or environment value into a policy
func ParseCollisionPolicy(value string) (CollisionPolicy, error) {
	switch p := CollisionPolicy(strings.ToLower(strings.TrimSpace(value))); p {
	case CollisionSkip, CollisionOverwrite, CollisionRename:
		return p, nil
	case "":
		return DefaultOnCollision, nil
	default:
		return "", fmt.Errorf("unknown collision policy %q (want %s, %s or %s)",
			value, CollisionSkip, CollisionOverwrite, CollisionRename)
	}
}

// GetCollisionPolicyOptions returns available collision policies
func GetCollisionPolicyOptions() []CollisionPolicy {
	return []CollisionPolicy{CollisionSkip, CollisionOverwrite, CollisionRename}
}
