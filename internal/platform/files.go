package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// File naming constants
const (
	AudioExtension     = ".mp3"
	FallbackFileName   = "untitled"
	MaxFileNameLength  = 200
	RenameSuffixFormat = "%s (%d)"
	MaxRenameAttempts  = 1000
)

// leftoverSuffix matches the extension chain yt-dlp appends to an output
// base name, such as ".webm", ".f251.webm.part" or ".temp.mp3"
const leftoverSuffix = `(\.[A-Za-z0-9]+)+$`

var (
	invalidFileNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots         = regexp.MustCompile(`[.\s]+$`)
	repeatedWhitespace   = regexp.MustCompile(`\s+`)
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dirPath)
	}
	return nil
}

// SanitizeFileName makes name safe to use as a file or directory name on
// all common filesystems. Characters invalid on Windows become underscores,
// trailing dots and whitespace are dropped and the result is NFC-normalized.
func SanitizeFileName(name string) string {
	name = norm.NFC.String(name)
	name = invalidFileNameChars.ReplaceAllString(name, "_")
	name = repeatedWhitespace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = trailingDots.ReplaceAllString(name, "")

	if len(name) > MaxFileNameLength {
		name = truncateUTF8(name, MaxFileNameLength)
		name = trailingDots.ReplaceAllString(name, "")
	}
	if name == "" {
		return FallbackFileName
	}
	return name
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// UniqueBaseName returns base, or "base (N)" with the smallest N >= 2, such
// that dir/<name><ext> does not exist and name is not in taken.
// Keys of taken are lowercase.
func UniqueBaseName(dir, base, ext string, taken map[string]bool) (string, error) {
	candidate := base
	for n := 2; n <= MaxRenameAttempts+1; n++ {
		if !taken[strings.ToLower(candidate)] && !FileExists(filepath.Join(dir, candidate+ext)) {
			return candidate, nil
		}
		candidate = fmt.Sprintf(RenameSuffixFormat, base, n)
	}
	return "", fmt.Errorf("no free file name for %q in %s after %d attempts", base, dir, MaxRenameAttempts)
}

// FindOutputFile returns dir/base+ext if it exists. A file with the same base
// name and another extension is an unconverted download, not a result.
func FindOutputFile(dir, base, ext string) (string, error) {
	expected := filepath.Join(dir, base+ext)
	if !FileExists(expected) {
		return "", fmt.Errorf("file not found: %s", expected)
	}
	return expected, nil
}

// RemoveLeftovers deletes what an unfinished download of base left in dir:
// partial files (.part, .ytdl) and intermediate streams (.webm, .m4a, ...)
// the post-processor never converted. The finished base+keepExt is kept.
// It returns the removed paths.
func RemoveLeftovers(dir, base, keepExt string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	leftover := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + leftoverSuffix)
	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == base+keepExt || !leftover.MatchString(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// FileSize returns the size of the file at path in bytes
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
