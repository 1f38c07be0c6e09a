package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "genre", "sub")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	require.NoError(t, CreateDirectoryIfNotExists(testDir))

	info, err := os.Stat(testDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call should not fail
	assert.NoError(t, CreateDirectoryIfNotExists(testDir))
}

func TestCreateDirectoryIfNotExists_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "downloads")
	touch(t, path)

	assert.Error(t, CreateDirectoryIfNotExists(path))
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Aphex Twin - Xtal", "Aphex Twin - Xtal"},
		{"AC/DC - T.N.T.", "AC_DC - T.N.T"},
		{"Song: Part 1/2", "Song_ Part 1_2"},
		{"What?   Why*", "What_ Why_"},
		{"Track...", "Track"},
		{"  padded  ", "padded"},
		{"...", FallbackFileName},
		{"", FallbackFileName},
		{"Café", "Café"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, SanitizeFileName(test.input), "input %q", test.input)
	}
}

func TestSanitizeFileName_Truncates(t *testing.T) {
	long := strings.Repeat("é", MaxFileNameLength)

	result := SanitizeFileName(long)

	assert.LessOrEqual(t, len(result), MaxFileNameLength)
	assert.True(t, strings.HasPrefix(long, result))
}

func TestUniqueBaseName(t *testing.T) {
	dir := t.TempDir()

	name, err := UniqueBaseName(dir, "Xtal", AudioExtension, nil)
	require.NoError(t, err)
	assert.Equal(t, "Xtal", name)

	touch(t, filepath.Join(dir, "Xtal.mp3"))
	touch(t, filepath.Join(dir, "Xtal (2).mp3"))

	name, err = UniqueBaseName(dir, "Xtal", AudioExtension, nil)
	require.NoError(t, err)
	assert.Equal(t, "Xtal (3)", name)

	name, err = UniqueBaseName(dir, "Xtal", AudioExtension, map[string]bool{"xtal (3)": true})
	require.NoError(t, err)
	assert.Equal(t, "Xtal (4)", name)
}

func TestFindOutputFile(t *testing.T) {
	dir := t.TempDir()

	_, err := FindOutputFile(dir, "Xtal", AudioExtension)
	assert.Error(t, err)

	touch(t, filepath.Join(dir, "Xtal.webm.part"))
	_, err = FindOutputFile(dir, "Xtal", AudioExtension)
	assert.Error(t, err, "partial files must not be reported")

	touch(t, filepath.Join(dir, "Xtal.m4a"))
	_, err = FindOutputFile(dir, "Xtal", AudioExtension)
	assert.Error(t, err, "unconverted streams must not be reported")

	touch(t, filepath.Join(dir, "Xtal.mp3"))
	path, err := FindOutputFile(dir, "Xtal", AudioExtension)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Xtal.mp3"), path)
}

func TestRemoveLeftovers(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Xtal.webm.part"))
	touch(t, filepath.Join(dir, "Xtal.f251.webm.ytdl"))
	touch(t, filepath.Join(dir, "Xtal.webm"))
	touch(t, filepath.Join(dir, "Xtal.temp.mp3"))
	touch(t, filepath.Join(dir, "Xtal.mp3"))
	touch(t, filepath.Join(dir, "Xtal (2).webm"))
	touch(t, filepath.Join(dir, "Other.webm.part"))

	removed, err := RemoveLeftovers(dir, "Xtal", AudioExtension)
	require.NoError(t, err)
	assert.Len(t, removed, 4)

	assert.True(t, FileExists(filepath.Join(dir, "Xtal.mp3")))
	assert.True(t, FileExists(filepath.Join(dir, "Xtal (2).webm")))
	assert.True(t, FileExists(filepath.Join(dir, "Other.webm.part")))
	assert.False(t, FileExists(filepath.Join(dir, "Xtal.webm")))
	assert.False(t, FileExists(filepath.Join(dir, "Xtal.webm.part")))
}

func TestRemoveLeftovers_QuotesBaseName(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a+b (live).webm"))
	touch(t, filepath.Join(dir, "aab (live).webm"))

	removed, err := RemoveLeftovers(dir, "a+b (live)", AudioExtension)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a+b (live).webm")}, removed)
}

func TestFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	touch(t, path)

	size, err := FileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)

	_, err = FileSize(path + ".missing")
	assert.Error(t, err)
}
