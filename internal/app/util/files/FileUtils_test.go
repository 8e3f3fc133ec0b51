package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title", "Lo-fi beats to study to", "Lo-fi beats to study to"},
		{"forward slash", "AC/DC - Back In Black", "AC_DC - Back In Black"},
		{"backslash", `C:\Windows\evil`, "C:_Windows_evil"},
		{"traversal", "../../etc/passwd", "_.._etc_passwd"},
		{"leading dots", "...hidden", "hidden"},
		{"only dots", "..", "fallback"},
		{"empty", "", "fallback"},
		{"whitespace", "   ", "fallback"},
		{"control chars", "a\x00b\nc", "a_bc"},
		{"unicode kept", "日本語のタイトル", "日本語のタイトル"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input, "fallback")
			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, string(os.PathSeparator))
		})
	}
}

func TestSanitizeFilename_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("あ", 100) // 300 bytes
	got := SanitizeFilename(long, "x")

	assert.LessOrEqual(t, len(got), MaxNameBytes)
	assert.True(t, strings.HasPrefix(long, got))
	assert.Equal(t, 0, len(got)%3, "must not split a multi-byte rune")
}

func TestIsSafeFilename(t *testing.T) {
	assert.True(t, IsSafeFilename("clip-abc.wav"))
	assert.True(t, IsSafeFilename("..clip.wav"))
	assert.False(t, IsSafeFilename(""))
	assert.False(t, IsSafeFilename("."))
	assert.False(t, IsSafeFilename(".."))
	assert.False(t, IsSafeFilename("../secret.wav"))
	assert.False(t, IsSafeFilename("a/b.wav"))
	assert.False(t, IsSafeFilename(`a\b.wav`))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	assert.NoDirExists(t, dir)

	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	assert.False(t, IsRegularFile(dir))

	// idempotent
	require.NoError(t, EnsureDir(dir))
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.webm"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.webm.part"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	got, err := ListFiles(dir, ".part")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "source.webm")}, got)
}

func TestReadOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("  hello world \n"), 0o644))

	got, err := ReadOutputFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	_, err = ReadOutputFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
