package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxNameBytes bounds sanitized filename stems so that stem+suffix+extension
// stays well under the common 255-byte filesystem limit.
const MaxNameBytes = 180

// SanitizeFilename makes an untrusted string (video title, caller-supplied name)
// safe to use as a single path element. Path separators and NUL become '_',
// surrounding whitespace and leading dots are dropped, and the result is capped
// at MaxNameBytes on a rune boundary. An empty result yields fallback.
func SanitizeFilename(name string, fallback string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		string(os.PathSeparator), "_",
		"\x00", "_",
	)
	cleaned := replacer.Replace(name)
	cleaned = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, cleaned)
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimLeft(cleaned, ".")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > MaxNameBytes {
		cut := MaxNameBytes
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = strings.TrimSpace(cleaned[:cut])
	}

	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// IsSafeFilename reports whether name can be joined to a directory without
// escaping it.
func IsSafeFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.ContainsRune(name, os.PathSeparator) {
		return false
	}
	return filepath.Base(name) == name
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// IsRegularFile returns true if path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadOutputFile reads the specified output file and returns its text content.
func ReadOutputFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}

// ListFiles returns the regular files directly under dir, skipping names with
// the given suffixes.
func ListFiles(dir string, skipSuffixes ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		skip := false
		for _, suffix := range skipSuffixes {
			if strings.HasSuffix(entry.Name(), suffix) {
				skip = true
				break
			}
		}
		if !skip {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
