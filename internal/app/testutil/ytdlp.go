package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"yt2t/internal/app/util/command"
)

// Sample identifiers used across tests.
const (
	SampleVideoID    = "dQw4w9WgXcQ"
	SampleVideoURL   = "https://www.youtube.com/watch?v=" + SampleVideoID
	SampleVideoTitle = "Rick Astley - Never Gonna Give You Up (Official Video)"
)

// YtDlpJSON renders a --dump-json document like yt-dlp prints.
func YtDlpJSON(id, title, filename string) []byte {
	doc := map[string]interface{}{
		"id":            id,
		"title":         title,
		"uploader":      "Rick Astley",
		"channel":       "Rick Astley",
		"duration":      212,
		"view_count":    1600000000,
		"upload_date":   "20091025",
		"thumbnail":     "https://i.ytimg.com/vi/" + id + "/maxresdefault.jpg",
		"webpage_url":   "https://www.youtube.com/watch?v=" + id,
		"extractor_key": "Youtube",
		"ext":           "webm",
	}
	if filename != "" {
		doc["_filename"] = filename
	}
	data, _ := json.Marshal(doc)
	return append(data, '\n')
}

// YtDlpBehavior tweaks what FakeYtDlp does.
type YtDlpBehavior struct {
	// Title overrides SampleVideoTitle.
	Title string
	// Stderr, when set, makes the call fail with this stderr.
	Stderr string
	// WriteBeforeFailing leaves a partial download behind before failing.
	WriteBeforeFailing bool
	// SkipWrite succeeds without writing a file.
	SkipWrite bool
}

// FakeYtDlp returns a command.Fake handler that behaves like yt-dlp: with
// --skip-download it only prints metadata, otherwise it writes a small file
// at the -o template (ext webm) and prints metadata.
func FakeYtDlp(behavior YtDlpBehavior) func(ctx context.Context, name string, args []string) ([]byte, error) {
	title := behavior.Title
	if title == "" {
		title = SampleVideoTitle
	}

	return func(ctx context.Context, name string, args []string) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, &command.Error{Name: name, Err: err}
		}
		if len(args) > 0 && args[0] == "--version" {
			return []byte("2024.08.06\n"), nil
		}

		target := ""
		if template := command.ArgAfter(args, "-o"); template != "" {
			target = strings.Replace(template, "%(ext)s", "webm", 1)
		}
		downloading := target != "" && !contains(args, "--skip-download")

		if behavior.Stderr != "" {
			if downloading && behavior.WriteBeforeFailing {
				_ = os.WriteFile(target, []byte("partial"), 0o644)
			}
			return nil, &command.Error{Name: name, Err: errors.New("exit status 1"), Stderr: behavior.Stderr}
		}

		if !downloading {
			return YtDlpJSON(SampleVideoID, title, ""), nil
		}
		if !behavior.SkipWrite {
			if err := os.WriteFile(target, []byte("fake webm payload"), 0o644); err != nil {
				return nil, &command.Error{Name: name, Err: err, Stderr: "ERROR: unable to open for writing: " + err.Error()}
			}
		}
		return YtDlpJSON(SampleVideoID, title, target), nil
	}
}

// FakeTools dispatches yt-dlp, ffmpeg and ffprobe calls to their fakes.
func FakeTools(ytdlp YtDlpBehavior, ffmpeg FFmpegBehavior) func(ctx context.Context, name string, args []string) ([]byte, error) {
	fetch := FakeYtDlp(ytdlp)
	encode := FakeFFmpeg(ffmpeg)
	return func(ctx context.Context, name string, args []string) ([]byte, error) {
		if name == "yt-dlp" {
			return fetch(ctx, name, args)
		}
		return encode(ctx, name, args)
	}
}

func contains(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}
