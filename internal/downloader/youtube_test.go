package downloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/testutil"
	"yt2t/internal/app/util/command"
)

func TestFetch_Success(t *testing.T) {
	fake := &command.Fake{Handler: testutil.FakeYtDlp(testutil.YtDlpBehavior{})}
	f := NewFetcher(WithCommandRunner(fake))
	dest := filepath.Join(t.TempDir(), "scratch")

	path, meta, err := f.Fetch(context.Background(), testutil.SampleVideoURL, dest)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dest, "source.webm"), path)
	assert.FileExists(t, path)
	assert.Equal(t, testutil.SampleVideoID, meta.ID)
	assert.Equal(t, testutil.SampleVideoTitle, meta.Title)
	assert.Equal(t, "Rick Astley", meta.Author)
	assert.Equal(t, 212.0, meta.DurationSeconds)
	assert.Equal(t, int64(1600000000), meta.ViewCount)
	require.NotNil(t, meta.PublishDate)
	assert.Equal(t, "2009-10-25", *meta.PublishDate)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "fetch writes exactly one file")

	calls := fake.Calls()
	require.Len(t, calls, 1)
	args := calls[0].Args
	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, "--dump-json")
	assert.Contains(t, args, "--no-simulate")
	assert.Equal(t, "bestaudio/best", command.ArgAfter(args, "-f"))
	assert.Equal(t, filepath.Join(dest, "source.%(ext)s"), command.ArgAfter(args, "-o"))
	assert.Equal(t, testutil.SampleVideoURL, args[len(args)-1])
}

func TestFetch_UnsupportedSourceSpawnsNothing(t *testing.T) {
	fake := &command.Fake{Handler: testutil.FakeYtDlp(testutil.YtDlpBehavior{})}
	dest := filepath.Join(t.TempDir(), "scratch")

	_, _, err := NewFetcher(WithCommandRunner(fake)).Fetch(context.Background(), "https://vimeo.com/1", dest)
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedSource))
	assert.Empty(t, fake.Calls())
	assert.NoDirExists(t, dest)
}

func TestFetch_NoFileWritten(t *testing.T) {
	fake := &command.Fake{Handler: testutil.FakeYtDlp(testutil.YtDlpBehavior{SkipWrite: true})}

	_, _, err := NewFetcher(WithCommandRunner(fake)).Fetch(context.Background(), testutil.SampleVideoURL, t.TempDir())
	assert.True(t, errors.Is(err, apperrors.ErrSourceUnavailable))
}

func TestFetch_Cancelled(t *testing.T) {
	fake := &command.Fake{Handler: testutil.FakeYtDlp(testutil.YtDlpBehavior{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewFetcher(WithCommandRunner(fake)).Fetch(ctx, testutil.SampleVideoURL, t.TempDir())
	assert.True(t, errors.Is(err, apperrors.ErrNetwork))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestProbe_NoSideEffects(t *testing.T) {
	fake := &command.Fake{Handler: testutil.FakeYtDlp(testutil.YtDlpBehavior{})}
	f := NewFetcher(WithCommandRunner(fake), WithYtDlpPath("/usr/local/bin/yt-dlp"))
	cwd, _ := os.Getwd()
	before, _ := os.ReadDir(cwd)

	first, err := f.Probe(context.Background(), testutil.SampleVideoURL)
	require.NoError(t, err)
	second, err := f.Probe(context.Background(), testutil.SampleVideoURL)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.DurationSeconds, second.DurationSeconds)

	after, _ := os.ReadDir(cwd)
	assert.Equal(t, len(before), len(after))

	for _, call := range fake.Calls() {
		assert.Equal(t, "/usr/local/bin/yt-dlp", call.Name)
		assert.Equal(t, []string{"--dump-json", "--skip-download", "--no-playlist", testutil.SampleVideoURL}, call.Args)
	}
}

func TestClassifyYtDlpError(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{"removed", "ERROR: [youtube] abc: Video unavailable. This video has been removed by the uploader", apperrors.ErrSourceUnavailable},
		{"private", "ERROR: [youtube] abc: Private video. Sign in if you've been granted access to this video", apperrors.ErrSourceUnavailable},
		{"geo", "ERROR: [youtube] abc: The uploader has not made this video available in your country", apperrors.ErrSourceUnavailable},
		{"404", "ERROR: unable to download webpage: HTTP Error 404: Not Found", apperrors.ErrSourceUnavailable},
		{"age", "ERROR: [youtube] abc: Sign in to confirm your age. This video may be inappropriate for some users.", apperrors.ErrSourceUnavailable},
		{"dns", "ERROR: [youtube] abc: Unable to download webpage: <urlopen error [Errno -3] Temporary failure in name resolution>", apperrors.ErrNetwork},
		{"timeout", "ERROR: [download] Got error: The read operation timed out", apperrors.ErrNetwork},
		{"503", "ERROR: unable to download video data: HTTP Error 503: Service Unavailable", apperrors.ErrNetwork},
		{"unsupported", "ERROR: Unsupported URL: https://example.com/", apperrors.ErrUnsupportedSource},
		{"unknown", "ERROR: something nobody anticipated", apperrors.ErrSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &command.Fake{Handler: testutil.FakeYtDlp(testutil.YtDlpBehavior{Stderr: tt.stderr})}
			_, err := NewFetcher(WithCommandRunner(fake)).Probe(context.Background(), testutil.SampleVideoURL)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v (%s)", err, apperrors.Code(err))
		})
	}
}

func TestClassifyYtDlpError_MissingBinary(t *testing.T) {
	err := classifyYtDlpError(context.Background(), &command.Error{Name: "yt-dlp", Err: errors.New("executable file not found in $PATH")})
	assert.Equal(t, "internal", apperrors.Code(err))
}

func TestVerifyInstalled(t *testing.T) {
	fake := &command.Fake{Handler: testutil.FakeYtDlp(testutil.YtDlpBehavior{})}
	assert.NoError(t, NewFetcher(WithCommandRunner(fake)).VerifyInstalled(context.Background()))

	failing := &command.Fake{Handler: func(context.Context, string, []string) ([]byte, error) {
		return nil, errors.New("exec: \"yt-dlp\": executable file not found in $PATH")
	}}
	assert.Error(t, NewFetcher(WithCommandRunner(failing)).VerifyInstalled(context.Background()))
}
