package extractor

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt2t/internal/app/audio"
	"yt2t/internal/app/cache"
	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/model"
	"yt2t/internal/app/testutil"
	"yt2t/internal/app/util/command"
	"yt2t/internal/downloader"
)

type recordingObserver struct {
	mu          sync.Mutex
	transitions []Transition
}

func (o *recordingObserver) OnTransition(t Transition) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitions = append(o.transitions, t)
}

type fixture struct {
	extractor *Extractor
	runner    *command.Fake
	history   *testutil.MockExtractionDAO
	outputDir string
	scratch   string
}

func newFixture(t *testing.T, ytdlp testutil.YtDlpBehavior, ffmpeg testutil.FFmpegBehavior, opts ...Option) *fixture {
	t.Helper()
	root := t.TempDir()
	runner := &command.Fake{Handler: testutil.FakeTools(ytdlp, ffmpeg)}
	history := testutil.NewMockExtractionDAO()

	cfg := Config{OutputDir: filepath.Join(root, "out"), ScratchDir: filepath.Join(root, "scratch")}
	opts = append([]Option{WithHistory(history)}, opts...)
	e, err := New(cfg,
		downloader.NewFetcher(downloader.WithCommandRunner(runner)),
		audio.NewNormalizer(audio.WithCommandRunner(runner)),
		opts...)
	require.NoError(t, err)

	return &fixture{extractor: e, runner: runner, history: history, outputDir: cfg.OutputDir, scratch: cfg.ScratchDir}
}

func wavRequest() model.ExtractionRequest {
	return model.ExtractionRequest{
		SourceURL:  testutil.SampleVideoURL,
		Format:     model.FormatWAV,
		SampleRate: 16000,
		Channels:   1,
	}
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestExtractHappyPath(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})
	observer := &recordingObserver{}

	result, err := f.extractor.Extract(context.Background(), wavRequest(), observer)
	require.NoError(t, err)

	assert.Equal(t, []State{StatePending, StateFetching, StateNormalizing, StateCleaningUp, StateDone}, result.States)
	assert.Equal(t, testutil.SampleVideoID, result.Metadata.ID)
	assert.Equal(t, testutil.SampleVideoTitle, result.Metadata.Title)
	assert.Equal(t, filepath.Join(f.outputDir, result.FileName), result.FilePath)

	file, err := os.Open(result.FilePath)
	require.NoError(t, err)
	defer file.Close()
	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	require.True(t, decoder.IsValidFile())
	assert.EqualValues(t, 16000, decoder.SampleRate)
	assert.EqualValues(t, 1, decoder.NumChans)

	assert.Empty(t, dirEntries(t, f.scratch), "scratch root must be empty after DONE")
	assert.Equal(t, []string{result.FileName}, dirEntries(t, f.outputDir), "no .part files left behind")

	require.Len(t, observer.transitions, 4)
	assert.Equal(t, StatePending, observer.transitions[0].From)
	assert.Equal(t, StateDone, observer.transitions[3].To)

	require.Len(t, f.history.Records(), 1)
	assert.Equal(t, model.ExtractionDone, f.history.Records()[0].Status)
	assert.Equal(t, result.FilePath, f.history.Records()[0].FilePath)
}

func readWAVHeader(t *testing.T, path string) (rate, channels int) {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	require.True(t, decoder.IsValidFile(), path)
	return int(decoder.SampleRate), int(decoder.NumChans)
}

func TestExtractTwoProfilesOfOneVideoKeepBothFiles(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})

	mono, err := f.extractor.Extract(context.Background(), wavRequest(), nil)
	require.NoError(t, err)

	stereoReq := wavRequest()
	stereoReq.SampleRate = 44100
	stereoReq.Channels = 2
	stereo, err := f.extractor.Extract(context.Background(), stereoReq, nil)
	require.NoError(t, err)

	assert.NotEqual(t, mono.FilePath, stereo.FilePath)
	assert.ElementsMatch(t, []string{mono.FileName, stereo.FileName}, dirEntries(t, f.outputDir))

	rate, channels := readWAVHeader(t, mono.FilePath)
	assert.Equal(t, 16000, rate)
	assert.Equal(t, 1, channels)

	rate, channels = readWAVHeader(t, stereo.FilePath)
	assert.Equal(t, 44100, rate)
	assert.Equal(t, 2, channels)
}

func TestExtractExplicitName(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})
	req := wavRequest()
	req.OutputName = "../talk.wav"

	result, err := f.extractor.Extract(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, "_talk.wav", result.FileName)
	assert.Equal(t, f.outputDir, filepath.Dir(result.FilePath))
}

func TestExtractUnsupportedFormatMakesNoCalls(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})
	observer := &recordingObserver{}
	req := wavRequest()
	req.Format = "flac"

	result, err := f.extractor.Extract(context.Background(), req, observer)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnsupportedFormat))
	assert.Empty(t, f.runner.Calls())
	assert.Empty(t, dirEntries(t, f.scratch))

	require.Len(t, observer.transitions, 1)
	assert.Equal(t, StateFailed, observer.transitions[0].To)
	assert.Equal(t, err, observer.transitions[0].Err)

	require.Len(t, f.history.Records(), 1)
	assert.Equal(t, model.ExtractionFailed, f.history.Records()[0].Status)
	assert.Equal(t, "unsupported_format", f.history.Records()[0].ErrorCode)
}

func TestExtractRejectsBadTargetsBeforeFetching(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ExtractionRequest)
		kind   *apperrors.Error
	}{
		{"zero rate", func(r *model.ExtractionRequest) { r.SampleRate = 0 }, apperrors.ErrInvalidRequest},
		{"three channels", func(r *model.ExtractionRequest) { r.Channels = 3 }, apperrors.ErrInvalidRequest},
		{"non youtube url", func(r *model.ExtractionRequest) { r.SourceURL = "https://vimeo.com/123" }, apperrors.ErrUnsupportedSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})
			req := wavRequest()
			tt.mutate(&req)

			_, err := f.extractor.Extract(context.Background(), req, nil)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.kind), "got %v", err)
			assert.Empty(t, f.runner.Calls())
		})
	}
}

func TestExtractFetchFailureCleansScratch(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{
		Stderr:             "ERROR: [youtube] dQw4w9WgXcQ: Video unavailable. This video is private",
		WriteBeforeFailing: true,
	}, testutil.FFmpegBehavior{})
	observer := &recordingObserver{}

	_, err := f.extractor.Extract(context.Background(), wavRequest(), observer)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrSourceUnavailable))

	assert.Empty(t, dirEntries(t, f.scratch))
	assert.Empty(t, dirEntries(t, f.outputDir))

	states := make([]State, 0, len(observer.transitions))
	for _, tr := range observer.transitions {
		states = append(states, tr.To)
	}
	assert.Equal(t, []State{StateFetching, StateFailed}, states)
}

func TestExtractNormalizeFailureLeavesNoPartial(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{
		Stderr: "source.webm: Invalid data found when processing input",
	})

	_, err := f.extractor.Extract(context.Background(), wavRequest(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrDecode))
	assert.Empty(t, dirEntries(t, f.scratch))
	assert.Empty(t, dirEntries(t, f.outputDir))
}

func TestExtractProfileMismatchIsEncodeError(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{RateOverride: 44100})

	_, err := f.extractor.Extract(context.Background(), wavRequest(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrEncode))
	assert.Empty(t, dirEntries(t, f.outputDir))
}

func TestExtractCancelledContext(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.extractor.Extract(ctx, wavRequest(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNetwork))
	assert.Empty(t, dirEntries(t, f.scratch))
	require.Len(t, f.history.Records(), 1, "history is written even when the request context is gone")
}

type panickingFetcher struct{ Fetcher }

func (panickingFetcher) Fetch(_ context.Context, _, destDir string) (string, model.VideoMetadata, error) {
	_ = os.WriteFile(filepath.Join(destDir, "source.webm"), []byte("x"), 0o644)
	panic("boom")
}

func TestExtractPanicStillReleasesScratch(t *testing.T) {
	root := t.TempDir()
	cfg := Config{OutputDir: filepath.Join(root, "out"), ScratchDir: filepath.Join(root, "scratch")}
	history := testutil.NewMockExtractionDAO()
	e, err := New(cfg, panickingFetcher{}, audio.NewNormalizer(audio.WithCommandRunner(&command.Fake{})), WithHistory(history))
	require.NoError(t, err)
	observer := &recordingObserver{}

	assert.Panics(t, func() {
		_, _ = e.Extract(context.Background(), wavRequest(), observer)
	})
	assert.Empty(t, dirEntries(t, cfg.ScratchDir))

	last := observer.transitions[len(observer.transitions)-1]
	assert.Equal(t, StateFailed, last.To)
	require.Len(t, history.Records(), 1)
	assert.Equal(t, "internal", history.Records()[0].ErrorCode)
}

func TestConcurrentExtractionsDoNotCollide(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := wavRequest()
			req.OutputName = "clip-" + string(rune('a'+i))
			_, errs[i] = f.extractor.Extract(context.Background(), req, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, dirEntries(t, f.outputDir), 4)
	assert.Empty(t, dirEntries(t, f.scratch))
}

func TestProbeUsesCache(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{}, WithCache(cache.NewMemoryCache(time.Hour)))

	first, err := f.extractor.Probe(context.Background(), testutil.SampleVideoURL)
	require.NoError(t, err)
	second, err := f.extractor.Probe(context.Background(), "https://youtu.be/"+testutil.SampleVideoID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, f.runner.Calls(), 1)
}

func TestResolveFile(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})
	require.NoError(t, os.WriteFile(filepath.Join(f.outputDir, "a.wav"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(f.outputDir, "notes.txt"), []byte("x"), 0o644))

	path, err := f.extractor.ResolveFile("a.wav")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.outputDir, "a.wav"), path)

	_, err = f.extractor.ResolveFile("../etc/passwd")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidRequest))

	_, err = f.extractor.ResolveFile("..")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidRequest))

	_, err = f.extractor.ResolveFile("missing.wav")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	_, err = f.extractor.ResolveFile("notes.txt")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDeleteFileAsync(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})
	path := filepath.Join(f.outputDir, "gone.mp3")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, f.extractor.DeleteFileAsync("gone.mp3"))
	f.extractor.Wait()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	err = f.extractor.DeleteFileAsync("gone.mp3")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestListFilesSkipsPartials(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})
	for _, name := range []string{"a.wav", "b.mp3", "c.wav.123.part", "history.db"} {
		require.NoError(t, os.WriteFile(filepath.Join(f.outputDir, name), []byte("x"), 0o644))
	}

	names, err := f.extractor.ListFiles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.wav", "b.mp3"}, names)
}

func TestExtractSucceedsWhenHistoryFails(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})
	f.history.SetErrorForMethod("Record", apperrors.New("disk full"))

	result, err := f.extractor.Extract(context.Background(), wavRequest(), nil)
	require.NoError(t, err)
	assert.FileExists(t, result.FilePath)
	assert.Equal(t, 1, f.history.CallCount("Record"))
	assert.Empty(t, f.history.Records())
}

func TestListHistoryNewestFirst(t *testing.T) {
	f := newFixture(t, testutil.YtDlpBehavior{}, testutil.FFmpegBehavior{})

	_, err := f.extractor.Extract(context.Background(), wavRequest(), nil)
	require.NoError(t, err)
	bad := wavRequest()
	bad.Format = "flac"
	_, err = f.extractor.Extract(context.Background(), bad, nil)
	require.Error(t, err)

	records, err := f.extractor.ListHistory(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.ExtractionFailed, records[0].Status)
	assert.Equal(t, model.ExtractionDone, records[1].Status)
}
