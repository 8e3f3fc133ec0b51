package downloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	apperrors "yt2t/internal/app/errors"
	appmodel "yt2t/internal/app/model"
	"yt2t/internal/app/util/command"
	"yt2t/internal/app/util/files"
	"yt2t/internal/downloader/model"
)

// ScratchStem is the base name yt-dlp writes the downloaded stream to.
const ScratchStem = "source"

// Fetcher downloads best-available audio for a video with yt-dlp.
type Fetcher struct {
	ytDlpPath string
	runner    command.Runner
	logger    *zap.Logger
}

// FetcherOption is a functional option for configuring Fetcher
type FetcherOption func(*Fetcher)

// WithYtDlpPath sets a custom yt-dlp executable path
func WithYtDlpPath(path string) FetcherOption {
	return func(f *Fetcher) {
		if path != "" {
			f.ytDlpPath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) FetcherOption {
	return func(f *Fetcher) {
		f.runner = runner
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new yt-dlp based fetcher
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		ytDlpPath: "yt-dlp",
		runner:    command.NewExecRunner(),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	f.logger = f.logger.With(zap.String("component", "fetcher"))
	return f
}

// Fetch downloads the best audio stream of sourceURL into destDir and returns
// the downloaded file's path with the metadata printed by the same yt-dlp run.
// It writes exactly one file under destDir and deletes nothing.
func (f *Fetcher) Fetch(ctx context.Context, sourceURL, destDir string) (string, appmodel.VideoMetadata, error) {
	videoID, err := ParseVideoURL(sourceURL)
	if err != nil {
		return "", appmodel.VideoMetadata{}, err
	}

	if err := files.EnsureDir(destDir); err != nil {
		return "", appmodel.VideoMetadata{}, err
	}

	args := []string{
		"--no-playlist",
		"--no-progress",
		"--no-part",
		"-f", "bestaudio/best",
		"--dump-json",
		"--no-simulate",
		"-o", filepath.Join(destDir, ScratchStem+".%(ext)s"),
		sourceURL,
	}

	f.logger.Info("fetching source", zap.String("video_id", videoID), zap.String("dest", destDir))
	output, err := f.runner.Output(ctx, f.ytDlpPath, args...)
	if err != nil {
		return "", appmodel.VideoMetadata{}, classifyYtDlpError(ctx, err)
	}

	info, err := decodeVideoInfo(output)
	if err != nil {
		return "", appmodel.VideoMetadata{}, err
	}

	path, err := locateDownload(destDir, info)
	if err != nil {
		return "", appmodel.VideoMetadata{}, err
	}

	f.logger.Info("source fetched",
		zap.String("video_id", info.ID),
		zap.String("title", info.Title),
		zap.String("path", path))
	return path, info.ToMetadata(), nil
}

// Probe returns metadata for sourceURL without downloading anything.
func (f *Fetcher) Probe(ctx context.Context, sourceURL string) (appmodel.VideoMetadata, error) {
	if _, err := ParseVideoURL(sourceURL); err != nil {
		return appmodel.VideoMetadata{}, err
	}

	output, err := f.runner.Output(ctx, f.ytDlpPath, "--dump-json", "--skip-download", "--no-playlist", sourceURL)
	if err != nil {
		return appmodel.VideoMetadata{}, classifyYtDlpError(ctx, err)
	}

	info, err := decodeVideoInfo(output)
	if err != nil {
		return appmodel.VideoMetadata{}, err
	}
	return info.ToMetadata(), nil
}

// VerifyInstalled checks that yt-dlp is available
func (f *Fetcher) VerifyInstalled(ctx context.Context) error {
	if _, err := f.runner.Output(ctx, f.ytDlpPath, "--version"); err != nil {
		return fmt.Errorf("yt-dlp not found or not executable: %w", err)
	}
	return nil
}

// decodeVideoInfo reads the first JSON document yt-dlp printed.
func decodeVideoInfo(output []byte) (model.VideoInfo, error) {
	var info model.VideoInfo
	if err := json.NewDecoder(bytes.NewReader(output)).Decode(&info); err != nil {
		return info, apperrors.Kindf(apperrors.ErrSourceUnavailable, "unreadable yt-dlp metadata: %v", err)
	}
	if info.ID == "" {
		return info, apperrors.Kindf(apperrors.ErrSourceUnavailable, "yt-dlp returned metadata without an id")
	}
	return info, nil
}

// locateDownload finds the single file yt-dlp wrote. The reported _filename
// is preferred; otherwise destDir must hold exactly one regular file.
func locateDownload(destDir string, info model.VideoInfo) (string, error) {
	if info.Filename != "" && filepath.Dir(info.Filename) == filepath.Clean(destDir) && files.IsRegularFile(info.Filename) {
		return info.Filename, nil
	}

	paths, err := files.ListFiles(destDir, ".part", ".ytdl")
	if err != nil {
		return "", fmt.Errorf("list scratch dir: %w", err)
	}

	switch len(paths) {
	case 0:
		return "", apperrors.Kindf(apperrors.ErrSourceUnavailable, "yt-dlp finished without writing a file")
	case 1:
		return paths[0], nil
	default:
		return "", fmt.Errorf("expected one downloaded file in %s, found %d", destDir, len(paths))
	}
}
