package extractor

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"yt2t/internal/app/cache"
	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/model"
	"yt2t/internal/app/repository"
	"yt2t/internal/app/util/files"
	"yt2t/internal/downloader"
)

var servedExts = lo.Map(model.SupportedFormats, func(f model.AudioFormat, _ int) string { return f.Ext() })

// Probe returns metadata for url without downloading, served from the cache
// when possible.
func (e *Extractor) Probe(ctx context.Context, sourceURL string) (model.VideoMetadata, error) {
	id, err := downloader.ParseVideoURL(sourceURL)
	if err != nil {
		return model.VideoMetadata{}, err
	}

	key := cache.Key(id)
	if meta, ok := e.cache.Get(ctx, key); ok {
		e.logger.Debug("probe cache hit", zap.String("video_id", id))
		return meta, nil
	}

	meta, err := e.fetcher.Probe(ctx, sourceURL)
	if err != nil {
		return model.VideoMetadata{}, err
	}
	e.cache.Set(ctx, key, meta)
	return meta, nil
}

// ResolveFile maps a bare file name to a finished output file.
func (e *Extractor) ResolveFile(name string) (string, error) {
	if !files.IsSafeFilename(name) {
		return "", apperrors.Kindf(apperrors.ErrInvalidRequest, "invalid file name %q", name)
	}
	if !lo.Contains(servedExts, strings.ToLower(filepath.Ext(name))) {
		return "", apperrors.Kindf(apperrors.ErrNotFound, "file %s not found", name)
	}

	path := filepath.Join(e.outputDir, name)
	if !files.IsRegularFile(path) {
		return "", apperrors.Kindf(apperrors.ErrNotFound, "file %s not found", name)
	}
	return path, nil
}

// ListFiles returns the names of finished output files.
func (e *Extractor) ListFiles() ([]string, error) {
	paths, err := files.ListFiles(e.outputDir, partSuffix)
	if err != nil {
		return nil, apperrors.Wrap(err, "list output dir")
	}
	names := lo.FilterMap(paths, func(p string, _ int) (string, bool) {
		base := filepath.Base(p)
		return base, lo.Contains(servedExts, strings.ToLower(filepath.Ext(base)))
	})
	return names, nil
}

// DeleteFileAsync resolves name and removes it on a detached goroutine.
// Failures after scheduling are only logged.
func (e *Extractor) DeleteFileAsync(name string) error {
	path, err := e.ResolveFile(name)
	if err != nil {
		return err
	}

	e.background.Add(1)
	go func() {
		defer e.background.Done()
		logger := e.logger.With(zap.String("file", name))

		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Error("failed to delete output file", zap.Error(err))
			return
		}
		logger.Info("output file deleted")

		if e.mirror.Enabled() {
			if err := e.mirror.Delete(context.Background(), name); err != nil {
				logger.Warn("failed to delete mirrored object", zap.Error(err))
			}
		}
	}()
	return nil
}

// ListHistory returns recent extraction records, newest first.
func (e *Extractor) ListHistory(ctx context.Context, limit int) ([]model.ExtractionRecord, error) {
	records, err := e.history.ListRecent(ctx, repository.ClampLimit(limit))
	if err != nil {
		return nil, apperrors.Wrap(err, "list extraction history")
	}
	return records, nil
}
