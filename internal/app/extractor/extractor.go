// Package extractor sequences fetch, normalize and scratch cleanup for one
// YouTube URL, and owns the output directory.
package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yt2t/internal/app/audio"
	"yt2t/internal/app/cache"
	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/metrics"
	"yt2t/internal/app/model"
	"yt2t/internal/app/repository"
	"yt2t/internal/app/storage"
	"yt2t/internal/app/util/files"
	"yt2t/internal/downloader"
)

// sideStepTimeout bounds history writes and mirror uploads after an extraction.
const sideStepTimeout = 2 * time.Minute

// Fetcher downloads source audio. Implemented by downloader.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, sourceURL, destDir string) (string, model.VideoMetadata, error)
	Probe(ctx context.Context, sourceURL string) (model.VideoMetadata, error)
	VerifyInstalled(ctx context.Context) error
}

// Normalizer re-encodes audio. Implemented by audio.Normalizer.
type Normalizer interface {
	Normalize(ctx context.Context, inputPath string, format model.AudioFormat, sampleRate, channels int, outputPath string) error
	VerifyInstalled(ctx context.Context) error
}

// Config holds the directories the extractor works in.
type Config struct {
	OutputDir  string
	ScratchDir string
}

// Result is what a successful extraction hands to the caller.
type Result struct {
	ID        string              `json:"id"`
	FilePath  string              `json:"file_path"`
	FileName  string              `json:"file_name"`
	Metadata  model.VideoMetadata `json:"video_info"`
	States    []State             `json:"states"`
	MirrorURL string              `json:"mirror_url,omitempty"`
}

// Extractor is safe for concurrent use; every call gets its own scratch dir.
type Extractor struct {
	fetcher    Fetcher
	normalizer Normalizer
	outputDir  string
	scratchDir string

	cache   cache.Cache
	history repository.ExtractionDAO
	mirror  storage.Mirror
	metrics *metrics.Metrics
	logger  *zap.Logger

	newID      func() string
	background sync.WaitGroup
}

// Option configures optional collaborators.
type Option func(*Extractor)

func WithCache(c cache.Cache) Option { return func(e *Extractor) { e.cache = c } }

func WithHistory(h repository.ExtractionDAO) Option { return func(e *Extractor) { e.history = h } }

func WithMirror(m storage.Mirror) Option { return func(e *Extractor) { e.mirror = m } }

func WithMetrics(m *metrics.Metrics) Option { return func(e *Extractor) { e.metrics = m } }

func WithLogger(l *zap.Logger) Option { return func(e *Extractor) { e.logger = l } }

// New creates an Extractor and makes sure its directories exist.
func New(cfg Config, fetcher Fetcher, normalizer Normalizer, opts ...Option) (*Extractor, error) {
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = filepath.Join(cfg.OutputDir, ".scratch")
	}

	e := &Extractor{
		fetcher:    fetcher,
		normalizer: normalizer,
		outputDir:  cfg.OutputDir,
		scratchDir: cfg.ScratchDir,
		cache:      cache.NewMemoryCache(time.Hour),
		history:    repository.NoopDAO{},
		mirror:     storage.NoopMirror{},
		metrics:    metrics.New(),
		logger:     zap.NewNop(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("component", "extractor"))

	for _, dir := range []string{e.outputDir, e.scratchDir} {
		if err := files.EnsureDir(dir); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// OutputDir returns the directory final files are written to.
func (e *Extractor) OutputDir() string {
	return e.outputDir
}

// Extract runs PENDING -> FETCHING -> NORMALIZING -> CLEANING_UP -> DONE, or
// moves to FAILED from whichever step fails. The per-call scratch directory is
// removed on every exit path, including panics and cancellation; the error of
// the failing step is returned unchanged. observer may be nil.
func (e *Extractor) Extract(ctx context.Context, req model.ExtractionRequest, observer StateObserver) (result *Result, err error) {
	r := e.newRun(req, observer)
	defer func() {
		if p := recover(); p != nil {
			err = apperrors.Wrapf(fmt.Errorf("%v", p), "extraction panicked")
			if !r.state.Terminal() {
				r.fail(err)
			}
			e.finish(ctx, r, nil, err)
			panic(p)
		}
		e.finish(ctx, r, result, err)
	}()

	if err := validateRequest(req); err != nil {
		r.fail(err)
		return nil, err
	}

	scratch := filepath.Join(e.scratchDir, r.id)
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		err = apperrors.Wrapf(err, "create scratch dir")
		r.fail(err)
		return nil, err
	}

	var partPath string
	released, renamed := false, false
	defer func() {
		if partPath != "" && !renamed {
			removeIfExists(r.logger, partPath)
		}
		if !released {
			e.releaseScratch(r.logger, scratch)
		}
	}()

	r.transition(StateFetching, nil)
	sourcePath, meta, err := e.fetcher.Fetch(ctx, req.SourceURL, scratch)
	if err != nil {
		r.fail(err)
		return nil, err
	}
	r.meta = meta

	r.transition(StateNormalizing, nil)
	finalName := FinalName(req, meta)
	finalPath := filepath.Join(e.outputDir, finalName)
	partPath = filepath.Join(e.outputDir, partName(finalName, r.id))

	if err := e.normalizer.Normalize(ctx, sourcePath, req.Format, req.SampleRate, req.Channels, partPath); err != nil {
		r.fail(err)
		return nil, err
	}
	if err := os.Rename(partPath, finalPath); err != nil {
		err = apperrors.Kind(apperrors.ErrEncode, err)
		r.fail(err)
		return nil, err
	}
	renamed = true
	r.filePath = finalPath

	r.transition(StateCleaningUp, nil)
	e.releaseScratch(r.logger, scratch)
	released = true

	r.transition(StateDone, nil)
	return &Result{
		ID:       r.id,
		FilePath: finalPath,
		FileName: finalName,
		Metadata: meta,
		States:   r.states,
	}, nil
}

// CheckTools verifies the external binaries are runnable.
func (e *Extractor) CheckTools(ctx context.Context) error {
	if err := e.fetcher.VerifyInstalled(ctx); err != nil {
		return err
	}
	return e.normalizer.VerifyInstalled(ctx)
}

// Wait blocks until detached deletions have finished.
func (e *Extractor) Wait() {
	e.background.Wait()
}

func validateRequest(req model.ExtractionRequest) error {
	if err := audio.ValidateTargets(req.Format, req.SampleRate, req.Channels); err != nil {
		return err
	}
	_, err := downloader.ParseVideoURL(req.SourceURL)
	return err
}

// releaseScratch deletes the scratch directory. Failure is logged only.
func (e *Extractor) releaseScratch(logger *zap.Logger, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		logger.Warn("scratch cleanup failed", zap.String("scratch", dir), zap.Error(err))
		return
	}
	logger.Debug("scratch removed", zap.String("scratch", dir))
}

func removeIfExists(logger *zap.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to remove partial output", zap.String("path", path), zap.Error(err))
	}
}

// finish records history, mirrors the file and updates metrics once the run
// reached a terminal state. None of these can change the outcome.
func (e *Extractor) finish(ctx context.Context, r *run, result *Result, err error) {
	if !r.state.Terminal() {
		return
	}

	code := ""
	if err != nil {
		code = apperrors.Code(err)
	}
	e.metrics.ObserveExtraction(err, code)

	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideStepTimeout)
	defer cancel()

	if result != nil && e.mirror.Enabled() {
		url, mirrorErr := e.mirror.Put(sideCtx, result.FilePath, result.FileName)
		if mirrorErr != nil {
			r.logger.Warn("mirror upload failed", zap.String("file", result.FileName), zap.Error(mirrorErr))
		} else {
			result.MirrorURL = url
		}
	}

	rec := r.record(err, code)
	if histErr := e.history.Record(sideCtx, rec); histErr != nil {
		r.logger.Warn("failed to record extraction history", zap.Error(histErr))
	}
}

// run carries the mutable state of one Extract call.
type run struct {
	id       string
	req      model.ExtractionRequest
	state    State
	states   []State
	entered  time.Time
	started  time.Time
	meta     model.VideoMetadata
	filePath string

	observer StateObserver
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func (e *Extractor) newRun(req model.ExtractionRequest, observer StateObserver) *run {
	id := e.newID()
	now := time.Now()
	return &run{
		id:       id,
		req:      req,
		state:    StatePending,
		states:   []State{StatePending},
		entered:  now,
		started:  now,
		observer: observer,
		metrics:  e.metrics,
		logger: e.logger.With(
			zap.String("extraction_id", id),
			zap.String("source_url", req.SourceURL)),
	}
}

func (r *run) transition(to State, err error) {
	if !CanTransition(r.state, to) {
		panic(fmt.Sprintf("illegal extraction transition %s -> %s", r.state, to))
	}

	now := time.Now()
	t := Transition{ExtractionID: r.id, From: r.state, To: to, Elapsed: now.Sub(r.entered), Err: err}
	if r.state != StatePending {
		r.metrics.ObserveStage(string(r.state), t.Elapsed)
	}

	r.state = to
	r.entered = now
	r.states = append(r.states, to)

	if err != nil {
		r.logger.Warn("extraction state changed",
			zap.String("from", string(t.From)),
			zap.String("to", string(to)),
			zap.String("code", apperrors.Code(err)),
			zap.Error(err))
	} else {
		r.logger.Info("extraction state changed",
			zap.String("from", string(t.From)),
			zap.String("to", string(to)),
			zap.Duration("elapsed", t.Elapsed))
	}

	if r.observer != nil {
		r.observer.OnTransition(t)
	}
}

func (r *run) fail(err error) {
	r.transition(StateFailed, err)
}

func (r *run) record(err error, code string) *model.ExtractionRecord {
	rec := &model.ExtractionRecord{
		SourceURL:  r.req.SourceURL,
		VideoID:    r.meta.ID,
		Title:      r.meta.Title,
		Format:     r.req.Format,
		SampleRate: r.req.SampleRate,
		Channels:   r.req.Channels,
		FilePath:   r.filePath,
		Status:     model.ExtractionDone,
		DurationMs: time.Since(r.started).Milliseconds(),
		CreatedAt:  r.started.UTC(),
	}
	if err != nil {
		rec.Status = model.ExtractionFailed
		rec.ErrorCode = code
		rec.ErrorMessage = err.Error()
	}
	return rec
}
