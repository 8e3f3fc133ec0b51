package provider

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/metrics"
	"yt2t/internal/app/model"
	"yt2t/internal/app/util/files"
)

// Endpoint labels for metrics.
const (
	EndpointTranscribe = "transcribe"
	EndpointTimestamps = "transcribe_timestamps"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// HealthStatus is reported by the STT service's /health route.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Engine  string `json:"engine,omitempty"`
}

// Model is the service context of the STT gateway. It is built once at
// process start and is read-only afterwards.
type Model struct {
	engine   Engine
	ready    bool
	initErr  error
	language string

	slots   *semaphore.Weighted
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// ModelOption configures NewModel.
type ModelOption func(*Model)

// WithMaxConcurrency bounds the number of in-flight inferences.
func WithMaxConcurrency(n int) ModelOption {
	return func(m *Model) {
		if n > 0 {
			m.slots = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithDefaultLanguage is used when a request names no language.
func WithDefaultLanguage(lang string) ModelOption {
	return func(m *Model) {
		if lang != "" {
			m.language = lang
		}
	}
}

func WithMetrics(mt *metrics.Metrics) ModelOption {
	return func(m *Model) { m.metrics = mt }
}

func WithLogger(logger *zap.Logger) ModelOption {
	return func(m *Model) { m.logger = logger }
}

// NewModel loads engine and records whether it succeeded. A failed load does
// not stop the process: every call then fails with ErrModelUnavailable.
func NewModel(ctx context.Context, engine Engine, opts ...ModelOption) *Model {
	m := &Model{
		engine:   engine,
		language: "ja",
		slots:    semaphore.NewWeighted(1),
		metrics:  metrics.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("component", "stt"))

	if engine == nil {
		m.initErr = apperrors.New("no speech engine configured")
		m.logger.Error("speech model unavailable", zap.Error(m.initErr))
		return m
	}

	start := time.Now()
	if err := engine.Load(ctx); err != nil {
		m.initErr = err
		m.logger.Error("speech model failed to load",
			zap.String("engine", engine.Name()),
			zap.Error(err))
		return m
	}
	m.ready = true
	m.logger.Info("speech model loaded",
		zap.String("engine", engine.Name()),
		zap.Duration("elapsed", time.Since(start)))
	return m
}

// Ready reports whether the engine loaded.
func (m *Model) Ready() bool {
	return m.ready
}

// Health describes the model state for probes.
func (m *Model) Health() HealthStatus {
	name := ""
	if m.engine != nil {
		name = m.engine.Name()
	}
	if !m.ready {
		msg := "speech model is not loaded"
		if m.initErr != nil {
			msg = msg + ": " + m.initErr.Error()
		}
		return HealthStatus{Status: StatusUnavailable, Message: msg, Engine: name}
	}
	return HealthStatus{Status: StatusOK, Message: "speech model is loaded", Engine: name}
}

// Transcribe returns the flat transcript of the audio at path. It equals the
// concatenation of TranscribeWithTimestamps' segment texts.
func (m *Model) Transcribe(ctx context.Context, path, language string) (string, error) {
	segs, err := m.run(ctx, EndpointTranscribe, path, language)
	if err != nil {
		return "", err
	}
	return JoinText(segs), nil
}

// TranscribeWithTimestamps returns timed segments ordered by start.
func (m *Model) TranscribeWithTimestamps(ctx context.Context, path, language string) ([]model.TranscriptSegment, error) {
	return m.run(ctx, EndpointTimestamps, path, language)
}

func (m *Model) run(ctx context.Context, endpoint, path, language string) (segs []model.TranscriptSegment, err error) {
	start := time.Now()
	defer func() { m.metrics.ObserveTranscription(endpoint, err, time.Since(start)) }()

	if !m.ready {
		return nil, apperrors.Kind(apperrors.ErrModelUnavailable, m.initErr)
	}
	if !files.IsRegularFile(path) {
		return nil, apperrors.Kindf(apperrors.ErrAudioNotFound, "%s does not exist", path)
	}
	if language == "" {
		language = m.language
	}

	if err := m.slots.Acquire(ctx, 1); err != nil {
		return nil, apperrors.Wrap(err, "waiting for a transcription slot")
	}
	defer m.slots.Release(1)

	logger := m.logger.With(zap.String("path", path), zap.String("language", language))
	logger.Info("transcription started", zap.String("endpoint", endpoint))

	raw, err := m.engine.Transcribe(ctx, path, language)
	if err != nil {
		logger.Error("transcription failed", zap.Error(err))
		return nil, err
	}

	segs = NormalizeSegments(raw)
	logger.Info("transcription finished",
		zap.Int("segments", len(segs)),
		zap.Duration("elapsed", time.Since(start)))
	return segs, nil
}
