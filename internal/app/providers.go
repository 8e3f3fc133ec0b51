package app

import (
	"context"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"yt2t/internal/api/server"
	"yt2t/internal/api/v1/dto"
	"yt2t/internal/api/v1/handlers"
	"yt2t/internal/app/api/openai/whisper"
	"yt2t/internal/app/api/provider"
	"yt2t/internal/app/api/whisper_cpp"
	"yt2t/internal/app/audio"
	"yt2t/internal/app/cache"
	"yt2t/internal/app/common"
	"yt2t/internal/app/extractor"
	"yt2t/internal/app/metrics"
	"yt2t/internal/app/model"
	"yt2t/internal/app/repository"
	"yt2t/internal/app/repository/pg"
	"yt2t/internal/app/repository/sqlite"
	"yt2t/internal/app/storage"
	"yt2t/internal/app/util/command"
	"yt2t/internal/config"
	"yt2t/internal/downloader"
)

// HTTP server timeouts. Write is left unbounded because extraction and
// transcription requests carry their own deadlines.
const (
	readTimeout = 30 * time.Second
	idleTimeout = 2 * time.Minute
)

var baseSet = wire.NewSet(provideLogger, metrics.New, provideCommandRunner)

var extractorSet = wire.NewSet(
	provideFetcher,
	provideNormalizer,
	provideCache,
	provideHistory,
	provideMirror,
	provideExtractor,
)

var modelSet = wire.NewSet(provideEngine, provideModel)

func provideLogger(s *config.Settings) (*zap.Logger, func(), error) {
	logger, err := common.NewLogger(s.IsDevelopment(), s.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideCommandRunner() command.Runner {
	return command.NewExecRunner()
}

func provideFetcher(s *config.Settings, runner command.Runner, logger *zap.Logger) *downloader.Fetcher {
	return downloader.NewFetcher(
		downloader.WithYtDlpPath(s.Extractor.YtDlpBinary),
		downloader.WithCommandRunner(runner),
		downloader.WithLogger(logger),
	)
}

func provideNormalizer(s *config.Settings, runner command.Runner, logger *zap.Logger) *audio.Normalizer {
	return audio.NewNormalizer(
		audio.WithFFmpegPath(s.Extractor.FFmpegBinary),
		audio.WithFFprobePath(s.Extractor.FFprobeBinary),
		audio.WithCommandRunner(runner),
		audio.WithLogger(logger),
	)
}

// provideCache picks Redis when an address is configured, else the in-memory
// map.
func provideCache(s *config.Settings, logger *zap.Logger) (cache.Cache, func()) {
	var c cache.Cache
	if s.Cache.RedisAddr != "" {
		c = cache.NewRedisCache(cache.RedisOptions{
			Addr:     s.Cache.RedisAddr,
			Password: s.Cache.RedisPassword,
			DB:       s.Cache.RedisDB,
			TTL:      s.Cache.TTL,
		}, logger)
	} else {
		c = cache.NewMemoryCache(s.Cache.TTL)
	}
	return c, func() {
		if err := c.Close(); err != nil {
			logger.Warn("Failed to close cache", zap.Error(err))
		}
	}
}

// provideHistory opens Postgres when DATABASE_URL is set, SQLite otherwise,
// and nothing when history is off.
func provideHistory(s *config.Settings, logger *zap.Logger) (repository.ExtractionDAO, func(), error) {
	var (
		dao repository.ExtractionDAO
		err error
	)
	switch {
	case s.History.DatabaseURL != "":
		dao, err = pg.NewPostgresDB(s.History.DatabaseURL)
	case s.History.Enabled():
		dao, err = sqlite.NewSQLiteDB(s.History.SQLitePath)
	default:
		dao = repository.NoopDAO{}
	}
	if err != nil {
		return nil, nil, err
	}
	return dao, func() {
		if err := dao.Close(); err != nil {
			logger.Warn("Failed to close history database", zap.Error(err))
		}
	}, nil
}

func provideMirror(ctx context.Context, s *config.Settings) (storage.Mirror, error) {
	if !s.Mirror.Enabled() {
		return storage.NoopMirror{}, nil
	}
	return storage.NewMinioMirror(ctx, storage.MinioOptions{
		Endpoint:  s.Mirror.Endpoint,
		AccessKey: s.Mirror.AccessKey,
		SecretKey: s.Mirror.SecretKey,
		Bucket:    s.Mirror.Bucket,
		UseSSL:    s.Mirror.UseSSL,
	})
}

// provideExtractor waits for detached deletions on cleanup so the history
// and mirror close after them.
func provideExtractor(
	s *config.Settings,
	fetcher *downloader.Fetcher,
	normalizer *audio.Normalizer,
	c cache.Cache,
	history repository.ExtractionDAO,
	mirror storage.Mirror,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*extractor.Extractor, func(), error) {
	e, err := extractor.New(
		extractor.Config{OutputDir: s.Extractor.OutputDir, ScratchDir: s.Extractor.ScratchDir},
		fetcher,
		normalizer,
		extractor.WithCache(c),
		extractor.WithHistory(history),
		extractor.WithMirror(mirror),
		extractor.WithMetrics(m),
		extractor.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return e, e.Wait, nil
}

// provideEngine builds the configured speech engine. Loading happens in
// provideModel.
func provideEngine(s *config.Settings, runner command.Runner, normalizer *audio.Normalizer, logger *zap.Logger) provider.Engine {
	if s.STT.Engine == config.EngineOpenAI {
		return whisper.NewRemoteTranscriber(whisper.Config{
			APIKey:  s.STT.OpenAIAPIKey,
			BaseURL: s.STT.OpenAIBaseURL,
			Model:   s.STT.OpenAIModel,
		}, logger)
	}
	return whisper_cpp.NewLocalTranscriber(whisper_cpp.Config{
		BinaryPath:      s.STT.WhisperCppBinary,
		ModelDir:        s.STT.ModelDir,
		ModelSize:       s.STT.ModelSize,
		ComputeType:     s.STT.ComputeType,
		Device:          s.STT.Device,
		AutoDownload:    s.STT.ModelAutoDownload,
		VADModel:        s.STT.VADModel,
		VADMinSilenceMs: s.STT.VADMinSilenceMs,
	},
		whisper_cpp.WithCommandRunner(runner),
		whisper_cpp.WithNormalizer(normalizer),
		whisper_cpp.WithLogger(logger),
	)
}

// provideModel loads the engine once. A load failure leaves the model
// unavailable rather than failing startup, so /health can report it.
func provideModel(ctx context.Context, s *config.Settings, engine provider.Engine, m *metrics.Metrics, logger *zap.Logger) *provider.Model {
	return provider.NewModel(ctx, engine,
		provider.WithMaxConcurrency(s.STT.MaxConcurrency),
		provider.WithDefaultLanguage(s.STT.Language),
		provider.WithMetrics(m),
		provider.WithLogger(logger),
	)
}

func provideExtractionHandler(s *config.Settings, e *extractor.Extractor) *handlers.ExtractionHandler {
	return handlers.NewExtractionHandler(e, dto.ExtractionDefaults{
		Format:     model.ParseAudioFormat(s.Extractor.Format),
		SampleRate: s.Extractor.SampleRate,
		Channels:   s.Extractor.Channels,
	}, s.Extractor.Timeout)
}

func provideTranscriptionHandler(s *config.Settings, m *provider.Model) *handlers.TranscriptionHandler {
	return handlers.NewTranscriptionHandler(m, s.STT.Timeout)
}

func provideExtractorServerConfig(s *config.Settings) server.Config {
	return serverConfig(s, config.ServiceExtractor)
}

func provideSTTServerConfig(s *config.Settings) server.Config {
	return serverConfig(s, config.ServiceSTT)
}

func serverConfig(s *config.Settings, service string) server.Config {
	return server.Config{
		Service:     service,
		Addr:        s.Addr(service),
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
		Development: s.IsDevelopment(),
	}
}
