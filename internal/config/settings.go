package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Settings is the complete runtime configuration for both services.
type Settings struct {
	Environment string            `yaml:"environment"`
	LogLevel    string            `yaml:"log_level"`
	Server      ServerSettings    `yaml:"server"`
	Extractor   ExtractorSettings `yaml:"extractor"`
	STT         STTSettings       `yaml:"stt"`
	Cache       CacheSettings     `yaml:"cache"`
	History     HistorySettings   `yaml:"history"`
	Mirror      MirrorSettings    `yaml:"mirror"`
}

// ServerSettings holds the bind address. An empty Port means the service default.
type ServerSettings struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// ExtractorSettings configures the extraction pipeline.
type ExtractorSettings struct {
	OutputDir     string        `yaml:"output_dir"`
	ScratchDir    string        `yaml:"scratch_dir"`
	Format        string        `yaml:"format"`
	SampleRate    int           `yaml:"sample_rate"`
	Channels      int           `yaml:"channels"`
	Timeout       time.Duration `yaml:"timeout"`
	YtDlpBinary   string        `yaml:"ytdlp_binary"`
	FFmpegBinary  string        `yaml:"ffmpeg_binary"`
	FFprobeBinary string        `yaml:"ffprobe_binary"`
}

// STTSettings configures the transcription gateway and its engine.
type STTSettings struct {
	Engine            string        `yaml:"engine"`
	WhisperCppBinary  string        `yaml:"whisper_cpp_binary"`
	ModelDir          string        `yaml:"model_dir"`
	ModelSize         string        `yaml:"model_size"`
	Device            string        `yaml:"device"`
	ComputeType       string        `yaml:"compute_type"`
	ModelAutoDownload bool          `yaml:"model_auto_download"`
	VADModel          string        `yaml:"vad_model"`
	VADMinSilenceMs   int           `yaml:"vad_min_silence_ms"`
	OpenAIAPIKey      string        `yaml:"openai_api_key"`
	OpenAIBaseURL     string        `yaml:"openai_base_url"`
	OpenAIModel       string        `yaml:"openai_model"`
	MaxConcurrency    int           `yaml:"max_concurrency"`
	Timeout           time.Duration `yaml:"timeout"`
	Language          string        `yaml:"language"`
}

// CacheSettings configures the probe metadata cache. Empty RedisAddr selects
// the in-memory cache.
type CacheSettings struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

// HistorySettings selects the extraction history backend. DatabaseURL wins over
// SQLitePath; SQLitePath "off" disables history.
type HistorySettings struct {
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
}

// MirrorSettings configures the optional MinIO mirror.
type MirrorSettings struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Enabled reports whether a MinIO endpoint is configured.
func (m MirrorSettings) Enabled() bool {
	return strings.TrimSpace(m.Endpoint) != ""
}

// Enabled reports whether extraction history should be recorded.
func (h HistorySettings) Enabled() bool {
	return h.DatabaseURL != "" || !strings.EqualFold(h.SQLitePath, HistoryDisabled)
}

// IsDevelopment reports whether the development presets (gin debug, console
// logs) apply.
func (s *Settings) IsDevelopment() bool {
	return !strings.EqualFold(s.Environment, EnvironmentProd)
}

// Addr returns host:port for the named service.
func (s *Settings) Addr(service string) string {
	port := s.Server.Port
	if port == "" {
		port = DefaultExtractorPort
		if service == ServiceSTT {
			port = DefaultSTTPort
		}
	}
	return fmt.Sprintf("%s:%s", s.Server.Host, port)
}

// resolveDerived fills paths that default relative to other settings.
func (s *Settings) resolveDerived() {
	s.Extractor.Format = strings.ToLower(strings.TrimSpace(s.Extractor.Format))
	if s.Extractor.ScratchDir == "" {
		s.Extractor.ScratchDir = filepath.Join(s.Extractor.OutputDir, ScratchDirName)
	}
	if s.History.SQLitePath == "" {
		s.History.SQLitePath = filepath.Join(s.Extractor.OutputDir, DefaultHistoryFile)
	}
}

// Validate checks the settings for values neither service can run with.
func (s *Settings) Validate() error {
	if s.Extractor.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if err := ValidateAudioFormat(s.Extractor.Format); err != nil {
		return err
	}
	if err := ValidateSampleRate(s.Extractor.SampleRate); err != nil {
		return err
	}
	if err := ValidateChannels(s.Extractor.Channels); err != nil {
		return err
	}
	if err := ValidateTimeout(s.Extractor.Timeout, "extract", MaxExtractTimeout); err != nil {
		return err
	}
	if err := ValidateTimeout(s.STT.Timeout, "transcribe", MaxTranscribeTimeout); err != nil {
		return err
	}
	if err := ValidateConcurrency(s.STT.MaxConcurrency, "stt"); err != nil {
		return err
	}
	if err := ValidateEngine(s.STT.Engine); err != nil {
		return err
	}
	if s.STT.OpenAIBaseURL != "" {
		if err := ValidateURL(s.STT.OpenAIBaseURL, "OpenAI base"); err != nil {
			return err
		}
	}
	if s.Server.Port != "" {
		if err := ValidatePort(s.Server.Port, "API"); err != nil {
			return err
		}
	}
	if s.STT.VADMinSilenceMs < 0 {
		return fmt.Errorf("VAD minimum silence must not be negative")
	}
	if s.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive (CACHE_TTL=%s)", s.Cache.TTL)
	}
	if s.Mirror.Enabled() && s.Mirror.Bucket == "" {
		return fmt.Errorf("mirror bucket is required when MINIO_ENDPOINT is set")
	}
	return nil
}
