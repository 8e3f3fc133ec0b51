package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the first .env file found near the
// working directory. Variables already set in the process win. It returns the
// path that was loaded, or "" when none exists.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// Load builds Settings from defaults, then the optional YAML file named by
// YT2T_CONFIG, then environment variables, and validates the result.
func Load() (*Settings, error) {
	settings := Defaults()

	if path := strings.TrimSpace(os.Getenv(ConfigFileEnvVar)); path != "" {
		if err := LoadFile(path, &settings); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&settings); err != nil {
		return nil, err
	}

	settings.resolveDerived()

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &settings, nil
}

// InitializeConfig loads .env and then the settings. This is the main entry
// point for configuration loading.
func InitializeConfig() (*Settings, string, error) {
	envFile, err := LoadEnv()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load environment: %w", err)
	}

	settings, err := Load()
	if err != nil {
		return nil, envFile, err
	}
	return settings, envFile, nil
}

func applyEnv(s *Settings) error {
	setString(&s.Environment, "ENVIRONMENT")
	setString(&s.LogLevel, "LOG_LEVEL")
	setString(&s.Server.Host, "API_HOST")
	setString(&s.Server.Port, "API_PORT")

	setString(&s.Extractor.OutputDir, "AUDIO_OUTPUT_DIR")
	setString(&s.Extractor.ScratchDir, "SCRATCH_DIR")
	setString(&s.Extractor.Format, "DEFAULT_AUDIO_FORMAT")
	setString(&s.Extractor.YtDlpBinary, "YTDLP_BINARY")
	setString(&s.Extractor.FFmpegBinary, "FFMPEG_BINARY")
	setString(&s.Extractor.FFprobeBinary, "FFPROBE_BINARY")

	setString(&s.STT.Engine, "STT_ENGINE")
	setString(&s.STT.WhisperCppBinary, "WHISPER_CPP_BINARY")
	setString(&s.STT.ModelDir, "MODEL_DIR")
	setString(&s.STT.ModelSize, "MODEL_SIZE")
	setString(&s.STT.Device, "DEVICE")
	setString(&s.STT.ComputeType, "COMPUTE_TYPE")
	setString(&s.STT.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&s.STT.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&s.STT.OpenAIModel, "OPENAI_MODEL")
	setString(&s.STT.Language, "DEFAULT_LANGUAGE")
	setString(&s.STT.VADModel, "WHISPER_VAD_MODEL")

	setString(&s.Cache.RedisAddr, "REDIS_ADDR")
	setString(&s.Cache.RedisPassword, "REDIS_PASSWORD")

	setString(&s.History.SQLitePath, "HISTORY_DB")
	setString(&s.History.DatabaseURL, "DATABASE_URL")

	setString(&s.Mirror.Endpoint, "MINIO_ENDPOINT")
	setString(&s.Mirror.AccessKey, "MINIO_ACCESS_KEY")
	setString(&s.Mirror.SecretKey, "MINIO_SECRET_KEY")
	setString(&s.Mirror.Bucket, "MINIO_BUCKET")

	ints := []struct {
		dst *int
		key string
	}{
		{&s.Extractor.SampleRate, "DEFAULT_AUDIO_SAMPLE_RATE"},
		{&s.Extractor.Channels, "DEFAULT_AUDIO_CHANNELS"},
		{&s.STT.MaxConcurrency, "STT_MAX_CONCURRENCY"},
		{&s.STT.VADMinSilenceMs, "VAD_MIN_SILENCE_MS"},
		{&s.Cache.RedisDB, "REDIS_DB"},
	}
	for _, v := range ints {
		if err := setInt(v.dst, v.key); err != nil {
			return err
		}
	}

	durations := []struct {
		dst *time.Duration
		key string
	}{
		{&s.Extractor.Timeout, "EXTRACT_TIMEOUT"},
		{&s.STT.Timeout, "TRANSCRIBE_TIMEOUT"},
		{&s.Cache.TTL, "CACHE_TTL"},
	}
	for _, v := range durations {
		if err := setDuration(v.dst, v.key); err != nil {
			return err
		}
	}

	bools := []struct {
		dst *bool
		key string
	}{
		{&s.STT.ModelAutoDownload, "MODEL_AUTO_DOWNLOAD"},
		{&s.Mirror.UseSSL, "MINIO_USE_SSL"},
	}
	for _, v := range bools {
		if err := setBool(v.dst, v.key); err != nil {
			return err
		}
	}

	return nil
}

func lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func setString(dst *string, key string) {
	if value, ok := lookup(key); ok {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
	*dst = n
	return nil
}

// setDuration accepts Go durations ("90s", "10m") or a bare number of seconds.
func setDuration(dst *time.Duration, key string) error {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
	*dst = d
	return nil
}

func setBool(dst *bool, key string) error {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
	*dst = b
	return nil
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}
