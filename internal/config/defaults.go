package config

import "time"

// Default configuration constants
const (
	// Extractor defaults
	DefaultOutputDir      = "/tmp/youtube_audio"
	DefaultAudioFormat    = "wav"
	DefaultSampleRate     = 16000
	DefaultChannels       = 1
	DefaultExtractTimeout = 10 * time.Minute
	DefaultYtDlpBinary    = "yt-dlp"
	DefaultFFmpegBinary   = "ffmpeg"
	DefaultFFprobeBinary  = "ffprobe"

	// STT defaults
	DefaultSTTEngine          = "whisper_cpp"
	DefaultWhisperCppBinary   = "whisper-cli"
	DefaultModelDir           = "/app/models"
	DefaultModelSize          = "base"
	DefaultDevice             = "cpu"
	DefaultComputeType        = "int8"
	DefaultOpenAIModel        = "whisper-1"
	DefaultSTTConcurrency     = 2
	DefaultTranscribeTimeout  = 30 * time.Minute
	DefaultTranscribeLanguage = "ja"
	DefaultVADMinSilenceMs    = 700

	// Network defaults
	DefaultHost          = "0.0.0.0"
	DefaultExtractorPort = "8000"
	DefaultSTTPort       = "8001"

	// Supporting infrastructure
	DefaultCacheTTL    = time.Hour
	DefaultHistoryFile = "history.db"
	DefaultMinioBucket = "yt2t-audio"
	HistoryDisabled    = "off"
	ScratchDirName     = ".scratch"
	ConfigFileEnvVar   = "YT2T_CONFIG"

	// Logging and runtime mode
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"
	EnvironmentProd    = "production"

	// Upper bounds accepted by Validate
	MaxExtractTimeout    = 2 * time.Hour
	MaxTranscribeTimeout = 2 * time.Hour
)

// Service and engine names
const (
	ServiceExtractor = "extractor"
	ServiceSTT       = "stt"
	EngineWhisperCpp = "whisper_cpp"
	EngineOpenAI     = "openai"
)

// Defaults returns the settings used before any YAML file or environment
// variable is applied.
func Defaults() Settings {
	return Settings{
		Environment: DefaultEnvironment,
		LogLevel:    DefaultLogLevel,
		Server: ServerSettings{
			Host: DefaultHost,
		},
		Extractor: ExtractorSettings{
			OutputDir:     DefaultOutputDir,
			Format:        DefaultAudioFormat,
			SampleRate:    DefaultSampleRate,
			Channels:      DefaultChannels,
			Timeout:       DefaultExtractTimeout,
			YtDlpBinary:   DefaultYtDlpBinary,
			FFmpegBinary:  DefaultFFmpegBinary,
			FFprobeBinary: DefaultFFprobeBinary,
		},
		STT: STTSettings{
			Engine:           DefaultSTTEngine,
			WhisperCppBinary: DefaultWhisperCppBinary,
			ModelDir:         DefaultModelDir,
			ModelSize:        DefaultModelSize,
			Device:           DefaultDevice,
			ComputeType:      DefaultComputeType,
			OpenAIModel:      DefaultOpenAIModel,
			MaxConcurrency:   DefaultSTTConcurrency,
			Timeout:          DefaultTranscribeTimeout,
			Language:         DefaultTranscribeLanguage,
			VADMinSilenceMs:  DefaultVADMinSilenceMs,
		},
		Cache: CacheSettings{
			TTL: DefaultCacheTTL,
		},
		Mirror: MirrorSettings{
			Bucket: DefaultMinioBucket,
		},
	}
}
