package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string, max time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > max {
		return fmt.Errorf("%s timeout too large (max %s)", name, max)
	}
	return nil
}

// ValidateConcurrency validates concurrency setting
func ValidateConcurrency(concurrency int, name string) error {
	if concurrency <= 0 {
		return fmt.Errorf("%s concurrency must be positive", name)
	}
	if concurrency > 100 {
		return fmt.Errorf("%s concurrency too high (max 100)", name)
	}
	return nil
}

// ValidatePort validates port number
func ValidatePort(port string, name string) error {
	if port == "" {
		return fmt.Errorf("%s port is required", name)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%s port invalid: %q", name, port)
	}

	return nil
}

// ValidateAudioFormat validates the default output container
func ValidateAudioFormat(format string) error {
	switch strings.ToLower(format) {
	case "wav", "mp3":
		return nil
	default:
		return fmt.Errorf("unsupported default audio format %q (want wav or mp3)", format)
	}
}

// ValidateSampleRate validates a sample rate in Hz
func ValidateSampleRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", rate)
	}
	return nil
}

// ValidateChannels validates a channel count
func ValidateChannels(channels int) error {
	if channels != 1 && channels != 2 {
		return fmt.Errorf("channels must be 1 or 2, got %d", channels)
	}
	return nil
}

// ValidateEngine validates the STT engine name
func ValidateEngine(engine string) error {
	switch engine {
	case EngineWhisperCpp, EngineOpenAI:
		return nil
	default:
		return fmt.Errorf("unknown STT engine %q (want %s or %s)", engine, EngineWhisperCpp, EngineOpenAI)
	}
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}
