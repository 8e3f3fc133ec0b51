package audio

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/model"
	"yt2t/internal/app/util/command"
)

// DefaultMP3Bitrate is the fixed CBR tier used for MP3 output.
const DefaultMP3Bitrate = "192k"

// decodeMarkers are ffmpeg stderr fragments that mean the input could not be read.
var decodeMarkers = []string{
	"invalid data found",
	"could not find codec",
	"does not contain any stream",
	"error opening input",
	"decoding requested, but no decoder",
	"output file #0 does not contain any stream",
	"moov atom not found",
}

// Normalizer decodes arbitrary audio and re-encodes it to a fixed profile with ffmpeg.
type Normalizer struct {
	ffmpegPath  string
	ffprobePath string
	mp3Bitrate  string
	runner      command.Runner
	logger      *zap.Logger
}

// NormalizerOption is a functional option for configuring Normalizer
type NormalizerOption func(*Normalizer)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) NormalizerOption {
	return func(n *Normalizer) {
		if path != "" {
			n.ffmpegPath = path
		}
	}
}

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) NormalizerOption {
	return func(n *Normalizer) {
		if path != "" {
			n.ffprobePath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) NormalizerOption {
	return func(n *Normalizer) {
		n.runner = runner
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) NormalizerOption {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// NewNormalizer creates a new ffmpeg-based normalizer
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		mp3Bitrate:  DefaultMP3Bitrate,
		runner:      command.NewExecRunner(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(n)
	}

	n.logger = n.logger.With(zap.String("component", "normalizer"))
	return n
}

// Normalize writes inputPath re-encoded as format at sampleRate/channels to
// outputPath. Resampling and channel remixing happen in the same ffmpeg pass,
// before encoding. The produced header is read back and must match the
// targets; on mismatch the output is removed and an encode error returned.
// inputPath is never modified.
func (n *Normalizer) Normalize(ctx context.Context, inputPath string, format model.AudioFormat, sampleRate, channels int, outputPath string) error {
	if err := ValidateTargets(format, sampleRate, channels); err != nil {
		return err
	}

	info, err := os.Stat(inputPath)
	if err != nil || !info.Mode().IsRegular() {
		return apperrors.Kindf(apperrors.ErrDecode, "input %s is not a readable file", inputPath)
	}

	args := n.buildArgs(inputPath, format, sampleRate, channels, outputPath)
	n.logger.Debug("running ffmpeg",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.String("format", string(format)),
		zap.Int("sample_rate", sampleRate),
		zap.Int("channels", channels))

	if err := n.runner.Run(ctx, n.ffmpegPath, args...); err != nil {
		n.removeOutput(outputPath)
		if ctx.Err() != nil {
			return apperrors.Wrap(err, "normalize cancelled")
		}
		return classifyFFmpegError(err)
	}

	if err := n.Validate(ctx, outputPath, format, sampleRate, channels); err != nil {
		n.removeOutput(outputPath)
		return err
	}

	n.logger.Info("audio normalized",
		zap.String("output", outputPath),
		zap.String("format", string(format)),
		zap.Int("sample_rate", sampleRate),
		zap.Int("channels", channels))
	return nil
}

// ValidateTargets checks a target profile without touching the filesystem.
func ValidateTargets(format model.AudioFormat, sampleRate, channels int) error {
	switch format {
	case model.FormatWAV, model.FormatMP3:
	default:
		return apperrors.Kindf(apperrors.ErrUnsupportedFormat, "%q is not one of wav, mp3", string(format))
	}
	if sampleRate <= 0 {
		return apperrors.Kindf(apperrors.ErrInvalidRequest, "sample rate must be positive, got %d", sampleRate)
	}
	if channels != 1 && channels != 2 {
		return apperrors.Kindf(apperrors.ErrInvalidRequest, "channels must be 1 or 2, got %d", channels)
	}
	return nil
}

func (n *Normalizer) buildArgs(inputPath string, format model.AudioFormat, sampleRate, channels int, outputPath string) []string {
	args := []string{
		"-nostdin",
		"-hide_banner",
		"-y",
		"-i", inputPath,
		"-vn", // No video
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
	}

	switch format {
	case model.FormatWAV:
		args = append(args, "-c:a", "pcm_s16le", "-f", "wav")
	case model.FormatMP3:
		args = append(args, "-c:a", "libmp3lame", "-b:a", n.mp3Bitrate, "-f", "mp3")
	}

	return append(args, outputPath)
}

func (n *Normalizer) removeOutput(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		n.logger.Warn("failed to remove output", zap.String("path", path), zap.Error(err))
	}
}

// classifyFFmpegError maps an ffmpeg failure to a decode or encode error.
// Only unreadable input counts as decode; disk, permission and muxer
// failures are encode errors.
func classifyFFmpegError(err error) error {
	stderr := strings.ToLower(command.Stderr(err))
	for _, marker := range decodeMarkers {
		if strings.Contains(stderr, marker) {
			return apperrors.Kind(apperrors.ErrDecode, err)
		}
	}
	return apperrors.Kind(apperrors.ErrEncode, err)
}

// VerifyInstalled checks that ffmpeg and ffprobe are available
func (n *Normalizer) VerifyInstalled(ctx context.Context) error {
	if _, err := n.runner.Output(ctx, n.ffmpegPath, "-version"); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	if _, err := n.runner.Output(ctx, n.ffprobePath, "-version"); err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}
