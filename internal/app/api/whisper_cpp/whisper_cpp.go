package whisper_cpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"yt2t/internal/app/audio"
	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/model"
	"yt2t/internal/app/util/command"
	"yt2t/internal/app/util/files"
)

// whisper.cpp only reads 16 kHz mono PCM.
const (
	requiredSampleRate = 16000
	requiredChannels   = 1
	beamSize           = "5"
)

// DefaultVADMinSilenceMs is the silence that splits speech segments when VAD is on.
const DefaultVADMinSilenceMs = 700

// quantSuffix maps COMPUTE_TYPE to the ggml file suffix.
var quantSuffix = map[string]string{
	"int8":    "-q8_0",
	"int5":    "-q5_0",
	"float16": "",
	"float32": "",
	"default": "",
	"":        "",
}

// Config configures LocalTranscriber.
type Config struct {
	BinaryPath   string
	ModelDir     string
	ModelSize    string
	ComputeType  string
	Device       string
	AutoDownload bool
	// VADModel enables voice activity detection with this ggml VAD model.
	VADModel string
	// VADMinSilenceMs <= 0 means DefaultVADMinSilenceMs.
	VADMinSilenceMs int
	// TempDir holds per-call output files; empty means os.TempDir().
	TempDir string
}

// normalizer converts input that is not already 16 kHz mono WAV.
type normalizer interface {
	Normalize(ctx context.Context, inputPath string, format model.AudioFormat, sampleRate, channels int, outputPath string) error
}

// LocalTranscriber runs the whisper.cpp CLI against a local ggml model.
type LocalTranscriber struct {
	cfg        Config
	runner     command.Runner
	normalizer normalizer
	downloader *ModelDownloader
	logger     *zap.Logger
}

// Option configures LocalTranscriber.
type Option func(*LocalTranscriber)

func WithCommandRunner(runner command.Runner) Option {
	return func(t *LocalTranscriber) { t.runner = runner }
}

func WithNormalizer(n normalizer) Option {
	return func(t *LocalTranscriber) { t.normalizer = n }
}

func WithModelDownloader(d *ModelDownloader) Option {
	return func(t *LocalTranscriber) { t.downloader = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(t *LocalTranscriber) { t.logger = logger }
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(cfg Config, opts ...Option) *LocalTranscriber {
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = "whisper-cli"
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.VADMinSilenceMs <= 0 {
		cfg.VADMinSilenceMs = DefaultVADMinSilenceMs
	}

	t := &LocalTranscriber{
		cfg:        cfg,
		runner:     command.NewExecRunner(),
		downloader: NewModelDownloader(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.normalizer == nil {
		t.normalizer = audio.NewNormalizer(audio.WithCommandRunner(t.runner), audio.WithLogger(t.logger))
	}
	t.logger = t.logger.With(zap.String("engine", t.Name()))
	return t
}

func (t *LocalTranscriber) Name() string { return "whisper_cpp" }

// ModelFileName returns the ggml file name for a size and compute type.
func ModelFileName(size, computeType string) (string, error) {
	suffix, ok := quantSuffix[strings.ToLower(computeType)]
	if !ok {
		return "", fmt.Errorf("unsupported compute type %q (want int8, int5, float16 or float32)", computeType)
	}
	if size == "" {
		return "", fmt.Errorf("model size is required")
	}
	return "ggml-" + size + suffix + ".bin", nil
}

// ModelPath returns where the model file is expected.
func (t *LocalTranscriber) ModelPath() (string, error) {
	name, err := ModelFileName(t.cfg.ModelSize, t.cfg.ComputeType)
	if err != nil {
		return "", err
	}
	return filepath.Join(t.cfg.ModelDir, name), nil
}

// Load makes sure the model file is present, downloading it when allowed,
// and that the CLI binary runs.
func (t *LocalTranscriber) Load(ctx context.Context) error {
	modelPath, err := t.ModelPath()
	if err != nil {
		return err
	}

	if !files.IsRegularFile(modelPath) {
		if !t.cfg.AutoDownload {
			return fmt.Errorf("model file %s not found and MODEL_AUTO_DOWNLOAD is off", modelPath)
		}
		t.logger.Info("downloading speech model", zap.String("model", modelPath))
		if err := t.downloader.Download(ctx, filepath.Base(modelPath), modelPath); err != nil {
			return fmt.Errorf("download model: %w", err)
		}
	}

	if t.cfg.VADModel != "" && !files.IsRegularFile(t.cfg.VADModel) {
		return fmt.Errorf("VAD model file %s not found", t.cfg.VADModel)
	}

	if err := t.runner.Run(ctx, t.cfg.BinaryPath, "--help"); err != nil {
		return fmt.Errorf("%s is not runnable: %w", t.cfg.BinaryPath, err)
	}
	t.logger.Info("whisper.cpp ready",
		zap.String("model", modelPath),
		zap.String("device", t.cfg.Device),
		zap.Bool("vad", t.cfg.VADModel != ""))
	return nil
}

// Transcribe runs whisper.cpp with JSON output and returns its segments.
func (t *LocalTranscriber) Transcribe(ctx context.Context, inputFilePath, language string) ([]model.TranscriptSegment, error) {
	modelPath, err := t.ModelPath()
	if err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp(t.cfg.TempDir, "whisper-")
	if err != nil {
		return nil, apperrors.Wrap(err, "create whisper work dir")
	}
	defer os.RemoveAll(workDir)

	wavPath, err := t.prepareInput(ctx, inputFilePath, workDir)
	if err != nil {
		return nil, err
	}

	outputBase := filepath.Join(workDir, "transcript")
	args := t.buildArgs(modelPath, language, wavPath, outputBase)

	t.logger.Debug("running whisper.cpp", zap.String("command", t.cfg.BinaryPath+" "+strings.Join(args, " ")))
	if err := t.runner.Run(ctx, t.cfg.BinaryPath, args...); err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.Wrap(ctx.Err(), "transcription cancelled")
		}
		return nil, apperrors.Wrapf(err, "whisper.cpp failed: %s", command.LastLine(command.Stderr(err)))
	}

	content, err := files.ReadOutputFile(outputBase + ".json")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read whisper.cpp output")
	}
	return ParseOutput([]byte(content))
}

func (t *LocalTranscriber) buildArgs(modelPath, language, wavPath, outputBase string) []string {
	if language == "" {
		language = "auto"
	}
	args := []string{
		"-m", modelPath,
		"-l", language,
		"-f", wavPath,
		"-oj",
		"-of", outputBase,
		"-np",
		"-bs", beamSize,
	}
	if strings.EqualFold(t.cfg.Device, "cpu") {
		args = append(args, "-ng")
	}
	if t.cfg.VADModel != "" {
		args = append(args,
			"--vad",
			"--vad-model", t.cfg.VADModel,
			"--vad-min-silence-duration-ms", strconv.Itoa(t.cfg.VADMinSilenceMs),
		)
	}
	return args
}

// prepareInput returns a path whisper.cpp can read, converting into workDir
// when the input is not already 16 kHz mono PCM WAV.
func (t *LocalTranscriber) prepareInput(ctx context.Context, inputFilePath, workDir string) (string, error) {
	info, err := audio.ReadWAVHeader(inputFilePath)
	if err == nil && info.Codec == "pcm" && info.SampleRate == requiredSampleRate && info.Channels == requiredChannels {
		return inputFilePath, nil
	}

	t.logger.Info("input is not 16kHz mono WAV, converting", zap.String("path", inputFilePath))
	converted := filepath.Join(workDir, "input.wav")
	if err := t.normalizer.Normalize(ctx, inputFilePath, model.FormatWAV, requiredSampleRate, requiredChannels, converted); err != nil {
		return "", err
	}
	return converted, nil
}

// output mirrors the parts of whisper.cpp's -oj document we read.
type output struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// ParseOutput converts whisper.cpp JSON (offsets in milliseconds) into
// segments.
func ParseOutput(data []byte) ([]model.TranscriptSegment, error) {
	var out output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse whisper.cpp output")
	}

	segs := make([]model.TranscriptSegment, 0, len(out.Transcription))
	for _, item := range out.Transcription {
		segs = append(segs, model.TranscriptSegment{
			Start: float64(item.Offsets.From) / 1000,
			End:   float64(item.Offsets.To) / 1000,
			Text:  item.Text,
		})
	}
	return segs, nil
}
