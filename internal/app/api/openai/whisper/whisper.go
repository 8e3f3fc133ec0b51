package whisper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	oaiclient "yt2t/internal/app/api/openai"
	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/model"
)

// Config configures RemoteTranscriber.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	cfg    Config
	logger *zap.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(cfg Config, logger *zap.Logger) *RemoteTranscriber {
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteTranscriber{
		client: oaiclient.NewClient(cfg.APIKey, cfg.BaseURL),
		cfg:    cfg,
		logger: logger.With(zap.String("engine", "openai")),
	}
}

func (rt *RemoteTranscriber) Name() string { return "openai" }

// Load only checks configuration; the API is not called at startup.
func (rt *RemoteTranscriber) Load(context.Context) error {
	if rt.cfg.APIKey == "" && rt.cfg.BaseURL == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}
	rt.logger.Info("openai transcription configured", zap.String("model", rt.cfg.Model))
	return nil
}

// Transcribe requests verbose_json so the response carries segments.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, inputFilePath, language string) ([]model.TranscriptSegment, error) {
	if strings.EqualFold(language, "auto") {
		language = ""
	}

	req := openai.AudioRequest{
		Model:    rt.cfg.Model,
		FilePath: inputFilePath,
		Language: language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, classifyAPIError(err)
	}

	if len(resp.Segments) == 0 {
		if resp.Text == "" {
			return nil, nil
		}
		return []model.TranscriptSegment{{Start: 0, End: resp.Duration, Text: resp.Text}}, nil
	}

	segs := make([]model.TranscriptSegment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segs = append(segs, model.TranscriptSegment{Start: s.Start, End: s.End, Text: s.Text})
	}
	return segs, nil
}

// classifyAPIError marks rate limiting, auth and upstream outages as model
// unavailability so callers retry later; other failures are internal.
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized,
			apiErr.HTTPStatusCode == http.StatusForbidden,
			apiErr.HTTPStatusCode == http.StatusTooManyRequests,
			apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			return apperrors.Kindf(apperrors.ErrModelUnavailable, "openai returned %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return apperrors.Wrapf(err, "openai returned %d", apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode >= http.StatusInternalServerError {
		return apperrors.Kind(apperrors.ErrModelUnavailable, fmt.Errorf("openai request failed: %w", reqErr))
	}
	return apperrors.Wrap(err, "createTranscription failed")
}
