package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yt2t/internal/api/middleware"
	"yt2t/internal/api/v1/dto"
	"yt2t/internal/api/v1/services"
	"yt2t/internal/app/api/provider"
	"yt2t/internal/app/model"
)

// TranscriptionHandler serves the STT service routes.
type TranscriptionHandler struct {
	service services.TranscriptionService
	timeout time.Duration
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService, timeout time.Duration) *TranscriptionHandler {
	return &TranscriptionHandler{service: service, timeout: timeout}
}

func (h *TranscriptionHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(c.Request.Context(), h.timeout)
	}
	return context.WithCancel(c.Request.Context())
}

// Transcribe handles POST /transcribe
//
// @Summary Transcribe audio to text
// @Description Receives the path to a WAV file and returns the transcribed text
// @Tags transcription
// @Accept json
// @Produce json
// @Param request body dto.TranscribeRequest true "Audio file path and language"
// @Success 200 {object} dto.TranscribeResponse
// @Failure 404 {object} errors.APIError "Audio file not found"
// @Failure 422 {object} errors.APIError "Malformed body"
// @Failure 503 {object} errors.APIError "Model not loaded"
// @Failure 500 {object} errors.APIError "Transcription failed"
// @Router /transcribe [post]
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	var req dto.TranscribeRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	text, err := h.service.Transcribe(ctx, req.WavFilePath, req.Language)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TranscribeResponse{Text: text})
}

// TranscribeTimestamps handles POST /transcribe_timestamps
//
// @Summary Transcribe audio with timestamps
// @Description Receives the path to a WAV file and returns timed segments
// @Tags transcription
// @Accept json
// @Produce json
// @Param request body dto.TranscribeRequest true "Audio file path and language"
// @Success 200 {object} dto.TimestampsResponse
// @Failure 404 {object} errors.APIError "Audio file not found"
// @Failure 422 {object} errors.APIError "Malformed body"
// @Failure 503 {object} errors.APIError "Model not loaded"
// @Failure 500 {object} errors.APIError "Transcription failed"
// @Router /transcribe_timestamps [post]
func (h *TranscriptionHandler) TranscribeTimestamps(c *gin.Context) {
	var req dto.TranscribeRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	segs, err := h.service.TranscribeWithTimestamps(ctx, req.WavFilePath, req.Language)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if segs == nil {
		segs = []model.TranscriptSegment{}
	}
	c.JSON(http.StatusOK, dto.TimestampsResponse{Segments: segs})
}

// Health handles GET /health
//
// @Summary STT health
// @Description 200 when the speech model is loaded, 503 otherwise
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *TranscriptionHandler) Health(c *gin.Context) {
	health := h.service.Health()
	status := http.StatusOK
	if health.Status != provider.StatusOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.HealthResponse{
		Status:  health.Status,
		Message: health.Message,
		Checks:  map[string]string{"engine": health.Engine},
	})
}
