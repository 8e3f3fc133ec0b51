package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"yt2t/internal/api/errors"
	"yt2t/internal/api/middleware"
	"yt2t/internal/api/v1/dto"
	"yt2t/internal/api/v1/services"
	"yt2t/internal/app/extractor"
	"yt2t/internal/app/model"
)

const healthCheckTimeout = 5 * time.Second

// ExtractionHandler serves the extractor service routes.
type ExtractionHandler struct {
	service  services.ExtractionService
	defaults dto.ExtractionDefaults
	timeout  time.Duration
}

// NewExtractionHandler creates a new extraction handler. timeout bounds each
// extraction; zero means no bound beyond the client's.
func NewExtractionHandler(service services.ExtractionService, defaults dto.ExtractionDefaults, timeout time.Duration) *ExtractionHandler {
	return &ExtractionHandler{service: service, defaults: defaults, timeout: timeout}
}

// Extract handles POST /extract
//
// @Summary Extract audio from a YouTube video
// @Description Downloads the video's audio and normalizes it to the requested format, sample rate and channel count
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.ExtractRequest true "Extraction request"
// @Success 200 {object} dto.ExtractResponse
// @Failure 400 {object} errors.APIError "Unsupported format or source"
// @Failure 422 {object} errors.APIError "Malformed body"
// @Failure 500 {object} errors.APIError "Extraction failed"
// @Router /extract [post]
func (h *ExtractionHandler) Extract(c *gin.Context) {
	var req dto.ExtractRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.service.Extract(ctx, req.ToModel(h.defaults), nil)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExtractResponse{
		ID:          result.ID,
		FilePath:    result.FilePath,
		DownloadURL: "/download/" + result.FileName,
		VideoTitle:  result.Metadata.Title,
		Duration:    result.Metadata.DurationSeconds,
		VideoInfo:   result.Metadata,
		States:      lo.Map(result.States, func(s extractor.State, _ int) string { return string(s) }),
		MirrorURL:   result.MirrorURL,
	})
}

// Info handles GET /info
//
// @Summary Get video metadata
// @Description Returns metadata for a YouTube video without downloading it
// @Tags extraction
// @Produce json
// @Param url query string true "YouTube URL"
// @Success 200 {object} model.VideoMetadata
// @Failure 400 {object} errors.APIError "Unsupported source"
// @Failure 500 {object} errors.APIError "Lookup failed"
// @Router /info [get]
func (h *ExtractionHandler) Info(c *gin.Context) {
	var query dto.InfoQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	meta, err := h.service.Probe(c.Request.Context(), query.URL)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

// Download handles GET /download/:filename
//
// @Summary Download an extracted audio file
// @Tags files
// @Produce octet-stream
// @Param filename path string true "File name"
// @Success 200 {file} file
// @Failure 400 {object} errors.APIError "Invalid file name"
// @Failure 404 {object} errors.APIError "File not found"
// @Router /download/{filename} [get]
func (h *ExtractionHandler) Download(c *gin.Context) {
	name := c.Param("filename")
	path, err := h.service.ResolveFile(name)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Content-Type", "audio/"+strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."))
	c.FileAttachment(path, name)
}

// ListFiles handles GET /files
//
// @Summary List extracted audio files
// @Tags files
// @Produce json
// @Success 200 {object} dto.FilesResponse
// @Router /files [get]
func (h *ExtractionHandler) ListFiles(c *gin.Context) {
	names, err := h.service.ListFiles()
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, dto.FilesResponse{Files: names})
}

// Delete handles DELETE /files/:filename
//
// @Summary Delete an extracted audio file
// @Description Schedules the deletion and returns immediately
// @Tags files
// @Produce json
// @Param filename path string true "File name"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} errors.APIError "Invalid file name"
// @Failure 404 {object} errors.APIError "File not found"
// @Router /files/{filename} [delete]
func (h *ExtractionHandler) Delete(c *gin.Context) {
	name := c.Param("filename")
	if err := h.service.DeleteFileAsync(name); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "File " + name + " will be deleted"})
}

// History handles GET /history
//
// @Summary List recent extractions
// @Tags extraction
// @Produce json
// @Param limit query int false "Maximum records" minimum(1) maximum(500)
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} errors.APIError "Invalid limit"
// @Router /history [get]
func (h *ExtractionHandler) History(c *gin.Context) {
	var query dto.HistoryQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	records, err := h.service.ListHistory(c.Request.Context(), query.Limit)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if records == nil {
		records = []model.ExtractionRecord{}
	}
	c.JSON(http.StatusOK, dto.HistoryResponse{Records: records, Count: len(records)})
}

// Health handles GET /health
//
// @Summary Extractor health
// @Description 200 when yt-dlp, ffmpeg and ffprobe are runnable
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *ExtractionHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.service.CheckTools(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "unavailable",
			Message: errors.FromError(err).Message,
		})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Message: "yt-dlp and ffmpeg are available"})
}
