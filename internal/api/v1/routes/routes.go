package routes

import (
	"github.com/gin-gonic/gin"

	"yt2t/internal/api/v1/handlers"
)

// RegisterExtractorRoutes registers the extractor service routes.
func RegisterExtractorRoutes(router gin.IRouter, h *handlers.ExtractionHandler) {
	router.POST("/extract", h.Extract)
	router.GET("/info", h.Info)
	router.GET("/download/:filename", h.Download)
	router.GET("/history", h.History)

	files := router.Group("/files")
	{
		files.GET("", h.ListFiles)
		files.DELETE("/:filename", h.Delete)
	}

	router.GET("/health", h.Health)
}

// RegisterSTTRoutes registers the STT service routes.
func RegisterSTTRoutes(router gin.IRouter, h *handlers.TranscriptionHandler) {
	router.POST("/transcribe", h.Transcribe)
	router.POST("/transcribe_timestamps", h.TranscribeTimestamps)
	router.GET("/health", h.Health)
}
