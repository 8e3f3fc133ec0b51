package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "yt2t/docs" // Generated swagger docs
	"yt2t/internal/api/middleware"
	"yt2t/internal/api/v1/dto"
	"yt2t/internal/api/v1/handlers"
	"yt2t/internal/api/v1/routes"
	"yt2t/internal/app/metrics"
)

// Version is reported at GET /.
const Version = "1.0"

// Config represents API server configuration
type Config struct {
	Service      string
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Development  bool
}

// Server represents one of the two HTTP services.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewExtractorServer builds the extractor service.
func NewExtractorServer(config Config, h *handlers.ExtractionHandler, m *metrics.Metrics, logger *zap.Logger) *Server {
	info := dto.ServiceInfo{
		Message:       "YouTube Audio Extractor",
		Version:       Version,
		Documentation: "/swagger/index.html",
		Endpoints: map[string]string{
			"extract":  "POST /extract",
			"info":     "GET /info?url=",
			"download": "GET /download/{filename}",
			"files":    "GET /files",
			"delete":   "DELETE /files/{filename}",
			"history":  "GET /history",
			"health":   "GET /health",
			"metrics":  "GET /metrics",
		},
	}
	return newServer(config, info, m, logger, func(r gin.IRouter) { routes.RegisterExtractorRoutes(r, h) })
}

// NewSTTServer builds the STT service.
func NewSTTServer(config Config, h *handlers.TranscriptionHandler, m *metrics.Metrics, logger *zap.Logger) *Server {
	info := dto.ServiceInfo{
		Message:       "Speech-to-Text Processor",
		Version:       Version,
		Documentation: "/swagger/index.html",
		Endpoints: map[string]string{
			"transcribe":            "POST /transcribe",
			"transcribe_timestamps": "POST /transcribe_timestamps",
			"health":                "GET /health",
			"metrics":               "GET /metrics",
		},
	}
	return newServer(config, info, m, logger, func(r gin.IRouter) { routes.RegisterSTTRoutes(r, h) })
}

func newServer(config Config, info dto.ServiceInfo, m *metrics.Metrics, logger *zap.Logger, register func(gin.IRouter)) *Server {
	if config.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger = logger.With(zap.String("service", config.Service))

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.Metrics(m, config.Service))

	register(router)

	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	})
	router.NoRoute(middleware.NoRoute())

	return &Server{
		config: config,
		router: router,
		httpServer: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("Starting API server", zap.String("address", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
