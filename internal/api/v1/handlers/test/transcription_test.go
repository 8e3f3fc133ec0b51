package test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yt2t/internal/api/middleware"
	"yt2t/internal/api/v1/handlers"
	"yt2t/internal/api/v1/routes"
	"yt2t/internal/app/api/provider"
	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/model"
)

func setupSTTRouter(t *testing.T) (*gin.Engine, *mockTranscriptionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(zap.NewNop()))

	svc := &mockTranscriptionService{}
	routes.RegisterSTTRoutes(router, handlers.NewTranscriptionHandler(svc, time.Minute))
	t.Cleanup(func() { svc.AssertExpectations(t) })
	return router, svc
}

func TestTranscriptionHandler_Transcribe(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mockTranscriptionService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "success",
			body: map[string]string{"wav_file_path": "/tmp/a.wav", "language": "ja"},
			setupMocks: func(s *mockTranscriptionService) {
				s.On("Transcribe", mock.Anything, "/tmp/a.wav", "ja").Return("こんにちは", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "audio not found",
			body: map[string]string{"wav_file_path": "/tmp/missing.wav"},
			setupMocks: func(s *mockTranscriptionService) {
				s.On("Transcribe", mock.Anything, "/tmp/missing.wav", "").
					Return("", apperrors.Kindf(apperrors.ErrAudioNotFound, "/tmp/missing.wav"))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "audio_not_found",
		},
		{
			name: "model unavailable",
			body: map[string]string{"wav_file_path": "/tmp/a.wav"},
			setupMocks: func(s *mockTranscriptionService) {
				s.On("Transcribe", mock.Anything, "/tmp/a.wav", "").Return("", apperrors.ErrModelUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "model_unavailable",
		},
		{
			name: "engine failure",
			body: map[string]string{"wav_file_path": "/tmp/a.wav"},
			setupMocks: func(s *mockTranscriptionService) {
				s.On("Transcribe", mock.Anything, "/tmp/a.wav", "").Return("", apperrors.New("whisper crashed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "internal",
		},
		{
			name:           "missing path",
			body:           map[string]string{"language": "ja"},
			setupMocks:     func(s *mockTranscriptionService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupSTTRouter(t)
			tt.setupMocks(svc)

			w := do(router, http.MethodPost, "/transcribe", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			body := decode(t, w)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["code"])
			}
			if w.Code == http.StatusOK {
				assert.Equal(t, "こんにちは", body["text"])
			}
		})
	}
}

func TestTranscriptionHandler_Timestamps(t *testing.T) {
	router, svc := setupSTTRouter(t)
	svc.On("TranscribeWithTimestamps", mock.Anything, "/tmp/a.wav", "en").Return([]model.TranscriptSegment{
		{Start: 0, End: 1.5, Text: " Hello"},
		{Start: 1.5, End: 2, Text: " world"},
	}, nil)

	w := do(router, http.MethodPost, "/transcribe_timestamps", map[string]string{"wav_file_path": "/tmp/a.wav", "language": "en"})
	require.Equal(t, http.StatusOK, w.Code)

	segs := decode(t, w)["segments"].([]interface{})
	require.Len(t, segs, 2)
	first := segs[0].(map[string]interface{})
	assert.Equal(t, 1.5, first["end"])
	assert.Equal(t, " Hello", first["text"])
}

func TestTranscriptionHandler_Health(t *testing.T) {
	router, svc := setupSTTRouter(t)
	svc.On("Health").Return(provider.HealthStatus{Status: provider.StatusOK, Message: "loaded", Engine: "whisper_cpp"}).Once()
	svc.On("Health").Return(provider.HealthStatus{Status: provider.StatusUnavailable, Message: "model missing"}).Once()

	w := do(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = do(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
