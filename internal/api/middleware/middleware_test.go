package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yt2t/internal/api/errors"
	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), StructuredLogging(zap.NewNop()), ErrorHandler(zap.NewNop()), CORS(DefaultCORSConfig()))
	return r
}

func TestRequestIDEchoesHeader(t *testing.T) {
	r := newRouter()
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	r := newRouter()
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body errors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, errors.KindInternal, body.Kind)
	assert.NotEmpty(t, body.RequestID)
}

func TestHandleErrorMapsDomainErrors(t *testing.T) {
	r := newRouter()
	r.GET("/missing", func(c *gin.Context) {
		HandleError(c, apperrors.Kindf(apperrors.ErrAudioNotFound, "/tmp/a.wav"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body errors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "audio_not_found", body.Code)
}

func TestNoRouteReturnsNotFoundEnvelope(t *testing.T) {
	r := newRouter()
	r.NoRoute(NoRoute())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body errors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, errors.KindNotFound, body.Kind)
	assert.Equal(t, "not_found", body.Code)
	assert.Equal(t, "route /nope not found", body.Message)
	assert.NotEmpty(t, body.RequestID)
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter()
	r.POST("/extract", func(c *gin.Context) {})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/extract", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
}

type bindTarget struct {
	Name string `json:"name" binding:"required"`
}

func TestValidateRequest(t *testing.T) {
	r := newRouter()
	r.POST("/bind", func(c *gin.Context) {
		var req bindTarget
		if err := ValidateRequest(c, &req); err != nil {
			HandleError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	for body, want := range map[string]int{
		`{"name":"ok"}`: http.StatusOK,
		`{}`:            http.StatusUnprocessableEntity,
		`{"name":`:      http.StatusUnprocessableEntity,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(body)))
		assert.Equal(t, want, w.Code, body)
	}
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m, "extractor"))
	r.GET("/download/:filename", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, name := range []string{"a.wav", "b.wav"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/download/"+name, nil))
	}

	count, err := testutil.GatherAndCount(m.Registry(), "yt2t_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
