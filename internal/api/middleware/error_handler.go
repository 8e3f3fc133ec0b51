package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yt2t/internal/api/errors"
)

// ErrorHandler turns panics into APIError responses.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError
		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = &errors.APIError{Kind: errors.KindInternal, Message: "Internal server error", Code: "internal"}
		default:
			logger.Error("Unknown panic occurred",
				zap.String("recovered", fmt.Sprint(recovered)),
				zap.String("request_id", requestID),
			)
			apiErr = &errors.APIError{Kind: errors.KindInternal, Message: "Internal server error", Code: "internal"}
		}

		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// NoRoute answers unmatched paths with a not_found APIError.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiErr := errors.NewNotFoundError("route " + c.Request.URL.Path)
		apiErr.RequestID = c.GetString(RequestIDKey)
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	}
}

// HandleError writes err as an APIError response and aborts the chain.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := errors.FromError(err)
	apiErr.RequestID = c.GetString(RequestIDKey)
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
