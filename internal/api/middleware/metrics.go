package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"yt2t/internal/app/metrics"
)

// Metrics counts requests by matched route so path parameters do not
// explode label cardinality.
func Metrics(m *metrics.Metrics, service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(service, c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
