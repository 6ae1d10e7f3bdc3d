package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger logs every request at debug level, and server errors at error level.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	}
	if c.Writer.Status() >= 500 {
		h.log.Errorw("http_request", fields...)
		return
	}
	h.log.Debugw("http_request", fields...)
}
