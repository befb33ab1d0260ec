package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key holding the request id
const requestIDKey = "request_id"

// RequestID returns the request id assigned by Logger
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger middleware tags each request with an id and logs it on completion.
// An incoming X-Request-ID is kept.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Printf("[%s] %s %s %d %v req=%s %s",
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
			id,
			c.Errors.String(),
		)
	}
}
