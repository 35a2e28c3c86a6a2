package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	slowRequest     = 5 * time.Second
)

// requestID keeps a caller supplied id or mints one.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)
		fields := []zap.Field{
			zap.String(requestIDKey, c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("duration", duration),
		}

		fn := s.logger.Info
		if duration > slowRequest {
			fn = s.logger.Warn
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			fn = s.logger.Error
		}
		fn(fmt.Sprintf("%s %s (%d)", c.Request.Method, c.Request.URL.Path, c.Writer.Status()), fields...)
	}
}

// recovery turns a panic into a 500, or a silent abort when the client
// connection is already gone.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			var brokenPipe bool
			if err, ok := rec.(error); ok {
				var ne *net.OpError
				var se *os.SyscallError
				if errors.As(err, &ne) && errors.As(ne.Err, &se) {
					msg := strings.ToLower(se.Error())
					brokenPipe = strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
				}
			}

			s.logger.Error("panic recovered",
				zap.Any("panic", rec),
				zap.Stack("stack"),
				zap.String(requestIDKey, c.GetString(requestIDKey)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)

			if brokenPipe {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{
				Error:   "Internal server error",
				Message: "An unexpected error occurred while fetching stock data",
				Sources: []attribution{},
			})
		}()
		c.Next()
	}
}

// timeout bounds every request's context. d <= 0 disables it.
func (s *Server) timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
