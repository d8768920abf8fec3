// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scormforge/scormforge/pkg/errors"
	"github.com/scormforge/scormforge/pkg/idgen"
	"github.com/scormforge/scormforge/pkg/logger"
)

// LoggerConfig holds the configuration for the Logger middleware
type LoggerConfig struct {
	// AccessLog determines if HTTP request logs should be printed at info level
	// When true, successful requests (status < 400) are logged; when false, they are not
	AccessLog bool
}

// Logger returns a middleware that logs HTTP requests
// If cfg is nil, defaults to not logging access requests (accessLog = false)
func Logger(cfg *LoggerConfig) gin.HandlerFunc {
	accessLog := false
	if cfg != nil {
		accessLog = cfg.AccessLog
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Duration("latency", latency),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("Server error", fields...)
		case status >= 400:
			logger.Warn("Client error", fields...)
		default:
			if accessLog {
				logger.Info("Request", fields...)
			}
		}
	}
}

// Recovery returns a middleware that recovers from panics
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.ByteString("stack", stack),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    errors.ErrCodeInternal,
					"message": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// CORS returns a middleware that handles CORS headers with origin whitelist validation
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originSet[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && originSet[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Request-ID")
			c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Type, Content-Disposition, X-Package-Identifier, X-Build-ID")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Max-Age", "86400")
		}

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			if origin != "" && originSet[origin] {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}

// RequestID returns a middleware that adds a request ID to the context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = idgen.NewRequestID()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// ErrorHandler returns a middleware that handles errors uniformly.
// In production mode (debugMode=false), sensitive error details are hidden.
func ErrorHandler(debugMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if appErr, ok := errors.AsAppError(err); ok {
				response := gin.H{
					"code": appErr.Code,
				}
				// For internal errors, always hide message; for other errors, show message
				if appErr.HTTPStatus() >= http.StatusInternalServerError && !debugMode {
					response["message"] = "Internal server error"
				} else {
					response["message"] = appErr.Message
				}
				if appErr.Details != nil {
					response["details"] = appErr.Details
				}
				c.JSON(appErr.HTTPStatus(), response)
				return
			}

			msg := "Internal server error"
			if debugMode {
				msg = err.Error()
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    errors.ErrCodeInternal,
				"message": msg,
			})
		}
	}
}
