package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"wellnest/tracker-api/internal/service"
)

// Constants for context keys
const (
	ContextUserEmailKey = "userEmail"
	ContextRequestIDKey = "requestID"

	requestIDHeader = "X-Request-ID"
)

// AuthMiddleware validates the bearer token and stores the owner email in
// the gin context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := authService.ParseToken(parts[1])
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextUserEmailKey, claims.Email)
		c.Next()
	}
}

// RequestLogger tags every request with an ID and logs it once finished.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("requestId", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if email := c.GetString(ContextUserEmailKey); email != "" {
			fields = append(fields, zap.String("user", email))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request handled", fields...)
		}
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// abortWithInternal records err for the request log and hides it from the
// client.
func abortWithInternal(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, message)
}

// Helper function to get the owner email from context (used by handlers)
func getUserEmailFromContext(c *gin.Context) (string, error) {
	raw, exists := c.Get(ContextUserEmailKey)
	if !exists {
		return "", errors.New("user email not found in context")
	}
	email, ok := raw.(string)
	if !ok || email == "" {
		return "", errors.New("invalid user email in context")
	}
	return email, nil
}

// requireUser is the handler-side guard used after AuthMiddleware.
func requireUser(c *gin.Context) (string, bool) {
	email, err := getUserEmailFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return "", false
	}
	return email, true
}
