package api

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"audiomonpanel/pkg/logger"
	"audiomonpanel/pkg/session"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"
const requestIDKey = "request_id"

// RouteGuard protects the dashboard area. The check is cookie-only: a
// token the backend has since revoked passes here and is caught
// reactively by the proxy endpoints' auth-failed handling.
func RouteGuard(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromRequest(c.Request)

		// Missing token or role: cookies already absent or partial,
		// nothing to revoke.
		if !sess.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		// A complete but non-admin session must not be replayable
		// against the dashboard.
		if !sess.IsAdmin() {
			store.Clear(c.Writer)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequestID assigns each request a unique ID for tracing, honoring one
// supplied by an upstream proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = generateRequestID()
		}

		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

func generateRequestID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63())
}

// AccessLog logs each request with timing information.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.InfoWith("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(requestIDKey),
		)
	}
}
