// Package api exposes the panel's same-origin HTTP surface: the auth
// and proxy endpoints consumed by the pages, the page routes, and the
// route guard protecting the dashboard area.
package api

import (
	"encoding/json"
	"net/http"

	"audiomonpanel/pkg/gateway"
	"audiomonpanel/pkg/health"
	"audiomonpanel/pkg/logger"
	"audiomonpanel/pkg/session"

	"github.com/gin-gonic/gin"
)

// Handler encapsulates the proxy endpoints and page handlers.
type Handler struct {
	gateway  *gateway.Client
	sessions *session.Store
	monitor  *health.Monitor
	log      *logger.Logger
}

// NewHandler creates a new panel handler.
func NewHandler(gw *gateway.Client, sessions *session.Store, monitor *health.Monitor) *Handler {
	return &Handler{
		gateway:  gw,
		sessions: sessions,
		monitor:  monitor,
		log:      logger.Get().With("component", "api"),
	}
}

// requireToken resolves the session token or short-circuits with 401
// before any backend call is made.
func (h *Handler) requireToken(c *gin.Context) (string, bool) {
	sess := session.FromRequest(c.Request)
	if sess.Token == "" {
		respondError(c, http.StatusUnauthorized, MsgNotAuthenticated)
		return "", false
	}
	return sess.Token, true
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginBackendResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// HandleLogin authenticates against the backend and writes the session
// cookie pair on success.
//
// POST /api/auth/login
func (h *Handler) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, MsgMissingCreds)
		return
	}

	result, err := h.gateway.Post(c.Request.Context(), "/api/login", req, "")
	if err != nil {
		h.log.ErrorWithErr("backend login failed", err, "username", req.Username)
		respondError(c, http.StatusInternalServerError, MsgLoginUnavailable)
		return
	}

	if result.Kind != gateway.Ok {
		// Invalid credentials or any other backend rejection: no cookies.
		respondError(c, http.StatusUnauthorized, result.Message)
		return
	}

	var backend loginBackendResponse
	if err := json.Unmarshal(result.Payload, &backend); err != nil || backend.Token == "" || backend.Role == "" {
		h.log.ErrorWith("backend login returned no token/role pair", "username", req.Username)
		respondError(c, http.StatusInternalServerError, MsgLoginUnavailable)
		return
	}

	h.sessions.Write(c.Writer, backend.Token, backend.Role)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"role":    backend.Role,
	})
}

// HandleLogout clears the session cookie pair. Always succeeds.
//
// POST /api/auth/logout
func (h *Handler) HandleLogout(c *gin.Context) {
	h.sessions.Clear(c.Writer)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandlePing forwards the backend liveness check without auth and feeds
// the health monitor with the outcome.
//
// GET /api/proxy/ping
func (h *Handler) HandlePing(c *gin.Context) {
	result, err := h.gateway.Get(c.Request.Context(), "/api/ping", "")
	if err != nil {
		h.monitor.SetComponentStatus(health.BackendComponent, health.StatusUnhealthy, err.Error())
		h.log.ErrorWithErr("backend ping failed", err)
		respondError(c, http.StatusInternalServerError, MsgPingFailed)
		return
	}

	h.monitor.SetComponentStatus(health.BackendComponent, health.StatusHealthy, "ping ok")
	c.Data(http.StatusOK, "application/json", result.Payload)
}

// HandleHealth reports panel process health.
//
// GET /healthz
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Report())
}
