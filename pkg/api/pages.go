package api

import (
	"net/http"

	"audiomonpanel/pkg/session"

	"github.com/gin-gonic/gin"
)

// HandleLoginPage serves the login page. An admin who is already signed
// in is sent straight to the dashboard.
func (h *Handler) HandleLoginPage(c *gin.Context) {
	sess := session.FromRequest(c.Request)
	if sess.Authenticated() && sess.IsAdmin() {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", nil)
}

// HandleDashboardPage serves the dashboard overview.
func (h *Handler) HandleDashboardPage(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", nil)
}

// HandleUsersPage serves the user management page.
func (h *Handler) HandleUsersPage(c *gin.Context) {
	c.HTML(http.StatusOK, "users.html", nil)
}

// HandleAudioPage serves the audio asset management page.
func (h *Handler) HandleAudioPage(c *gin.Context) {
	c.HTML(http.StatusOK, "audio.html", nil)
}

// HandleStatisticsPage serves the statistics page.
func (h *Handler) HandleStatisticsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "statistics.html", nil)
}

// HandleForbiddenPage serves the access denied page.
func (h *Handler) HandleForbiddenPage(c *gin.Context) {
	c.HTML(http.StatusForbidden, "403.html", nil)
}

// RegisterRoutes registers the panel's routes on the Gin router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/dashboard")
	})
	router.GET("/login", h.HandleLoginPage)
	router.GET("/403", h.HandleForbiddenPage)
	router.GET("/healthz", h.HandleHealth)

	dashboard := router.Group("/dashboard", RouteGuard(h.sessions))
	dashboard.GET("", h.HandleDashboardPage)
	dashboard.GET("/users", h.HandleUsersPage)
	dashboard.GET("/audio", h.HandleAudioPage)
	dashboard.GET("/statistics", h.HandleStatisticsPage)

	auth := router.Group("/api/auth")
	auth.POST("/login", h.HandleLogin)
	auth.POST("/logout", h.HandleLogout)

	proxy := router.Group("/api/proxy")
	proxy.GET("/admin/statistics", h.HandleStatistics)
	proxy.GET("/admin/user", h.HandleListUsers)
	proxy.PUT("/admin/user/:id", h.HandleToggleUserRole)
	proxy.DELETE("/admin/user/:id", h.HandleDeleteUser)
	proxy.GET("/audio/list", h.HandleAudioList)
	proxy.GET("/audio/download/:id", h.HandleAudioDownload)
	proxy.POST("/audio/upload", h.HandleAudioUpload)
	proxy.GET("/ping", h.HandlePing)
}
