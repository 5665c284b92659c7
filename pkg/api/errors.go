package api

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope returned to the pages.
// It mirrors the backend's own error shape so pages handle one format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError writes the JSON error envelope with the given status.
func respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// Error messages surfaced to the pages. MsgAuthFailed is the signal
// pages key off to clear their session and return to the login page.
const (
	MsgNotAuthenticated = "Not authenticated"
	MsgAuthFailed       = "Auth failed"
	MsgInvalidRequest   = "Invalid request"
	MsgMissingCreds     = "Username and password are required"
	MsgLoginUnavailable = "Failed to connect to authentication server"
	MsgUsersFailed      = "Failed to fetch users"
	MsgToggleRoleFailed = "Failed to toggle user role"
	MsgDeleteUserFailed = "Failed to delete user"
	MsgStatisticsFailed = "Failed to fetch statistics"
	MsgAudioListFailed  = "Failed to fetch audio list"
	MsgDownloadFailed   = "Failed to download audio"
	MsgUploadFailed     = "Failed to upload audio"
	MsgUploadGotHTML    = "Upload endpoint returned HTML (may be 404)"
	MsgPingFailed       = "Failed to ping backend"
)
