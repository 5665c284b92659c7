package api

import (
	"net/http"

	"audiomonpanel/pkg/gateway"

	"github.com/gin-gonic/gin"
)

// HandleListUsers proxies the backend user list.
//
// GET /api/proxy/admin/user
func (h *Handler) HandleListUsers(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	result, err := h.gateway.Get(c.Request.Context(), "/api/admin/user", token)
	if err != nil {
		h.log.ErrorWithErr("failed to fetch users", err)
		respondError(c, http.StatusInternalServerError, MsgUsersFailed)
		return
	}

	h.forwardAdminResult(c, result)
}

// HandleToggleUserRole flips a user between admin and user.
//
// PUT /api/proxy/admin/user/:id
func (h *Handler) HandleToggleUserRole(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	result, err := h.gateway.Put(c.Request.Context(), "/api/admin/user/"+c.Param("id"), nil, token)
	if err != nil {
		h.log.ErrorWithErr("failed to toggle user role", err, "user_id", c.Param("id"))
		respondError(c, http.StatusInternalServerError, MsgToggleRoleFailed)
		return
	}

	h.forwardAdminResult(c, result)
}

// HandleDeleteUser removes a user account.
//
// DELETE /api/proxy/admin/user/:id
func (h *Handler) HandleDeleteUser(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	result, err := h.gateway.Delete(c.Request.Context(), "/api/admin/user/"+c.Param("id"), token)
	if err != nil {
		h.log.ErrorWithErr("failed to delete user", err, "user_id", c.Param("id"))
		respondError(c, http.StatusInternalServerError, MsgDeleteUserFailed)
		return
	}

	h.forwardAdminResult(c, result)
}

// HandleStatistics proxies the backend usage statistics snapshot.
//
// GET /api/proxy/admin/statistics
func (h *Handler) HandleStatistics(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	result, err := h.gateway.Get(c.Request.Context(), "/api/admin/statistics", token)
	if err != nil {
		h.log.ErrorWithErr("failed to fetch statistics", err)
		respondError(c, http.StatusInternalServerError, MsgStatisticsFailed)
		return
	}

	h.forwardAdminResult(c, result)
}

// forwardAdminResult applies the admin endpoints' shared relay policy:
// auth failure becomes 401, other error envelopes keep the backend's
// own status, data responses come back as 200.
func (h *Handler) forwardAdminResult(c *gin.Context, result *gateway.Result) {
	switch result.Kind {
	case gateway.AuthFailed:
		respondError(c, http.StatusUnauthorized, MsgAuthFailed)
	case gateway.ValidationError:
		c.Data(result.Status, "application/json", result.Payload)
	default:
		c.Data(http.StatusOK, "application/json", result.Payload)
	}
}
