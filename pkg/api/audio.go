package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"audiomonpanel/pkg/gateway"

	"github.com/gin-gonic/gin"
)

// HandleAudioList proxies the backend audio catalog. This endpoint also
// recognizes the backend's "Auth failed1" spelling, and forwards
// non-auth error envelopes with a fixed 400.
//
// GET /api/proxy/audio/list
func (h *Handler) HandleAudioList(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	result, err := h.gateway.Get(c.Request.Context(), "/api/audioList", token, gateway.WithLegacyAuthSentinel())
	if err != nil {
		h.log.ErrorWithErr("failed to fetch audio list", err)
		respondError(c, http.StatusInternalServerError, MsgAudioListFailed)
		return
	}

	switch result.Kind {
	case gateway.AuthFailed:
		respondError(c, http.StatusUnauthorized, MsgAuthFailed)
	case gateway.ValidationError:
		c.Data(http.StatusBadRequest, "application/json", result.Payload)
	default:
		c.Data(http.StatusOK, "application/json", result.Payload)
	}
}

// HandleAudioDownload streams the binary audio payload through to the
// browser, preserving the backend's content headers and defaulting them
// when absent.
//
// GET /api/proxy/audio/download/:id
func (h *Handler) HandleAudioDownload(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	id := c.Param("id")
	resp, err := h.gateway.Download(c.Request.Context(), "/api/audioDownload/"+id, token)
	if err != nil {
		h.log.ErrorWithErr("failed to download audio", err, "audio_id", id)
		respondError(c, http.StatusInternalServerError, MsgDownloadFailed)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		h.log.ErrorWith("backend refused audio download",
			"audio_id", id, "status", resp.StatusCode, "body", string(body))
		respondError(c, resp.StatusCode, MsgDownloadFailed)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	disposition := resp.Header.Get("Content-Disposition")
	if disposition == "" {
		disposition = fmt.Sprintf("attachment; filename=%q", "audio-"+id+".mp3")
	}

	c.Header("Content-Disposition", disposition)
	c.DataFromReader(http.StatusOK, resp.ContentLength, contentType, resp.Body, nil)
}

// HandleAudioUpload forwards the multipart form (title, artist, lat,
// lon, optional description, audio file) to the backend unmodified. An
// HTML response body means the backend route is gone; that is surfaced
// as a 404 instead of a parse failure.
//
// POST /api/proxy/audio/upload
func (h *Handler) HandleAudioUpload(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	contentType := c.GetHeader("Content-Type")
	resp, err := h.gateway.Upload(c.Request.Context(), "/api/uploadAudio", token, contentType, c.Request.Body)
	if err != nil {
		h.log.ErrorWithErr("failed to upload audio", err)
		respondError(c, http.StatusInternalServerError, MsgUploadFailed)
		return
	}
	defer resp.Body.Close()

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		respondError(c, http.StatusNotFound, MsgUploadGotHTML)
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.log.ErrorWithErr("failed to read upload response", err)
		respondError(c, http.StatusInternalServerError, MsgUploadFailed)
		return
	}

	result, err := gateway.Classify(resp.StatusCode, body)
	if err != nil {
		h.log.ErrorWithErr("unexpected upload response", err)
		respondError(c, http.StatusInternalServerError, MsgUploadFailed)
		return
	}

	switch result.Kind {
	case gateway.AuthFailed:
		respondError(c, http.StatusUnauthorized, MsgAuthFailed)
	case gateway.ValidationError:
		c.Data(result.Status, "application/json", result.Payload)
	default:
		c.Data(http.StatusOK, "application/json", result.Payload)
	}
}
