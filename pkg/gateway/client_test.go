package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"audiomonpanel/pkg/config"
	"audiomonpanel/pkg/errs"
)

func TestGetAttachesAuthHeader(t *testing.T) {
	var gotHeader string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(config.AuthHeaderName)
		w.Write([]byte(`{"ping":"pong"}`))
	}))
	defer backend.Close()

	client := NewClient(backend.URL)
	result, err := client.Get(context.Background(), "/api/ping", "tok-123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotHeader != "tok-123" {
		t.Errorf("Expected auth header tok-123, got %q", gotHeader)
	}
	if result.Kind != Ok {
		t.Errorf("Expected Ok result, got %v", result.Kind)
	}
}

func TestGetOmitsAuthHeaderWithoutToken(t *testing.T) {
	var hasHeader bool
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasHeader = r.Header[config.AuthHeaderName]
		w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	if _, err := NewClient(backend.URL).Get(context.Background(), "/api/ping", ""); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if hasHeader {
		t.Error("Auth header should not be set without a token")
	}
}

func TestPostSerializesJSONBody(t *testing.T) {
	var gotBody, gotContentType string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"token":"t1","role":"admin"}`))
	}))
	defer backend.Close()

	client := NewClient(backend.URL)
	body := map[string]string{"username": "a", "password": "p"}
	result, err := client.Post(context.Background(), "/api/login", body, "")
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotContentType)
	}
	if !strings.Contains(gotBody, `"username":"a"`) {
		t.Errorf("Body not serialized as JSON: %s", gotBody)
	}
	if result.Kind != Ok {
		t.Errorf("Expected Ok, got %v", result.Kind)
	}
}

func TestErrorEnvelopeParsedRegardlessOfStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"username taken"}`))
	}))
	defer backend.Close()

	result, err := NewClient(backend.URL).Get(context.Background(), "/api/admin/user", "t")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.Kind != ValidationError {
		t.Errorf("Expected ValidationError, got %v", result.Kind)
	}
	if result.Status != http.StatusForbidden {
		t.Errorf("Expected status 403 recorded, got %d", result.Status)
	}
	if result.Message != "username taken" {
		t.Errorf("Expected envelope message, got %q", result.Message)
	}
}

func TestAuthFailedSentinel(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Auth failed"}`))
	}))
	defer backend.Close()

	result, err := NewClient(backend.URL).Get(context.Background(), "/api/admin/user", "stale")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.Kind != AuthFailed {
		t.Errorf("Expected AuthFailed, got %v", result.Kind)
	}
}

func TestLegacyAuthSentinelRequiresOption(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Auth failed1"}`))
	}))
	defer backend.Close()

	client := NewClient(backend.URL)

	result, err := client.Get(context.Background(), "/api/audioList", "stale")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.Kind != ValidationError {
		t.Errorf("Without the option, Auth failed1 should be ValidationError, got %v", result.Kind)
	}

	result, err = client.Get(context.Background(), "/api/audioList", "stale", WithLegacyAuthSentinel())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.Kind != AuthFailed {
		t.Errorf("With the option, Auth failed1 should be AuthFailed, got %v", result.Kind)
	}
}

func TestArrayBodyIsData(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"username":"a","role":"admin"}]`))
	}))
	defer backend.Close()

	result, err := NewClient(backend.URL).Get(context.Background(), "/api/admin/user", "t")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.Kind != Ok {
		t.Errorf("Array body should classify as Ok, got %v", result.Kind)
	}
	if string(result.Payload) != `[{"id":1,"username":"a","role":"admin"}]` {
		t.Errorf("Payload not preserved verbatim: %s", result.Payload)
	}
}

func TestNonJSONBodyIsBadResponse(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>404</html>"))
	}))
	defer backend.Close()

	_, err := NewClient(backend.URL).Get(context.Background(), "/api/admin/user", "t")
	if !errors.Is(err, errs.ErrBadBackendResponse) {
		t.Errorf("Expected ErrBadBackendResponse, got %v", err)
	}
}

func TestTransportErrorIsDistinguishable(t *testing.T) {
	// Closed server port: connection refused.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	_, err := NewClient(backend.URL).Get(context.Background(), "/api/ping", "")
	if !errors.Is(err, errs.ErrBackendUnreachable) {
		t.Errorf("Expected ErrBackendUnreachable, got %v", err)
	}
}

func TestDownloadReturnsRawResponse(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/ogg")
		w.Header().Set("Content-Disposition", `attachment; filename="x.ogg"`)
		w.Write([]byte("OggS\x00binary"))
	}))
	defer backend.Close()

	resp, err := NewClient(backend.URL).Download(context.Background(), "/api/audioDownload/7", "t")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("Content-Type") != "audio/ogg" {
		t.Errorf("Content-Type not preserved: %s", resp.Header.Get("Content-Type"))
	}
	data, _ := io.ReadAll(resp.Body)
	if string(data) != "OggS\x00binary" {
		t.Errorf("Binary body not preserved: %q", data)
	}
}

func TestUploadForwardsContentType(t *testing.T) {
	var gotContentType string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"success":"uploaded"}`))
	}))
	defer backend.Close()

	boundary := "multipart/form-data; boundary=xyz"
	resp, err := NewClient(backend.URL).Upload(context.Background(), "/api/uploadAudio", "t", boundary, strings.NewReader("--xyz--"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	resp.Body.Close()

	if gotContentType != boundary {
		t.Errorf("Multipart content type not forwarded: %q", gotContentType)
	}
}
