// Package gateway is the outbound HTTP client for the external AudioMon
// backend. It attaches the session token under the backend's custom
// auth header and classifies JSON responses into tagged results.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"audiomonpanel/pkg/config"
	"audiomonpanel/pkg/errs"
)

// Client issues requests against the backend API.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient creates a gateway client for the given backend base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: config.AuthHeaderName,
		httpClient: &http.Client{},
	}
}

// Get issues a GET request and classifies the JSON response.
func (c *Client) Get(ctx context.Context, path, token string, opts ...CallOption) (*Result, error) {
	return c.doJSON(ctx, http.MethodGet, path, nil, token, opts...)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, token string, opts ...CallOption) (*Result, error) {
	return c.doJSON(ctx, http.MethodPost, path, body, token, opts...)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, token string, opts ...CallOption) (*Result, error) {
	return c.doJSON(ctx, http.MethodPut, path, body, token, opts...)
}

// Delete issues a DELETE request and classifies the JSON response.
func (c *Client) Delete(ctx context.Context, path, token string, opts ...CallOption) (*Result, error) {
	return c.doJSON(ctx, http.MethodDelete, path, nil, token, opts...)
}

// Download issues a GET request and returns the raw response so the
// caller can forward bytes and headers verbatim. The caller owns the
// response body.
func (c *Client) Download(ctx context.Context, path, token string) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, token)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Upload forwards a multipart body verbatim with its original
// Content-Type (including the boundary) and returns the raw response.
// The caller owns the response body.
func (c *Client) Upload(ctx context.Context, path, token, contentType string, body io.Reader) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body, token)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, token string, opts ...CallOption) (*Result, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, reader, token)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrBackendUnreachable, err)
	}

	return Classify(resp.StatusCode, data, opts...)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build backend request: %w", err)
	}
	if token != "" {
		req.Header.Set(c.authHeader, token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrBackendUnreachable, err)
	}
	return resp, nil
}
