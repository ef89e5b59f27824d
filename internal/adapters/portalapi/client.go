// Package portalapi is the gateway to the portal HTTP API. Every server call
// goes through one request primitive that attaches the bearer credential,
// normalizes failures into *errors.AppError and decodes JSON results.
package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/target/mdbook-portal/internal/errors"
	"github.com/target/mdbook-portal/internal/ports"
)

// DefaultBaseURL is used when Options.BaseURL is empty.
const DefaultBaseURL = "http://localhost:8080/api"

// Fallback display messages when the server gives no usable {"error": ...} body.
const (
	FallbackRequestFailed = "Request failed"
	FallbackUploadFailed  = "Upload failed"
)

// HeaderRequestID carries the per-call correlation id.
const HeaderRequestID = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read for the message.
const maxErrorBody = 1 << 20

var _ ports.PortalAPI = (*Client)(nil)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Tokens     ports.TokenSource // Optional: nil sends every request unauthenticated
	HTTPClient *http.Client      // Optional: defaults to a client without timeout
	Logger     *slog.Logger      // Optional
	UserAgent  string            // Optional
}

// Client is the portal API gateway.
type Client struct {
	baseURL   string
	tokens    ports.TokenSource
	http      *http.Client
	logger    *slog.Logger
	userAgent string
}

// New builds a Client. No client-side timeout is configured; cancellation is
// left to the caller's context and transport-level failures.
func New(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   base,
		tokens:    opts.Tokens,
		http:      hc,
		logger:    logger.With("component", "portalapi"),
		userAgent: strings.TrimSpace(opts.UserAgent),
	}
}

// BaseURL returns the API root all paths are joined to.
func (c *Client) BaseURL() string { return c.baseURL }

// request describes one API call.
type request struct {
	method string
	path   string
	body   any           // JSON body, nil for none
	upload *ports.Upload // multipart upload; mutually exclusive with body
}

func (r request) fallback() string {
	if r.upload != nil {
		return FallbackUploadFailed
	}
	return FallbackRequestFailed
}

// do performs the call and decodes a 2xx JSON body into out (when out is non-nil).
// A 204 response leaves out untouched.
func (c *Client) do(ctx context.Context, req request, out any) error {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return err
	}

	requestID := httpReq.Header.Get(HeaderRequestID)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		mapped := apperrors.MapTransportError(err)
		c.logFailure(ctx, req, requestID, 0, start, mapped)
		return mapped
	}
	defer closeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := apperrors.FromStatus(resp.StatusCode, errorMessage(resp.Body, req.fallback()))
		c.logFailure(ctx, req, requestID, resp.StatusCode, start, appErr)
		return appErr
	}

	c.logger.DebugContext(ctx, "portal request",
		"request_id", requestID,
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrap(fmt.Errorf("decode %s %s response: %w", req.method, req.path, err),
			apperrors.ErrCodeRequest, req.fallback())
	}
	return nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req request) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
		startUpload func()
	)
	switch {
	case req.upload != nil:
		body, contentType, startUpload = multipartBody(*req.upload)
	case req.body != nil:
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, apperrors.Wrap(fmt.Errorf("encode %s %s body: %w", req.method, req.path, err),
				apperrors.ErrCodeRequest, req.fallback())
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return nil, apperrors.Wrap(fmt.Errorf("create %s %s request: %w", req.method, req.path, err),
			apperrors.ErrCodeRequest, req.fallback())
	}
	if startUpload != nil {
		startUpload()
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if c.tokens != nil {
		if token := c.tokens.CurrentToken(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

func (c *Client) logFailure(ctx context.Context, req request, requestID string, status int, start time.Time, err error) {
	c.logger.WarnContext(ctx, "portal request failed",
		"request_id", requestID,
		"method", req.method,
		"path", req.path,
		"status", status,
		"duration", time.Since(start),
		"error_class", apperrors.Classify(err),
		"error", err)
}

// errorMessage extracts {"error": "..."} from an error body, or returns fallback.
func errorMessage(body io.Reader, fallback string) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return fallback
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fallback
	}
	if strings.TrimSpace(payload.Error) == "" {
		return fallback
	}
	return payload.Error
}

// closeBody drains what is left so the connection can be reused.
func closeBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBody))
	_ = body.Close()
}
