package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/dkaras/relocost/internal/common"
	"github.com/dkaras/relocost/internal/models"
)

// HTTPClient implements Client over the service's REST interface.
//
// Two cross-cutting policies live here rather than in per-call code:
// the session credential is attached to every outgoing request, and any
// 401 response fires the authRejected hook (normally wired to clear the
// session store) no matter which operation produced it.
type HTTPClient struct {
	baseURL      string
	hc           *http.Client
	tokens       TokenSource
	authRejected func()
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client (e.g. to adjust the
// request timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// WithTokenSource wires the session credential provider.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithAuthRejectedHook registers fn to run whenever any request comes back
// with a 401-equivalent response.
func WithAuthRejectedHook(fn func()) Option {
	return func(c *HTTPClient) { c.authRejected = fn }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.postJSON(ctx, "/login", models.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetConfig(ctx context.Context) (*models.RemoteConfig, error) {
	var resp models.RemoteConfig
	if err := c.do(ctx, http.MethodGet, "/config", "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CalculateEstimate(ctx context.Context, in models.EstimationInputs) (*models.EstimationResult, error) {
	var resp models.EstimationResult
	if err := c.postJSON(ctx, "/estimate/calculate", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UploadBatch(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	var resp models.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/estimate/batch", mw.FormDataContentType(), &body, &resp); err != nil {
		return "", err
	}
	return resp.JobID, nil
}

func (c *HTTPClient) GetBatchJob(ctx context.Context, jobID string) (*models.BatchJob, error) {
	var resp models.BatchJob
	if err := c.do(ctx, http.MethodGet, "/estimate/batch/"+url.PathEscape(jobID), "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in any, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data), out)
}

// do issues a single request. The current credential (if any) and a request
// id are attached; the response body is decoded into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthHeaderName, common.AuthScheme+" "+token)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.authRejected != nil {
		c.authRejected()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts a human-readable message from an error body,
// falling back to the standard status text.
func errorMessage(status int, data []byte) string {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Detail != "" {
			return body.Detail
		}
	}
	return http.StatusText(status)
}
