// Package connection provides the HTTP transport to the ETAPI service.
package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/infra/buildinfo"
	"github.com/yndnr/trilium-cli/internal/telemetry/logger"
)

// RequestObserver is notified after every round trip. Status is 0 when no
// response was received.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// HTTPClient provides HTTP communication with the server.
//
// Requests carry no timeout and are never retried; the context passed in
// is the only way to abandon one.
type HTTPClient struct {
	baseURL    string
	token      string
	authScheme string
	client     *http.Client
	limiter    *rate.Limiter
	observer   RequestObserver
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithAuthScheme sends "Authorization: <scheme> <token>" instead of the
// bare token.
func WithAuthScheme(scheme string) Option {
	return func(c *HTTPClient) {
		c.authScheme = scheme
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative means
// unlimited.
func WithRateLimit(perSecond float64) Option {
	return func(c *HTTPClient) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithTLSConfig sets the TLS configuration used for https base URLs.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *HTTPClient) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = cfg
		c.client.Transport = transport
	}
}

// WithObserver registers a RequestObserver.
func WithObserver(o RequestObserver) Option {
	return func(c *HTTPClient) {
		c.observer = o
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewHTTPClient creates a new HTTP client for server, authenticating with token.
func NewHTTPClient(server, token string, opts ...Option) *HTTPClient {
	// Ensure baseURL has http:// prefix
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	c := &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, "")
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.doJSON(ctx, http.MethodPost, path, body)
}

// Patch performs a PATCH request with JSON body.
func (c *HTTPClient) Patch(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.doJSON(ctx, http.MethodPatch, path, body)
}

// PutText performs a PUT request with a plain-text body.
func (c *HTTPClient) PutText(ctx context.Context, path, text string) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, path, strings.NewReader(text), "text/plain; charset=utf-8")
}

// Delete performs a DELETE request.
func (c *HTTPClient) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, "")
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if body == nil {
		return c.do(ctx, method, path, nil, "")
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(data), "application/json")
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.ErrTransport.WithDetailsf("%s %s", method, path).WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.addHeaders(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	route := RouteLabel(path)
	if c.observer != nil {
		c.observer.ObserveRequest(method, route, status, elapsed)
	}
	logger.L(ctx).Debug("etapi request",
		"method", method,
		"route", route,
		"status", status,
		"duration_ms", elapsed.Milliseconds(),
	)

	if err != nil {
		return nil, domain.ErrTransport.WithDetailsf("%s %s", method, path).WithCause(err)
	}
	return resp, nil
}

// addHeaders adds authentication and common headers.
func (c *HTTPClient) addHeaders(req *http.Request) {
	if c.token != "" {
		if c.authScheme != "" {
			req.Header.Set("Authorization", c.authScheme+" "+c.token)
		} else {
			req.Header.Set("Authorization", c.token)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// ParseResponse parses a JSON response body into the target struct.
// Non-2xx statuses become *domain.RemoteError.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return domain.ErrInvalidResponse.WithDetails(requestLine(resp)).WithCause(err)
		}
	}

	return nil
}

// ReadText returns a successful response body as a string.
func ReadText(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.ErrTransport.WithDetails(requestLine(resp)).WithCause(err)
	}
	return string(data), nil
}

// checkStatus drains and converts an unsuccessful response. The message is
// taken from the body's "message" or "error" field, else the raw body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	remote := &domain.RemoteError{Status: resp.StatusCode}
	if resp.Request != nil {
		remote.Method = resp.Request.Method
		remote.Path = resp.Request.URL.Path
	}

	raw, _ := io.ReadAll(resp.Body)
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	switch {
	case json.Unmarshal(raw, &errResp) == nil && errResp.Message != "":
		remote.Message = errResp.Message
	case errResp.Error != "":
		remote.Message = errResp.Error
	case len(bytes.TrimSpace(raw)) > 0:
		remote.Message = string(raw)
	default:
		remote.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return remote
}

func requestLine(resp *http.Response) string {
	if resp.Request == nil {
		return ""
	}
	return resp.Request.Method + " " + resp.Request.URL.Path
}

// RouteLabel reduces a request path to a low-cardinality route by replacing
// the segment after "notes" or "branches" with "{id}" and dropping the query.
func RouteLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		switch parts[i-1] {
		case "notes", "branches":
			if parts[i] != "" {
				parts[i] = "{id}"
			}
		}
	}
	return strings.Join(parts, "/")
}
