package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultTimeout bounds a single call to the routing service.
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 1 << 20

	httpMaxIdleConns    = 4
	httpIdleConnTimeout = 30 * time.Second

	requestIDHeader = "X-Request-ID"
)

// HTTPClient implements Client against the routing service's JSON API.
// The base URL is fixed at construction.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	newID      func() string
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the default pooled, instrumented http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTimeout sets the per-call deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPClient returns a client rooted at baseURL, e.g.
// "http://localhost:8000/api/v1". Endpoint paths are appended to it.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("routing: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("routing: base url %q must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("routing: base url %q has no host", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	c := &HTTPClient{
		baseURL: u,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		transport := &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        httpMaxIdleConns,
			MaxIdleConnsPerHost: httpMaxIdleConns,
			IdleConnTimeout:     httpIdleConnTimeout,
		}
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: otelhttp.NewTransport(transport),
		}
	}
	return c, nil
}

// BaseURL returns the configured service root.
func (c *HTTPClient) BaseURL() string { return c.baseURL.String() }

// Health reports nil when the service answers /health with a 2xx status.
func (c *HTTPClient) Health(ctx context.Context) error {
	status, body, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	if !isOK(status) {
		return &ServiceRejection{Status: status, Detail: parseDetail(body)}
	}
	return nil
}

// Graph loads the location network summary.
func (c *HTTPClient) Graph(ctx context.Context) (GraphInfo, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/graph", nil)
	if err != nil {
		return GraphInfo{}, err
	}
	if !isOK(status) {
		return GraphInfo{}, &ServiceRejection{Status: status, Detail: parseDetail(body)}
	}
	return decodeGraph(body)
}

// Route asks the service for the shortest path between q.Start and q.End.
// Non-ok answers become *ServiceRejection; anything that prevents a typed
// result from being produced becomes *TransportFailure.
func (c *HTTPClient) Route(ctx context.Context, q RouteQuery) (RouteResult, error) {
	payload, err := json.Marshal(q)
	if err != nil {
		return RouteResult{}, &TransportFailure{Op: "marshal request", Err: err}
	}
	status, body, err := c.do(ctx, http.MethodPost, "/route", payload)
	if err != nil {
		return RouteResult{}, err
	}
	if !isOK(status) {
		return RouteResult{}, &ServiceRejection{Status: status, Detail: parseDetail(body)}
	}
	return decodeRoute(body)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(reqCtx, method, endpoint, reader)
	if err != nil {
		return 0, nil, &TransportFailure{Op: "create request", Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	id := c.newID()
	req.Header.Set(requestIDHeader, id)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("routing request failed", "id", id, "method", method, "path", path, "err", err)
		return 0, nil, &TransportFailure{Op: "http", Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, &TransportFailure{Op: "read response", Err: err}
	}
	c.logger.Debug("routing request",
		"id", id,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)
	return resp.StatusCode, body, nil
}

func isOK(status int) bool { return status >= 200 && status < 300 }

// unwrapURLError strips the *url.Error envelope so the surfaced message names
// the cause ("connection refused") rather than repeating method and URL.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}
