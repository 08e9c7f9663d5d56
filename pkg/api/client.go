package api

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/souk-hq/souk-go/internal/logger"
)

// Client is the single choke point for all marketplace API traffic.
// Construct one per process at the composition root and pass it down;
// tests build isolated instances against httptest servers.
type Client struct {
	http *resty.Client
	log  logger.Logger

	mu    sync.RWMutex
	token string
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Logger  logger.Logger
}

// New creates a Client for the given base URL.
func New(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logger.NopLogger{}
	}

	hc := resty.New()
	hc.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	if opts.Timeout > 0 {
		hc.SetTimeout(opts.Timeout)
	}

	return &Client{http: hc, log: log}
}

// SetAuthToken makes all subsequent requests carry "Authorization: Bearer <token>".
// An empty token clears the header for subsequent calls.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// AuthToken returns the currently injected bearer token, empty when unset.
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// filePayload describes a multipart file upload.
type filePayload struct {
	param    string
	filename string
	reader   io.Reader
}

// requestSpec is one planned HTTP call against the base URL.
type requestSpec struct {
	method  string
	path    string
	query   map[string]string
	body    any
	headers map[string]string
	file    *filePayload
}

// RequestOptions customizes a raw Request call.
type RequestOptions struct {
	Query   map[string]string
	Body    any
	Headers map[string]string
}

// Request issues a raw call against the base URL and normalizes the outcome
// into the uniform envelope. The typed resource methods are thin wrappers
// over this primitive; it is exported for endpoints the client does not cover.
func Request[T any](ctx context.Context, c *Client, method, path string, opts RequestOptions) Response[T] {
	return do[T](ctx, c, requestSpec{
		method:  method,
		path:    path,
		query:   opts.Query,
		body:    opts.Body,
		headers: opts.Headers,
	})
}

// do issues the request described by spec and normalizes every outcome into a
// Response. It never returns a Go error: transport failures, non-2xx statuses
// and undecodable bodies all land in the envelope's failure shape.
func do[T any](ctx context.Context, c *Client, spec requestSpec) Response[T] {
	req := c.http.R().SetContext(ctx)

	// Default content type; the multipart path lets resty set the boundary.
	if spec.file == nil {
		req.SetHeader("Content-Type", "application/json")
	}
	if tok := c.AuthToken(); tok != "" {
		req.SetAuthToken(tok)
	}
	if len(spec.query) > 0 {
		req.SetQueryParams(spec.query)
	}
	if spec.body != nil {
		req.SetBody(spec.body)
	}
	if spec.file != nil {
		req.SetFileReader(spec.file.param, spec.file.filename, spec.file.reader)
	}
	// Caller-supplied headers win over the defaults above.
	if len(spec.headers) > 0 {
		req.SetHeaders(spec.headers)
	}

	resp, err := req.Execute(spec.method, spec.path)
	if err != nil {
		c.log.WarnObj("request transport failure", "request_meta", map[string]any{
			"method": spec.method,
			"path":   spec.path,
			"error":  err.Error(),
		})
		return fail[T](KindConnectivity, msgConnectivity)
	}

	if resp.IsError() {
		errMsg := serverMessage(resp.Body())
		if errMsg == "" {
			errMsg = msgServerError
		}
		c.log.DebugObj("request rejected", "request_meta", map[string]any{
			"method": spec.method,
			"path":   spec.path,
			"status": resp.StatusCode(),
		})
		return fail[T](kindForStatus(resp.StatusCode()), errMsg)
	}

	body := resp.Body()
	if len(body) == 0 {
		return ok[T](nil, "")
	}

	var data T
	if err := json.Unmarshal(body, &data); err != nil {
		c.log.WarnObj("response decode failure", "request_meta", map[string]any{
			"method": spec.method,
			"path":   spec.path,
			"error":  err.Error(),
		})
		return fail[T](KindConnectivity, msgBadPayload)
	}
	return ok(&data, serverMessage(body))
}
