package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/bigstock/internal/constants"
	"github.com/fivetwenty-io/bigstock/internal/metrics"
	"github.com/fivetwenty-io/bigstock/pkg/bigstock"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// Logger is the structured logger used by the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// BasicAuth holds HTTP Basic credentials.
type BasicAuth struct {
	Username string
	Password string
}

// Request is a form POST against an API endpoint.
type Request struct {
	// Endpoint is appended to the base URL as a path segment.
	Endpoint string
	Query    url.Values
	Form     url.Values
	Auth     *BasicAuth
	Headers  map[string]string
}

// Response is a completed HTTP exchange, whatever its status.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends requests to one base URL.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	logger     Logger
	debug      bool
	userAgent  string
	timeout    time.Duration
	insecure   bool
	transport  http.RoundTripper
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(c *Client) {
		c.insecure = insecure
	}
}

// WithTransport replaces the pooled default transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: constants.DefaultUserAgent,
		timeout:   constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	// One attempt per call; failures go straight back to the caller.
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = client.timeout

	if client.debug && client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	} else {
		retryClient.Logger = nil
	}

	if client.transport != nil {
		retryClient.HTTPClient.Transport = client.transport
	}

	if client.insecure {
		if transport, ok := retryClient.HTTPClient.Transport.(*http.Transport); ok {
			transport = transport.Clone()
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in, gated on development mode by the caller
			retryClient.HTTPClient.Transport = transport
		}
	}

	client.httpClient = retryClient

	return client
}

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns {baseURL}/{endpoint}, followed by ?query when query is non-empty.
func (c *Client) URL(endpoint string, query url.Values) string {
	return BuildURL(c.baseURL, endpoint, query)
}

// BuildURL joins base and endpoint with a slash and appends the encoded
// query, if any.
func BuildURL(base, endpoint string, query url.Values) string {
	var builder strings.Builder

	builder.WriteString(base)
	builder.WriteString("/")
	builder.WriteString(endpoint)

	if len(query) > 0 {
		builder.WriteString("?")
		builder.WriteString(query.Encode())
	}

	return builder.String()
}

// Do POSTs req and returns the response. Only a failed exchange is an
// error; non-2xx responses are returned as they are.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.URL(req.Endpoint, req.Query)
	start := time.Now()

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, fullURL, []byte(req.Form.Encode()))
	if err != nil {
		return nil, &bigstock.TransportError{Method: http.MethodPost, URL: fullURL, Err: err}
	}

	httpReq.Header.Set("Content-Type", constants.ContentTypeForm)
	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	requestID := httpReq.Header.Get(constants.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
		httpReq.Header.Set(constants.HeaderRequestID, requestID)
	}

	if req.Auth != nil {
		httpReq.SetBasicAuth(req.Auth.Username, req.Auth.Password)
	}

	if c.debug && c.logger != nil {
		fields := map[string]interface{}{
			"method":     http.MethodPost,
			"url":        fullURL,
			"form":       maskForm(req.Form),
			"request_id": requestID,
		}

		if req.Auth != nil {
			fields["basic_auth"] = req.Auth.Username + ":" + constants.MaskedSecret
		}

		c.logger.Debug("HTTP Request", fields)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// The passthrough error handler can hand back a response with the error.
		if resp != nil {
			_ = resp.Body.Close()
		}

		c.observe(req.Endpoint, metrics.StatusError, start)

		return nil, &bigstock.TransportError{Method: http.MethodPost, URL: fullURL, Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(req.Endpoint, metrics.StatusError, start)

		return nil, &bigstock.TransportError{Method: http.MethodPost, URL: fullURL, Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.observe(req.Endpoint, strconv.Itoa(resp.StatusCode), start)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":     resp.StatusCode,
			"url":        fullURL,
			"bytes":      len(body),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

func (c *Client) observe(endpoint, status string, start time.Time) {
	label := metrics.EndpointLabel(endpoint)

	metrics.RequestsTotal.WithLabelValues(label, status).Inc()
	metrics.RequestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
}

// maskForm encodes form with the access token hidden.
func maskForm(form url.Values) string {
	if form.Get(constants.FormAccessToken) == "" {
		return form.Encode()
	}

	masked := make(url.Values, len(form))
	for key, values := range form {
		masked[key] = values
	}

	masked.Set(constants.FormAccessToken, constants.MaskedSecret)

	return masked.Encode()
}

func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
