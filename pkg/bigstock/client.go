package bigstock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Base URLs of the two Bigstock OAuth2 API environments.
const (
	ProductionURL  = "https://api.bigstockphoto.com/2/oauth2"
	DevelopmentURL = "https://testapi.bigstockphoto.com/2/oauth2"
)

// TokenEndpoint is the endpoint that exchanges client credentials for a token.
const TokenEndpoint = "token"

// Environment selects which Bigstock API host a client talks to.
type Environment int

const (
	// Production is the live API. It is the zero value.
	Production Environment = iota
	// Development is the test API host.
	Development
)

// String returns the lower-case name of the environment.
func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Development:
		return "development"
	default:
		return fmt.Sprintf("environment(%d)", int(e))
	}
}

// BaseURL returns the API base URL for the environment.
func (e Environment) BaseURL() string {
	if e == Development {
		return DevelopmentURL
	}

	return ProductionURL
}

// ParseEnvironment converts a name to an Environment. Accepted names are
// "production" (or "prod") and "development" (or "dev", "test"); the empty
// string means production.
func ParseEnvironment(name string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "production", "prod":
		return Production, nil
	case "development", "dev", "test":
		return Development, nil
	default:
		return Production, fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
	}
}

// Params holds the query parameters of a request.
type Params map[string]string

// Client is a Bigstock OAuth2 API client.
type Client interface {
	// SetClientCredentials stores the partner id and secret used to fetch tokens.
	SetClientCredentials(clientID, clientSecret string)
	// SetToken stores a bearer token granted by the token endpoint.
	SetToken(token string)
	// Request POSTs to endpoint and returns the decoded JSON response.
	Request(ctx context.Context, endpoint string, params Params) (*Response, error)
	// URL returns the full request URL for endpoint and params.
	URL(endpoint string, params Params) string
	// Token returns the bearer token, fetching one when only credentials are held.
	Token(ctx context.Context) (string, error)
	// TokenSource adapts the client to golang.org/x/oauth2.
	TokenSource(ctx context.Context) oauth2.TokenSource
	// Environment reports the environment fixed at construction.
	Environment() Environment
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a bigstock.Client.
//
// # Authentication
//
// Provide ClientID/ClientSecret, AccessToken, or both. With an AccessToken the
// client uses it directly; with credentials only, the first request fetches a
// token from the token endpoint. Either can also be supplied after
// construction through SetClientCredentials and SetToken.
//
// # TLS
//
// Certificate verification is on. InsecureSkipVerify turns it off, and is only
// honored when the BIGSTOCK_DEV_MODE environment variable is "true" or "1";
// do not use it in production.
type Config struct {
	// Environment selects the API host. Defaults to Production.
	Environment Environment
	// BaseURL overrides the environment's base URL (e.g. for a proxy or a test server).
	BaseURL string

	// ClientID: partner (application) identifier.
	ClientID string
	// ClientSecret: secret key tied to ClientID.
	ClientSecret string
	// AccessToken: bearer token to use instead of fetching one.
	AccessToken string

	// HTTPTimeout bounds every HTTP round trip. Zero uses the default of 30s.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the client and its HTTP layer.
	Logger Logger
	// InsecureSkipVerify disables TLS certificate verification (development only).
	InsecureSkipVerify bool
}

// ResolvedBaseURL returns BaseURL when set, otherwise the environment's URL,
// without a trailing slash.
func (c *Config) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}

	return c.Environment.BaseURL()
}

// Response is a decoded API response.
type Response struct {
	StatusCode int
	Header     http.Header
	// Body is the raw response body.
	Body []byte
	// Data is the body decoded as JSON: map[string]interface{}, []interface{},
	// string, float64, bool, or nil for an empty body or JSON null.
	Data interface{}
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v interface{}) error {
	if len(strings.TrimSpace(string(r.Body))) == 0 {
		return ErrEmptyResponse
	}

	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// Object returns Data as a JSON object, or false when it is not one.
func (r *Response) Object() (map[string]interface{}, bool) {
	obj, ok := r.Data.(map[string]interface{})

	return obj, ok
}
