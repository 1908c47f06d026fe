package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fivetwenty-io/bigstock/internal/auth"
	"github.com/fivetwenty-io/bigstock/internal/constants"
	"github.com/fivetwenty-io/bigstock/internal/http"
	"github.com/fivetwenty-io/bigstock/internal/metrics"
	"github.com/fivetwenty-io/bigstock/pkg/bigstock"
	"golang.org/x/oauth2"
)

// Client implements the bigstock.Client interface.
type Client struct {
	httpClient  *http.Client
	session     *auth.Session
	environment bigstock.Environment
	logger      bigstock.Logger
	now         func() time.Time
}

var _ bigstock.Client = (*Client)(nil)

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv(constants.DevModeEnv)

	return devMode == "true" || devMode == "1"
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *bigstock.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.InsecureSkipVerify {
		httpOpts = append(httpOpts, http.WithInsecureSkipVerify(true))
	}

	return httpOpts
}

// New creates a new Bigstock API client.
func New(config *bigstock.Config) (*Client, error) {
	if config == nil {
		return nil, bigstock.ErrConfigRequired
	}

	// Only allow insecure TLS in explicit development environments
	if config.InsecureSkipVerify && !isDevelopmentEnvironment() {
		return nil, fmt.Errorf("%w (set %s=true)", bigstock.ErrSkipTLSOnlyInDev, constants.DevModeEnv)
	}

	client := &Client{
		httpClient:  http.NewClient(config.ResolvedBaseURL(), createHTTPClientOptions(config)...),
		session:     auth.NewSession(),
		environment: config.Environment,
		logger:      config.Logger,
		now:         time.Now,
	}

	if config.ClientID != "" || config.ClientSecret != "" {
		client.SetClientCredentials(config.ClientID, config.ClientSecret)
	}

	if config.AccessToken != "" {
		client.SetToken(config.AccessToken)
	}

	return client, nil
}

// SetClientCredentials implements bigstock.Client.SetClientCredentials.
func (c *Client) SetClientCredentials(clientID, clientSecret string) {
	c.session.SetCredentials(clientID, clientSecret)
}

// SetToken implements bigstock.Client.SetToken.
func (c *Client) SetToken(token string) {
	c.session.SetToken(auth.NewToken(token, "", 0, c.now()))
}

// Environment implements bigstock.Client.Environment.
func (c *Client) Environment() bigstock.Environment {
	return c.environment
}

// URL implements bigstock.Client.URL.
func (c *Client) URL(endpoint string, params bigstock.Params) string {
	return c.httpClient.URL(endpoint, toValues(params))
}

// Request implements bigstock.Client.Request.
func (c *Client) Request(ctx context.Context, endpoint string, params bigstock.Params) (*bigstock.Response, error) {
	isTokenRequest := endpoint == bigstock.TokenEndpoint

	if !isTokenRequest {
		_, err := c.session.Acquire(ctx, c.fetchToken)
		if err != nil {
			return nil, err
		}
	}

	state := c.session.State()

	err := auth.CheckRequired(state, isTokenRequest)
	if err != nil {
		return nil, err
	}

	req := &http.Request{
		Endpoint: endpoint,
		Query:    toValues(params),
	}

	if isTokenRequest {
		creds := auth.CredentialsOf(state)
		req.Auth = &http.BasicAuth{Username: creds.ClientID, Password: creds.ClientSecret}
		req.Form = url.Values{constants.FormGrantType: []string{constants.GrantTypeClientCredentials}}
	} else {
		token, _ := auth.TokenOf(state)
		req.Form = url.Values{constants.FormAccessToken: []string{token.AccessToken}}
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := decodeJSON(resp.Body)
	if err != nil {
		return nil, &bigstock.ProtocolError{Err: fmt.Errorf("%w: %w", bigstock.ErrInvalidResponse, err)}
	}

	return &bigstock.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Headers,
		Body:       resp.Body,
		Data:       data,
	}, nil
}

// Token implements bigstock.Client.Token.
func (c *Client) Token(ctx context.Context) (string, error) {
	token, err := c.session.Acquire(ctx, c.fetchToken)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// TokenSource implements bigstock.Client.TokenSource.
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, client: c}
}

// fetchToken requests a token from the token endpoint and parses the response.
func (c *Client) fetchToken(ctx context.Context) (auth.Token, error) {
	token, err := c.requestToken(ctx)
	if err != nil {
		metrics.TokenFetchesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		c.logWarn("Token request failed", map[string]interface{}{"error": err.Error()})

		return auth.Token{}, err
	}

	metrics.TokenFetchesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	c.logInfo("Fetched access token", map[string]interface{}{
		"token_type": token.TokenType,
		"expires_in": token.ExpiresIn,
	})

	return token, nil
}

func (c *Client) requestToken(ctx context.Context) (auth.Token, error) {
	resp, err := c.Request(ctx, bigstock.TokenEndpoint, nil)
	if err != nil {
		if errors.Is(err, bigstock.ErrInvalidResponse) {
			return auth.Token{}, &bigstock.ProtocolError{Err: fmt.Errorf("%w: %w", bigstock.ErrCannotFetchToken, err)}
		}

		return auth.Token{}, err
	}

	if resp.Data == nil {
		return auth.Token{}, &bigstock.ProtocolError{Err: bigstock.ErrCannotFetchToken}
	}

	obj, ok := resp.Object()
	if !ok {
		return auth.Token{}, &bigstock.ProtocolError{Err: bigstock.ErrCannotParseToken}
	}

	if code, exists := obj[constants.TokenFieldError]; exists && code != nil {
		return auth.Token{}, &bigstock.ProtocolError{
			Code:        stringField(code),
			Description: stringField(obj[constants.TokenFieldErrorDescription]),
			Err:         bigstock.ErrTokenRequestFailed,
		}
	}

	accessToken, ok := obj[constants.TokenFieldAccessToken].(string)
	if !ok {
		return auth.Token{}, &bigstock.ProtocolError{Err: bigstock.ErrCannotParseToken}
	}

	// An empty grant leaves the client without a token.
	if accessToken == "" {
		return auth.Token{}, &bigstock.AuthenticationError{Err: bigstock.ErrMissingToken}
	}

	tokenType, _ := obj[constants.TokenFieldTokenType].(string)
	expiresIn, _ := obj[constants.TokenFieldExpiresIn].(float64)

	return auth.NewToken(accessToken, tokenType, int(expiresIn), c.now()), nil
}

func (c *Client) logInfo(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}

func (c *Client) logWarn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}

// tokenSource adapts Client to oauth2.TokenSource.
type tokenSource struct {
	ctx    context.Context //nolint:containedctx // oauth2.TokenSource.Token takes no context
	client *Client
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	token, err := s.client.session.Acquire(s.ctx, s.client.fetchToken)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.ExpiresAt,
	}, nil
}

// decodeJSON decodes body; an empty body decodes to nil like JSON null.
func decodeJSON(body []byte) (interface{}, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}

	var data interface{}

	err := json.Unmarshal(body, &data)
	if err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return data, nil
}

func toValues(params bigstock.Params) url.Values {
	if len(params) == 0 {
		return nil
	}

	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, value)
	}

	return values
}

func stringField(value interface{}) string {
	if value == nil {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}
