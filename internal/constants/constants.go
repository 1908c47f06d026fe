package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// OAuth2 form fields and values.
const (
	// FormGrantType is the form field naming the OAuth2 grant.
	FormGrantType = "grant_type"

	// FormAccessToken is the form field carrying the bearer token on API calls.
	FormAccessToken = "access_token"

	// GrantTypeClientCredentials is the only grant the token endpoint is asked for.
	GrantTypeClientCredentials = "client_credentials"

	// DefaultTokenType is assumed when the token response omits token_type.
	DefaultTokenType = "bearer"
)

// Token response fields.
const (
	// TokenFieldAccessToken holds the granted token.
	TokenFieldAccessToken = "access_token"

	// TokenFieldError holds the OAuth2 error code.
	TokenFieldError = "error"

	// TokenFieldErrorDescription holds the human readable error.
	TokenFieldErrorDescription = "error_description"

	// TokenFieldTokenType holds the token type.
	TokenFieldTokenType = "token_type"

	// TokenFieldExpiresIn holds the token lifetime in seconds.
	TokenFieldExpiresIn = "expires_in"
)

// HTTP headers.
const (
	// ContentTypeForm is the request body type for every call.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// ContentTypeJSON is the accepted response type.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "bigstock-go/1.0"

	// HeaderRequestID correlates a call with its log lines.
	HeaderRequestID = "X-Request-ID"
)

// Environment variables.
const (
	// DevModeEnv must be "true" or "1" for InsecureSkipVerify to be honored.
	DevModeEnv = "BIGSTOCK_DEV_MODE"
)

// Display constants.
const (
	// MaskedSecret is used to hide sensitive information in logs.
	MaskedSecret = "***"
)
