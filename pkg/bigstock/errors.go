package bigstock

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrMissingToken             = errors.New("missing token")
	ErrMissingClientCredentials = errors.New("missing client credentials")
	ErrCannotFetchToken         = errors.New("invalid response from the API, cannot fetch token")
	ErrTokenRequestFailed       = errors.New("error creating a token")
	ErrCannotParseToken         = errors.New("unexpected response from the API, cannot parse token")
	ErrInvalidResponse          = errors.New("response is not valid JSON")
	ErrEmptyResponse            = errors.New("empty response body")
	ErrConfigRequired           = errors.New("config is required")
	ErrUnknownEnvironment       = errors.New("unknown environment")
	ErrSkipTLSOnlyInDev         = errors.New("skipping TLS verification is only allowed in development environments")
)

// AuthenticationError reports that the token or credentials a call needs are
// absent. The caller must supply them and retry.
type AuthenticationError struct {
	Err error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication: %v", e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// TransportError reports that the HTTP exchange itself failed.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed with error %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports an API response that could not be used. Code and
// Description carry the API's "error" and "error_description" when present.
type ProtocolError struct {
	Code        string
	Description string
	Err         error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("%v: %s: %s", e.Err, e.Code, e.Description)
	case e.Description != "":
		return fmt.Sprintf("%v: %s", e.Err, e.Description)
	case e.Code != "":
		return fmt.Sprintf("%v: %s", e.Err, e.Code)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "protocol error"
	}
}

// Unwrap returns the underlying sentinel.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsAuthenticationError checks if the error is an authentication error.
func IsAuthenticationError(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// IsTransportError checks if the error is a transport error.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// IsProtocolError checks if the error is a protocol error.
func IsProtocolError(err error) bool {
	protoErr := &ProtocolError{}

	return errors.As(err, &protoErr)
}
