package auth

import (
	"time"

	"github.com/fivetwenty-io/bigstock/internal/constants"
)

// Token represents an OAuth2 access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in,omitempty"`
	ExpiresAt   time.Time `json:"-"`
}

// NewToken builds a token granted at now, deriving ExpiresAt from expiresIn
// when it is positive.
func NewToken(accessToken, tokenType string, expiresIn int, now time.Time) Token {
	if tokenType == "" {
		tokenType = constants.DefaultTokenType
	}

	token := Token{
		AccessToken: accessToken,
		TokenType:   tokenType,
		ExpiresIn:   expiresIn,
	}

	if expiresIn > 0 {
		token.ExpiresAt = now.Add(time.Duration(expiresIn) * time.Second)
	}

	return token
}

// Empty reports whether the token carries no access token.
func (t Token) Empty() bool {
	return t.AccessToken == ""
}
