package auth

import (
	"context"
	"sync"

	"github.com/fivetwenty-io/bigstock/pkg/bigstock"
	"golang.org/x/sync/singleflight"
)

// State is the authentication state of a client: Unauthenticated,
// HasCredentials, or HasToken.
type State interface {
	isState()
}

// Credentials are the partner id and secret used for the client credentials grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Complete reports whether both the id and the secret are non-empty.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Unauthenticated holds neither credentials nor a token.
type Unauthenticated struct{}

// HasCredentials holds credentials but no token yet.
type HasCredentials struct {
	Credentials Credentials
}

// HasToken holds a token, plus the credentials it was fetched with, if any.
type HasToken struct {
	Token       Token
	Credentials *Credentials
}

func (Unauthenticated) isState() {}
func (HasCredentials) isState()  {}
func (HasToken) isState()        {}

const acquireKey = "token"

// FetchFunc obtains a new token from the token endpoint.
type FetchFunc func(ctx context.Context) (Token, error)

// Session tracks a client's authentication state. It is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	state State
	group singleflight.Group
}

// NewSession creates an unauthenticated session.
func NewSession() *Session {
	return &Session{state: Unauthenticated{}}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// SetCredentials stores credentials verbatim. A held token is kept.
func (s *Session) SetCredentials(clientID, clientSecret string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := Credentials{ClientID: clientID, ClientSecret: clientSecret}

	switch st := s.state.(type) {
	case HasToken:
		st.Credentials = &creds
		s.state = st
	default:
		s.state = HasCredentials{Credentials: creds}
	}
}

// SetToken stores token, replacing any held token. An empty token drops the
// held one and leaves only the credentials, if any.
func (s *Session) SetToken(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := CredentialsOf(s.state)

	switch {
	case !token.Empty():
		s.state = HasToken{Token: token, Credentials: creds}
	case creds != nil:
		s.state = HasCredentials{Credentials: *creds}
	default:
		s.state = Unauthenticated{}
	}
}

// Token returns the held token.
func (s *Session) Token() (Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return TokenOf(s.state)
}

// Credentials returns the held credentials.
func (s *Session) Credentials() (Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds := CredentialsOf(s.state)
	if creds == nil {
		return Credentials{}, false
	}

	return *creds, true
}

// Acquire returns the held token. Without one, it runs fetch and stores the
// result; concurrent callers share a single fetch. The shared fetch is not
// canceled with any one caller's ctx, while each caller stops waiting when
// its own ctx is done.
func (s *Session) Acquire(ctx context.Context, fetch FetchFunc) (Token, error) {
	if token, ok := s.Token(); ok {
		return token, nil
	}

	fetchCtx := context.WithoutCancel(ctx)

	results := s.group.DoChan(acquireKey, func() (interface{}, error) {
		if token, ok := s.Token(); ok {
			return token, nil
		}

		token, err := fetch(fetchCtx)
		if err != nil {
			return Token{}, err
		}

		s.SetToken(token)

		return token, nil
	})

	select {
	case <-ctx.Done():
		return Token{}, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return Token{}, result.Err
		}

		token, _ := result.Val.(Token)

		return token, nil
	}
}

// CheckRequired validates that st carries what a request needs: complete
// credentials for a token request, a token for anything else.
func CheckRequired(st State, isTokenRequest bool) error {
	if isTokenRequest {
		creds := CredentialsOf(st)
		if creds == nil || !creds.Complete() {
			return &bigstock.AuthenticationError{Err: bigstock.ErrMissingClientCredentials}
		}

		return nil
	}

	switch st := st.(type) {
	case HasToken:
		if st.Token.Empty() {
			return &bigstock.AuthenticationError{Err: bigstock.ErrMissingToken}
		}

		return nil
	case HasCredentials, Unauthenticated:
		return &bigstock.AuthenticationError{Err: bigstock.ErrMissingToken}
	default:
		return &bigstock.AuthenticationError{Err: bigstock.ErrMissingToken}
	}
}

// CredentialsOf returns the credentials held in st, or nil.
func CredentialsOf(st State) *Credentials {
	switch st := st.(type) {
	case HasCredentials:
		creds := st.Credentials

		return &creds
	case HasToken:
		return st.Credentials
	default:
		return nil
	}
}

// TokenOf returns the token held in st.
func TokenOf(st State) (Token, bool) {
	held, ok := st.(HasToken)
	if !ok {
		return Token{}, false
	}

	return held.Token, true
}
