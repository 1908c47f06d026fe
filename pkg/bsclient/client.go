package bsclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/bigstock/internal/client"
	"github.com/fivetwenty-io/bigstock/pkg/bigstock"
)

// New creates a new Bigstock API client from config. The config is not modified.
func New(config *bigstock.Config) (bigstock.Client, error) {
	if config == nil {
		return nil, bigstock.ErrConfigRequired
	}

	resolved := *config

	// Normalize base URL override
	if resolved.BaseURL != "" {
		baseURL := strings.TrimSuffix(resolved.BaseURL, "/")
		if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
			baseURL = "https://" + baseURL
		}

		resolved.BaseURL = baseURL
	}

	c, err := client.New(&resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithClientCredentials creates a client that fetches its token with the
// client credentials grant on first use.
func NewWithClientCredentials(env bigstock.Environment, clientID, clientSecret string) (bigstock.Client, error) {
	return New(&bigstock.Config{
		Environment:  env,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewWithToken creates a client with an access token you already have.
func NewWithToken(env bigstock.Environment, token string) (bigstock.Client, error) {
	return New(&bigstock.Config{
		Environment: env,
		AccessToken: token,
	})
}
