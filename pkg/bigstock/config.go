package bigstock

import (
	"fmt"

	"github.com/fivetwenty-io/bigstock/internal/constants"
	"github.com/spf13/viper"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests, the same one
// the client applies when Config.HTTPTimeout is zero.
const DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Configuration keys understood by LoadConfig. Each can also be set through
// the environment as BIGSTOCK_<KEY>, e.g. BIGSTOCK_CLIENT_ID.
const (
	KeyEnvironment        = "environment"
	KeyBaseURL            = "base_url"
	KeyClientID           = "client_id"
	KeyClientSecret       = "client_secret"
	KeyAccessToken        = "access_token"
	KeyHTTPTimeout        = "http_timeout"
	KeyUserAgent          = "user_agent"
	KeyDebug              = "debug"
	KeyInsecureSkipVerify = "insecure_skip_verify"
)

const envPrefix = "BIGSTOCK"

// LoadConfig builds a Config from an optional YAML file at path and from
// BIGSTOCK_* environment variables, which take precedence over the file.
// An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyEnvironment, Production.String())
	v.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout)

	v.SetEnvPrefix(envPrefix)

	for _, key := range []string{
		KeyEnvironment, KeyBaseURL, KeyClientID, KeyClientSecret, KeyAccessToken,
		KeyHTTPTimeout, KeyUserAgent, KeyDebug, KeyInsecureSkipVerify,
	} {
		err := v.BindEnv(key)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	env, err := ParseEnvironment(v.GetString(KeyEnvironment))
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment:        env,
		BaseURL:            v.GetString(KeyBaseURL),
		ClientID:           v.GetString(KeyClientID),
		ClientSecret:       v.GetString(KeyClientSecret),
		AccessToken:        v.GetString(KeyAccessToken),
		HTTPTimeout:        v.GetDuration(KeyHTTPTimeout),
		UserAgent:          v.GetString(KeyUserAgent),
		Debug:              v.GetBool(KeyDebug),
		InsecureSkipVerify: v.GetBool(KeyInsecureSkipVerify),
	}, nil
}
