// Package hubclient provides constructors for Hub API clients.
package hubclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/hubapi/internal/auth"
	internalclient "github.com/fivetwenty-io/hubapi/internal/client"
	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// New creates a new Hub API client from the given configuration.
func New(ctx context.Context, config *hub.Config) (hub.Client, error) {
	if config == nil {
		return nil, hub.ErrConfigRequired
	}

	if config.ServerURL == "" {
		return nil, hub.ErrServerURLRequired
	}

	endpoint, err := normalizeEndpoint(config.ServerURL)
	if err != nil {
		return nil, err
	}

	tokenManager, err := createTokenManager(endpoint, config)
	if err != nil {
		return nil, err
	}

	opts := buildOptions(config)

	if config.Cache != nil && config.Cache.Type != hub.CacheTypeNone {
		backend, err := hub.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}

		manager := hub.NewCacheManager(backend, config.Cache.Policy)
		opts = append(opts, internalhttp.WithCache(manager, config.Cache.CacheTTL()))
	}

	httpClient := internalhttp.NewClient(endpoint, tokenManager, opts...)

	return internalclient.New(httpClient), nil
}

// NewWithAPIToken creates a client that exchanges the API token for bearer
// tokens as needed.
func NewWithAPIToken(ctx context.Context, serverURL, apiToken string) (hub.Client, error) {
	return New(ctx, &hub.Config{
		ServerURL: serverURL,
		APIToken:  apiToken,
	})
}

// NewWithBearerToken creates a client around a pre-acquired bearer token.
func NewWithBearerToken(ctx context.Context, serverURL, token string) (hub.Client, error) {
	return New(ctx, &hub.Config{
		ServerURL:   serverURL,
		BearerToken: token,
	})
}

// ValidateConnection checks the server is reachable and the credentials are
// accepted by fetching the authenticated user.
func ValidateConnection(ctx context.Context, client hub.Client) (*hub.User, error) {
	user, err := client.CurrentUser().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("validating connection: %w", err)
	}

	return user, nil
}

// createTokenManager picks the token strategy. A bearer token wins over an
// API token; having neither is an error.
func createTokenManager(endpoint string, config *hub.Config) (internalhttp.TokenManager, error) {
	switch {
	case config.BearerToken != "":
		return auth.NewStaticTokenManager(config.BearerToken), nil
	case config.APIToken != "":
		var opts []auth.APITokenOption

		if config.SkipTLSVerify {
			opts = append(opts, auth.WithSkipTLSVerify(true))
		}

		if config.HTTPTimeout > 0 {
			opts = append(opts, auth.WithHTTPTimeout(config.HTTPTimeout))
		}

		return auth.NewAPITokenManager(endpoint, config.APIToken, opts...), nil
	default:
		return nil, hub.ErrTokenRequired
	}
}

// buildOptions translates config fields into transport options.
func buildOptions(config *hub.Config) []internalhttp.Option {
	var opts []internalhttp.Option

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, internalhttp.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.SkipTLSVerify {
		opts = append(opts, internalhttp.WithSkipTLSVerify(true))
	}

	return opts
}

// normalizeEndpoint validates the server URL, assuming https:// for bare
// hostnames and trimming trailing slashes.
func normalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	endpoint = strings.TrimSuffix(endpoint, "/")

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing server URL: %w", err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %s", hub.ErrNoHostInURL, endpoint)
	}

	return endpoint, nil
}
