// Package hubclient creates Hub API clients from configuration.
//
// The simplest entry points take a server URL and a credential:
//
//	client, err := hubclient.NewWithAPIToken(ctx, "hub.example.com", apiToken)
//
// New accepts a full hub.Config for control over timeouts, retries, TLS
// verification, logging, and response caching.
package hubclient
