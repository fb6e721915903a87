package client

import (
	"context"
	"fmt"

	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// CurrentUserClient implements hub.CurrentUserClient.
type CurrentUserClient struct {
	httpClient *internalhttp.Client
}

// NewCurrentUserClient creates a new current user client.
func NewCurrentUserClient(httpClient *internalhttp.Client) *CurrentUserClient {
	return &CurrentUserClient{httpClient: httpClient}
}

// Get fetches the authenticated user. A successful response doubles as a
// connection and credential check.
func (c *CurrentUserClient) Get(ctx context.Context) (*hub.User, error) {
	var user hub.User

	err := getResource(ctx, c.httpClient, "/api/current-user", nil, &user)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return &user, nil
}
