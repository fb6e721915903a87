package client

import (
	"context"
	"fmt"

	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// CodeLocationsClient implements hub.CodeLocationsClient.
type CodeLocationsClient struct {
	httpClient *internalhttp.Client
}

// NewCodeLocationsClient creates a new code locations client.
func NewCodeLocationsClient(httpClient *internalhttp.Client) *CodeLocationsClient {
	return &CodeLocationsClient{httpClient: httpClient}
}

// List fetches a page of code locations.
func (c *CodeLocationsClient) List(ctx context.Context, params *hub.QueryParams) (*hub.PagedResponse[hub.CodeLocation], error) {
	return listPage[hub.CodeLocation](ctx, c.httpClient, "/api/codelocations", params, nil)
}

// Delete removes a code location by href.
func (c *CodeLocationsClient) Delete(ctx context.Context, href string) error {
	_, err := c.httpClient.Delete(ctx, href)
	if err != nil {
		return fmt.Errorf("deleting code location: %w", err)
	}

	return nil
}
