package client

import (
	"context"

	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// GenericClient implements hub.GenericClient. It fetches arbitrary resources
// by href for exploration and scripting.
type GenericClient struct {
	httpClient *internalhttp.Client
}

// NewGenericClient creates a new generic client.
func NewGenericClient(httpClient *internalhttp.Client) *GenericClient {
	return &GenericClient{httpClient: httpClient}
}

// GetByHref fetches a single resource and decodes it into out.
func (c *GenericClient) GetByHref(ctx context.Context, href string, out interface{}) error {
	return getResource(ctx, c.httpClient, href, nil, out)
}

// ListByHref fetches one page of a collection as raw objects.
func (c *GenericClient) ListByHref(ctx context.Context, href string, params *hub.QueryParams) (*hub.PagedResponse[map[string]interface{}], error) {
	return listPage[map[string]interface{}](ctx, c.httpClient, href, params, nil)
}
