package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// internalHeaders is sent to endpoints that only answer to the internal
// media type.
var internalHeaders = map[string]string{
	"Accept": constants.MediaTypeInternal,
}

// ComponentsClient implements hub.ComponentsClient.
type ComponentsClient struct {
	httpClient *internalhttp.Client
}

// NewComponentsClient creates a new components client.
func NewComponentsClient(httpClient *internalhttp.Client) *ComponentsClient {
	return &ComponentsClient{httpClient: httpClient}
}

// ListOrigins fetches every origin of a BoM component via its origins link.
func (c *ComponentsClient) ListOrigins(ctx context.Context, component *hub.BomComponent) ([]hub.Origin, error) {
	href, ok := component.Meta.Link("origins")
	if !ok {
		return nil, fmt.Errorf("%w: origins on %s", hub.ErrMissingLink, component.ComponentName)
	}

	origins, err := listAll[hub.Origin](ctx, c.httpClient, href, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing origins for %s: %w", component.ComponentName, err)
	}

	return origins, nil
}

// Search finds components by name through the search endpoint.
func (c *ComponentsClient) Search(ctx context.Context, name string) (*hub.PagedResponse[hub.ComponentSearchResult], error) {
	params := hub.NewQueryParams().WithQ("name:" + name)

	return listPage[hub.ComponentSearchResult](ctx, c.httpClient, "/api/search/components", params, internalHeaders)
}

// AutocompleteKB finds KnowledgeBase components by name prefix.
func (c *ComponentsClient) AutocompleteKB(ctx context.Context, name string) (*hub.PagedResponse[hub.KBComponent], error) {
	params := hub.NewQueryParams().WithQ(name)
	values := params.ToValues()
	values.Set("ownership", "1")

	resp, err := c.httpClient.Get(ctx, "/api/autocomplete/component", values)
	if err != nil {
		return nil, fmt.Errorf("autocompleting components: %w", err)
	}

	return decodePage[hub.KBComponent](resp.Body)
}

// FindKBBySuiteID finds KnowledgeBase components by their legacy suite id.
func (c *ComponentsClient) FindKBBySuiteID(ctx context.Context, suiteID string) (*hub.PagedResponse[hub.KBComponent], error) {
	params := hub.NewQueryParams().WithQ("bdsuite:" + suiteID)

	return listPage[hub.KBComponent](ctx, c.httpClient, "/api/components", params, nil)
}
