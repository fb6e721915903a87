package client

import (
	"context"
	"fmt"

	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// ProjectVersionsClient implements hub.ProjectVersionsClient.
type ProjectVersionsClient struct {
	httpClient *internalhttp.Client
}

// NewProjectVersionsClient creates a new project versions client.
func NewProjectVersionsClient(httpClient *internalhttp.Client) *ProjectVersionsClient {
	return &ProjectVersionsClient{httpClient: httpClient}
}

// Get fetches a single project version by href.
func (c *ProjectVersionsClient) Get(ctx context.Context, href string) (*hub.ProjectVersion, error) {
	var version hub.ProjectVersion

	err := getResource(ctx, c.httpClient, href, nil, &version)
	if err != nil {
		return nil, fmt.Errorf("getting project version: %w", err)
	}

	return &version, nil
}

// ListBomComponents fetches a page of the version's bill of materials.
// Callers pass the exclusion filters and ordering through params.
func (c *ProjectVersionsClient) ListBomComponents(ctx context.Context, versionHref string, params *hub.QueryParams) (*hub.PagedResponse[hub.BomComponent], error) {
	return listPage[hub.BomComponent](ctx, c.httpClient, versionHref+"/components", params, nil)
}

// ListCodeLocations fetches the scan locations mapped to the version.
func (c *ProjectVersionsClient) ListCodeLocations(ctx context.Context, version *hub.ProjectVersion) (*hub.PagedResponse[hub.CodeLocation], error) {
	href, ok := version.Meta.Link("codelocations")
	if !ok {
		return &hub.PagedResponse[hub.CodeLocation]{}, nil
	}

	return listPage[hub.CodeLocation](ctx, c.httpClient, href, nil, nil)
}

// Delete removes a project version by href.
func (c *ProjectVersionsClient) Delete(ctx context.Context, href string) error {
	_, err := c.httpClient.Delete(ctx, href)
	if err != nil {
		return fmt.Errorf("deleting project version: %w", err)
	}

	return nil
}
