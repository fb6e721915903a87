package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// ProjectsClient implements hub.ProjectsClient.
type ProjectsClient struct {
	httpClient *internalhttp.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *internalhttp.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

// Get fetches a single project by href.
func (c *ProjectsClient) Get(ctx context.Context, href string) (*hub.Project, error) {
	var project hub.Project

	err := getResource(ctx, c.httpClient, href, nil, &project)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	return &project, nil
}

// List fetches a page of projects.
func (c *ProjectsClient) List(ctx context.Context, params *hub.QueryParams) (*hub.PagedResponse[hub.Project], error) {
	return listPage[hub.Project](ctx, c.httpClient, "/api/projects", params, nil)
}

// ListWithPath satisfies hub.PagedClient for pagination helpers.
func (c *ProjectsClient) ListWithPath(ctx context.Context, path string, params *hub.QueryParams) (*hub.PagedResponse[hub.Project], error) {
	return listPage[hub.Project](ctx, c.httpClient, path, params, nil)
}

// FindByName looks up a project by exact name using a server-side search.
func (c *ProjectsClient) FindByName(ctx context.Context, name string) (*hub.Project, error) {
	params := hub.NewQueryParams().WithQ("name:" + name)

	page, err := c.List(ctx, params)
	if err != nil {
		return nil, err
	}

	// The q parameter matches substrings, so filter to the exact name.
	for i := range page.Items {
		if page.Items[i].Name == name {
			return &page.Items[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", constants.ErrProjectNotFound, name)
}

// Delete removes a project by href.
func (c *ProjectsClient) Delete(ctx context.Context, href string) error {
	_, err := c.httpClient.Delete(ctx, href)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	return nil
}

// ListVersions fetches the project's versions via its versions link.
func (c *ProjectsClient) ListVersions(ctx context.Context, project *hub.Project, params *hub.QueryParams) (*hub.PagedResponse[hub.ProjectVersion], error) {
	href, ok := project.Meta.Link("versions")
	if !ok {
		return nil, fmt.Errorf("%w: %s", hub.ErrNoVersionsLink, project.Name)
	}

	return listPage[hub.ProjectVersion](ctx, c.httpClient, href, params, nil)
}

// ListTags fetches the project's tags via its tags link.
func (c *ProjectsClient) ListTags(ctx context.Context, project *hub.Project) (*hub.PagedResponse[hub.Tag], error) {
	href, ok := project.Meta.Link("tags")
	if !ok {
		return &hub.PagedResponse[hub.Tag]{}, nil
	}

	return listPage[hub.Tag](ctx, c.httpClient, href, nil, nil)
}

// ListCustomFields fetches the project's custom fields via its link.
func (c *ProjectsClient) ListCustomFields(ctx context.Context, project *hub.Project) (*hub.PagedResponse[hub.CustomField], error) {
	href, ok := project.Meta.Link("custom-fields")
	if !ok {
		return &hub.PagedResponse[hub.CustomField]{}, nil
	}

	return listPage[hub.CustomField](ctx, c.httpClient, href, nil, nil)
}

// GetMapping fetches the project's application id mapping. Projects without a
// mapping return a nil mapping, not an error.
func (c *ProjectsClient) GetMapping(ctx context.Context, project *hub.Project) (*hub.ProjectMapping, error) {
	href, ok := project.Meta.Link("project-mappings")
	if !ok {
		return nil, nil
	}

	page, err := listPage[hub.ProjectMapping](ctx, c.httpClient, href, nil, nil)
	if err != nil {
		return nil, err
	}

	if len(page.Items) == 0 {
		return nil, nil
	}

	return &page.Items[0], nil
}
