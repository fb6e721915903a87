package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// UserGroupsClient implements hub.UserGroupsClient.
type UserGroupsClient struct {
	httpClient *internalhttp.Client
}

// NewUserGroupsClient creates a new user groups client.
func NewUserGroupsClient(httpClient *internalhttp.Client) *UserGroupsClient {
	return &UserGroupsClient{httpClient: httpClient}
}

// List fetches a page of user groups.
func (c *UserGroupsClient) List(ctx context.Context, params *hub.QueryParams) (*hub.PagedResponse[hub.UserGroup], error) {
	return listPage[hub.UserGroup](ctx, c.httpClient, "/api/usergroups", params, nil)
}

// FindByName looks up a user group by exact name.
func (c *UserGroupsClient) FindByName(ctx context.Context, name string) (*hub.UserGroup, error) {
	params := hub.NewQueryParams().WithQ("name:" + name)

	page, err := c.List(ctx, params)
	if err != nil {
		return nil, err
	}

	for i := range page.Items {
		if page.Items[i].Name == name {
			return &page.Items[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", constants.ErrUserGroupNotFound, name)
}

// ListMembers fetches the users in a group.
func (c *UserGroupsClient) ListMembers(ctx context.Context, group *hub.UserGroup) (*hub.PagedResponse[hub.User], error) {
	href, ok := group.Meta.Link("users")
	if !ok {
		return &hub.PagedResponse[hub.User]{}, nil
	}

	return listPage[hub.User](ctx, c.httpClient, href, nil, nil)
}
