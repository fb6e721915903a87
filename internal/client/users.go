package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// UsersClient implements hub.UsersClient.
type UsersClient struct {
	httpClient *internalhttp.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *internalhttp.Client) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

// List fetches a page of user accounts.
func (c *UsersClient) List(ctx context.Context, params *hub.QueryParams) (*hub.PagedResponse[hub.User], error) {
	return listPage[hub.User](ctx, c.httpClient, "/api/users", params, nil)
}

// FindByUsername looks up a user by exact username.
func (c *UsersClient) FindByUsername(ctx context.Context, username string) (*hub.User, error) {
	params := hub.NewQueryParams().WithQ("userName:" + username)

	page, err := c.List(ctx, params)
	if err != nil {
		return nil, err
	}

	for i := range page.Items {
		if page.Items[i].UserName == username {
			return &page.Items[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", constants.ErrUserNotFound, username)
}

// ListUserGroups fetches the groups the user belongs to.
func (c *UsersClient) ListUserGroups(ctx context.Context, user *hub.User) (*hub.PagedResponse[hub.UserGroup], error) {
	href, ok := user.Meta.Link("usergroups")
	if !ok {
		return &hub.PagedResponse[hub.UserGroup]{}, nil
	}

	return listPage[hub.UserGroup](ctx, c.httpClient, href, nil, nil)
}

// ListRoles fetches the roles assigned to the user.
func (c *UsersClient) ListRoles(ctx context.Context, user *hub.User) (*hub.PagedResponse[hub.Role], error) {
	href, ok := user.Meta.Link("roles")
	if !ok {
		return &hub.PagedResponse[hub.Role]{}, nil
	}

	return listPage[hub.Role](ctx, c.httpClient, href, nil, nil)
}
