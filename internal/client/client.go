// Package client implements the Hub API resource clients.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// Client is the concrete implementation of hub.Client.
type Client struct {
	httpClient *internalhttp.Client

	projects      *ProjectsClient
	versions      *ProjectVersionsClient
	components    *ComponentsClient
	copyrights    *CopyrightsClient
	users         *UsersClient
	userGroups    *UserGroupsClient
	codeLocations *CodeLocationsClient
	reports       *ReportsClient
	notifications *NotificationsClient
	journal       *JournalClient
	currentUser   *CurrentUserClient
	generic       *GenericClient
}

// New creates a client around the given transport.
func New(httpClient *internalhttp.Client) *Client {
	client := &Client{httpClient: httpClient}
	client.initializeResourceClients()

	return client
}

// initializeResourceClients wires up the per-resource clients.
func (c *Client) initializeResourceClients() {
	c.projects = NewProjectsClient(c.httpClient)
	c.versions = NewProjectVersionsClient(c.httpClient)
	c.components = NewComponentsClient(c.httpClient)
	c.copyrights = NewCopyrightsClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.userGroups = NewUserGroupsClient(c.httpClient)
	c.codeLocations = NewCodeLocationsClient(c.httpClient)
	c.reports = NewReportsClient(c.httpClient)
	c.notifications = NewNotificationsClient(c.httpClient)
	c.journal = NewJournalClient(c.httpClient)
	c.currentUser = NewCurrentUserClient(c.httpClient)
	c.generic = NewGenericClient(c.httpClient)
}

// Projects returns the projects client.
func (c *Client) Projects() hub.ProjectsClient {
	return c.projects
}

// ProjectVersions returns the project versions client.
func (c *Client) ProjectVersions() hub.ProjectVersionsClient {
	return c.versions
}

// Components returns the components client.
func (c *Client) Components() hub.ComponentsClient {
	return c.components
}

// Copyrights returns the copyrights client.
func (c *Client) Copyrights() hub.CopyrightsClient {
	return c.copyrights
}

// Users returns the users client.
func (c *Client) Users() hub.UsersClient {
	return c.users
}

// UserGroups returns the user groups client.
func (c *Client) UserGroups() hub.UserGroupsClient {
	return c.userGroups
}

// CodeLocations returns the code locations client.
func (c *Client) CodeLocations() hub.CodeLocationsClient {
	return c.codeLocations
}

// Reports returns the reports client.
func (c *Client) Reports() hub.ReportsClient {
	return c.reports
}

// Notifications returns the notifications client.
func (c *Client) Notifications() hub.NotificationsClient {
	return c.notifications
}

// Journal returns the journal client.
func (c *Client) Journal() hub.JournalClient {
	return c.journal
}

// CurrentUser returns the current user client.
func (c *Client) CurrentUser() hub.CurrentUserClient {
	return c.currentUser
}

// Generic returns the generic href client.
func (c *Client) Generic() hub.GenericClient {
	return c.generic
}

// getResource fetches a single resource by path and decodes it into out.
func getResource(ctx context.Context, httpClient *internalhttp.Client, path string, headers map[string]string, out interface{}) error {
	resp, err := httpClient.GetWithHeaders(ctx, path, nil, headers)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}

	err = json.Unmarshal(resp.Body, out)
	if err != nil {
		return fmt.Errorf("parsing response from %s: %w", path, err)
	}

	return nil
}

// listPage fetches one page of a collection.
func listPage[T any](ctx context.Context, httpClient *internalhttp.Client, path string, params *hub.QueryParams, headers map[string]string) (*hub.PagedResponse[T], error) {
	resp, err := httpClient.GetWithHeaders(ctx, path, params.ToValues(), headers)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	var page hub.PagedResponse[T]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing list response from %s: %w", path, err)
	}

	return &page, nil
}

// decodePage decodes a collection envelope from a raw response body.
func decodePage[T any](body []byte) (*hub.PagedResponse[T], error) {
	var page hub.PagedResponse[T]

	err := json.Unmarshal(body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	return &page, nil
}

// listAll drains every page of a collection.
func listAll[T any](ctx context.Context, httpClient *internalhttp.Client, path string, params *hub.QueryParams, headers map[string]string) ([]T, error) {
	requestParams := params.Clone()
	if requestParams.Limit <= 0 {
		requestParams.Limit = constants.DefaultPageLimit
	}

	var all []T

	offset := 0

	for {
		requestParams.Offset = offset

		page, err := listPage[T](ctx, httpClient, path, requestParams, headers)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Items...)

		offset += len(page.Items)
		if len(page.Items) == 0 || offset >= page.TotalCount {
			return all, nil
		}
	}
}
