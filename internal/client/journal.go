package client

import (
	"context"

	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// JournalClient implements hub.JournalClient.
type JournalClient struct {
	httpClient *internalhttp.Client
}

// NewJournalClient creates a new journal client.
func NewJournalClient(httpClient *internalhttp.Client) *JournalClient {
	return &JournalClient{httpClient: httpClient}
}

// ListVersionEvents fetches a page of audit events for a project version.
func (c *JournalClient) ListVersionEvents(ctx context.Context, projectID, versionID string, params *hub.QueryParams) (*hub.PagedResponse[hub.JournalEvent], error) {
	path := "/api/journal/projects/" + projectID + "/versions/" + versionID

	return listPage[hub.JournalEvent](ctx, c.httpClient, path, params, nil)
}
