package client

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// NotificationsClient implements hub.NotificationsClient.
type NotificationsClient struct {
	httpClient *internalhttp.Client
}

// NewNotificationsClient creates a new notifications client.
func NewNotificationsClient(httpClient *internalhttp.Client) *NotificationsClient {
	return &NotificationsClient{httpClient: httpClient}
}

// List fetches a page of notifications.
func (c *NotificationsClient) List(ctx context.Context, params *hub.QueryParams) (*hub.PagedResponse[hub.Notification], error) {
	return listPage[hub.Notification](ctx, c.httpClient, "/api/notifications", params, nil)
}

// ListByTypeSince fetches every notification of the given type created at or
// after since.
func (c *NotificationsClient) ListByTypeSince(ctx context.Context, notificationType string, since time.Time) ([]hub.Notification, error) {
	params := hub.NewQueryParams().
		WithFilter("notificationType", notificationType).
		WithLimit(constants.DefaultPageLimit)

	var all []hub.Notification

	offset := 0

	for {
		params.Offset = offset

		values := params.ToValues()
		values.Set("startDate", since.UTC().Format(constants.TimestampLayout))

		resp, err := c.httpClient.Get(ctx, "/api/notifications", values)
		if err != nil {
			return nil, fmt.Errorf("listing notifications: %w", err)
		}

		page, err := decodePage[hub.Notification](resp.Body)
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
