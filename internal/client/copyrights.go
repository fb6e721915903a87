package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// CopyrightsClient implements hub.CopyrightsClient.
type CopyrightsClient struct {
	httpClient *internalhttp.Client
}

// NewCopyrightsClient creates a new copyrights client.
func NewCopyrightsClient(httpClient *internalhttp.Client) *CopyrightsClient {
	return &CopyrightsClient{httpClient: httpClient}
}

// ListForOrigin fetches every copyright record of an origin. An origin
// without copyrights yields an empty slice, not an error.
func (c *CopyrightsClient) ListForOrigin(ctx context.Context, originHref string) ([]hub.CopyrightRecord, error) {
	records, err := listAll[hub.CopyrightRecord](ctx, c.httpClient, originHref+"/copyrights", nil, internalHeaders)
	if err != nil {
		return nil, fmt.Errorf("listing copyrights for %s: %w", originHref, err)
	}

	return records, nil
}

// Update writes a copyright record back to its canonical href.
func (c *CopyrightsClient) Update(ctx context.Context, record *hub.CopyrightRecord) error {
	if record.Meta == nil || record.Meta.Href == "" {
		return fmt.Errorf("updating copyright: %w", hub.ErrMissingLink)
	}

	_, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:  http.MethodPut,
		Path:    record.Meta.Href,
		Body:    record,
		Headers: internalHeaders,
	})
	if err != nil {
		return fmt.Errorf("updating copyright %s: %w", record.Meta.Href, err)
	}

	return nil
}
