package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
)

// ReportsClient implements hub.ReportsClient.
type ReportsClient struct {
	httpClient *internalhttp.Client

	// pollInterval is overridable in tests
	pollInterval time.Duration
}

// NewReportsClient creates a new reports client.
func NewReportsClient(httpClient *internalhttp.Client) *ReportsClient {
	return &ReportsClient{
		httpClient:   httpClient,
		pollInterval: constants.ReportPollInterval,
	}
}

// CreateVersionReport asks the server to generate an SBOM report for the
// project version and returns the href of the new report.
func (c *ReportsClient) CreateVersionReport(ctx context.Context, versionHref string, request *hub.VersionReportRequest) (string, error) {
	resp, err := c.httpClient.Post(ctx, versionHref+"/sbom-reports", request)
	if err != nil {
		return "", fmt.Errorf("creating report: %w", err)
	}

	location := resp.Headers.Get("Location")
	if location == "" {
		return "", fmt.Errorf("creating report: %w", hub.ErrMissingLink)
	}

	return location, nil
}

// Get fetches the report's current state.
func (c *ReportsClient) Get(ctx context.Context, reportHref string) (*hub.VersionReport, error) {
	var report hub.VersionReport

	err := getResource(ctx, c.httpClient, reportHref, nil, &report)
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}

	return &report, nil
}

// WaitForCompletion polls the report until it completes or the polling
// budget runs out.
func (c *ReportsClient) WaitForCompletion(ctx context.Context, reportHref string) (*hub.VersionReport, error) {
	for attempt := 0; attempt < constants.ReportPollAttempts; attempt++ {
		report, err := c.Get(ctx, reportHref)
		if err != nil {
			return nil, err
		}

		switch report.Status {
		case hub.ReportStatusCompleted:
			return report, nil
		case hub.ReportStatusFailed:
			return report, fmt.Errorf("%w: %s", constants.ErrReportNotReady, report.Status)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for report: %w", ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}

	return nil, constants.ErrReportNotReady
}

// DownloadContents fetches the files of a completed report.
func (c *ReportsClient) DownloadContents(ctx context.Context, report *hub.VersionReport) (*hub.ReportContents, error) {
	href, ok := report.Meta.Link("content")
	if !ok {
		if report.Meta == nil || report.Meta.Href == "" {
			return nil, constants.ErrNoReportContents
		}

		href = report.Meta.Href + "/contents"
	}

	resp, err := c.httpClient.Get(ctx, href, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading report contents: %w", err)
	}

	var contents hub.ReportContents

	err = json.Unmarshal(resp.Body, &contents)
	if err != nil {
		return nil, fmt.Errorf("parsing report contents: %w", err)
	}

	return &contents, nil
}
