package constants

import "errors"

// Server and configuration errors.
var (
	ErrNoServerConfigured = errors.New("no server configured, use 'hub login' or set --server")
	ErrNoTokenConfigured  = errors.New("no API token configured, use 'hub login' or set --token")
	ErrInsecureOnlyInDev  = errors.New("--insecure is only allowed in development environments (set HUB_DEV_MODE=true)")
)

// Validation errors.
var (
	ErrVersionURLRequired  = errors.New("--version-url flag is required")
	ErrMatchRequired       = errors.New("--match flag is required")
	ErrInvalidPeriod       = errors.New("invalid period, use a number followed by 'd' or 'h'")
	ErrInvalidOutputFormat = errors.New("invalid output format, use json, yaml, or table")
	ErrInvalidReportFormat = errors.New("invalid report format, use JSON, RDF, TAGVALUE, or YAML")
	ErrInvalidReportType   = errors.New("invalid report type, use SPDX_22, CYCLONEDX_13, or CYCLONEDX_14")
)

// Operation errors.
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserGroupNotFound = errors.New("user group not found")
	ErrReportNotReady    = errors.New("report not completed within polling budget")
	ErrNoReportContents  = errors.New("report has no downloadable contents")
)
