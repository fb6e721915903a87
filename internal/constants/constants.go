package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// ReportFilePerm is the permission for downloaded report files.
	ReportFilePerm = 0644
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExtendedHTTPTimeout is used for longer operations such as report downloads.
	ExtendedHTTPTimeout = 120 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Transport retry policy.
const (
	// DefaultRetryMax is the default maximum number of transport retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between transport retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Copyright workflow policy.
const (
	// CopyrightVerifyRetries bounds the fetch-write-verify retries per origin
	// after the initial pass. The bound is a fixed policy constant, not
	// configurable.
	CopyrightVerifyRetries = 5
)

// Paging defaults.
const (
	// DefaultPageLimit is the default page size for list requests.
	DefaultPageLimit = 100

	// MaxPageLimit is the largest page size the server accepts.
	MaxPageLimit = 1000
)

// Report polling.
const (
	// ReportPollInterval is the wait between report status checks.
	ReportPollInterval = 5 * time.Second

	// ReportPollAttempts bounds how many times a report is polled before giving up.
	ReportPollAttempts = 30
)

// Token lifecycle.
const (
	// TokenRefreshWindow refreshes bearer tokens this long before expiry.
	TokenRefreshWindow = 2 * time.Minute
)

// Media types.
const (
	// MediaTypeJSON is the standard JSON media type.
	MediaTypeJSON = "application/json"

	// MediaTypeInternal is the internal media type some endpoints require,
	// such as component search and origin copyrights.
	MediaTypeInternal = "application/vnd.blackducksoftware.internal-1+json"

	// MediaTypeUser is the media type for user resources.
	MediaTypeUser = "application/vnd.blackducksoftware.user-4+json"
)

// Timestamp handling.
const (
	// TimestampLayout is the layout the server uses for timestamps.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// Common HTTP status codes.
const (
	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// HTTPStatusBadRequest represents a client error.
	HTTPStatusBadRequest = 400

	// HTTPStatusInternalServerError represents server errors.
	HTTPStatusInternalServerError = 500
)
