package hub

import (
	"context"
	"time"
)

// Client is the top-level interface for interacting with the Hub API.
type Client interface {
	// Projects returns the client for project operations
	Projects() ProjectsClient
	// ProjectVersions returns the client for project version operations
	ProjectVersions() ProjectVersionsClient
	// Components returns the client for component operations
	Components() ComponentsClient
	// Copyrights returns the client for origin copyright operations
	Copyrights() CopyrightsClient
	// Users returns the client for user operations
	Users() UsersClient
	// UserGroups returns the client for user group operations
	UserGroups() UserGroupsClient
	// CodeLocations returns the client for code location operations
	CodeLocations() CodeLocationsClient
	// Reports returns the client for version report operations
	Reports() ReportsClient
	// Notifications returns the client for notification operations
	Notifications() NotificationsClient
	// Journal returns the client for journal operations
	Journal() JournalClient
	// CurrentUser returns the client for the authenticated user
	CurrentUser() CurrentUserClient
	// Generic returns the client for raw href access
	Generic() GenericClient
}

// ProjectsClient provides operations on projects.
type ProjectsClient interface {
	Get(ctx context.Context, href string) (*Project, error)
	List(ctx context.Context, params *QueryParams) (*PagedResponse[Project], error)
	FindByName(ctx context.Context, name string) (*Project, error)
	Delete(ctx context.Context, href string) error
	ListVersions(ctx context.Context, project *Project, params *QueryParams) (*PagedResponse[ProjectVersion], error)
	ListTags(ctx context.Context, project *Project) (*PagedResponse[Tag], error)
	ListCustomFields(ctx context.Context, project *Project) (*PagedResponse[CustomField], error)
	GetMapping(ctx context.Context, project *Project) (*ProjectMapping, error)
}

// ProjectVersionsClient provides operations on project versions.
type ProjectVersionsClient interface {
	Get(ctx context.Context, href string) (*ProjectVersion, error)
	ListBomComponents(ctx context.Context, versionHref string, params *QueryParams) (*PagedResponse[BomComponent], error)
	ListCodeLocations(ctx context.Context, version *ProjectVersion) (*PagedResponse[CodeLocation], error)
	Delete(ctx context.Context, href string) error
}

// ComponentsClient provides operations on components and the KnowledgeBase.
type ComponentsClient interface {
	ListOrigins(ctx context.Context, component *BomComponent) ([]Origin, error)
	Search(ctx context.Context, name string) (*PagedResponse[ComponentSearchResult], error)
	AutocompleteKB(ctx context.Context, name string) (*PagedResponse[KBComponent], error)
	FindKBBySuiteID(ctx context.Context, suiteID string) (*PagedResponse[KBComponent], error)
}

// CopyrightsClient provides operations on origin copyright records.
type CopyrightsClient interface {
	ListForOrigin(ctx context.Context, originHref string) ([]CopyrightRecord, error)
	Update(ctx context.Context, record *CopyrightRecord) error
}

// UsersClient provides operations on user accounts.
type UsersClient interface {
	List(ctx context.Context, params *QueryParams) (*PagedResponse[User], error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ListUserGroups(ctx context.Context, user *User) (*PagedResponse[UserGroup], error)
	ListRoles(ctx context.Context, user *User) (*PagedResponse[Role], error)
}

// UserGroupsClient provides operations on user groups.
type UserGroupsClient interface {
	List(ctx context.Context, params *QueryParams) (*PagedResponse[UserGroup], error)
	FindByName(ctx context.Context, name string) (*UserGroup, error)
	ListMembers(ctx context.Context, group *UserGroup) (*PagedResponse[User], error)
}

// CodeLocationsClient provides operations on code locations.
type CodeLocationsClient interface {
	List(ctx context.Context, params *QueryParams) (*PagedResponse[CodeLocation], error)
	Delete(ctx context.Context, href string) error
}

// ReportsClient provides operations on version reports.
type ReportsClient interface {
	CreateVersionReport(ctx context.Context, versionHref string, request *VersionReportRequest) (string, error)
	Get(ctx context.Context, reportHref string) (*VersionReport, error)
	WaitForCompletion(ctx context.Context, reportHref string) (*VersionReport, error)
	DownloadContents(ctx context.Context, report *VersionReport) (*ReportContents, error)
}

// NotificationsClient provides operations on notifications.
type NotificationsClient interface {
	List(ctx context.Context, params *QueryParams) (*PagedResponse[Notification], error)
	ListByTypeSince(ctx context.Context, notificationType string, since time.Time) ([]Notification, error)
}

// JournalClient provides access to project version audit journals.
type JournalClient interface {
	ListVersionEvents(ctx context.Context, projectID, versionID string, params *QueryParams) (*PagedResponse[JournalEvent], error)
}

// CurrentUserClient provides access to the authenticated user.
type CurrentUserClient interface {
	Get(ctx context.Context) (*User, error)
}

// GenericClient fetches arbitrary resources by href.
type GenericClient interface {
	GetByHref(ctx context.Context, href string, out interface{}) error
	ListByHref(ctx context.Context, href string, params *QueryParams) (*PagedResponse[map[string]interface{}], error)
}

// Logger is the logging interface used throughout the SDK.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config holds the configuration for creating a client.
//
// Authentication precedence:
//  1. BearerToken: used as-is, never refreshed
//  2. APIToken: exchanged for a bearer token and refreshed before expiry
//
// ServerURL accepts a bare hostname; https:// is assumed when no scheme is
// present and a trailing slash is stripped.
type Config struct {
	// ServerURL is the Hub server URL (required)
	ServerURL string

	// APIToken is a Hub API token to exchange for bearer tokens
	APIToken string

	// BearerToken is a pre-acquired bearer token
	BearerToken string

	// HTTPTimeout is the per-request timeout
	HTTPTimeout time.Duration

	// RetryMax is the maximum number of transport retries
	RetryMax int

	// RetryWaitMin is the minimum wait between transport retries
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum wait between transport retries
	RetryWaitMax time.Duration

	// SkipTLSVerify disables TLS certificate verification
	SkipTLSVerify bool

	// Debug enables request/response logging
	Debug bool

	// Logger receives structured log output; nil discards it
	Logger Logger

	// UserAgent overrides the default User-Agent header
	UserAgent string

	// Cache configures GET response caching; nil disables it
	Cache *CacheConfig
}
