package hub

import "time"

// Project represents a Hub project.
type Project struct {
	Name                     string     `json:"name"                               yaml:"name"`
	Description              string     `json:"description,omitempty"              yaml:"description,omitempty"`
	ProjectOwner             string     `json:"projectOwner,omitempty"             yaml:"projectOwner,omitempty"`
	ProjectTier              int        `json:"projectTier,omitempty"              yaml:"projectTier,omitempty"`
	ProjectLevelAdjustments  bool       `json:"projectLevelAdjustments,omitempty"  yaml:"projectLevelAdjustments,omitempty"`
	CreatedAt                *time.Time `json:"createdAt,omitempty"                yaml:"createdAt,omitempty"`
	CreatedBy                string     `json:"createdBy,omitempty"                yaml:"createdBy,omitempty"`
	UpdatedAt                *time.Time `json:"updatedAt,omitempty"                yaml:"updatedAt,omitempty"`
	UpdatedBy                string     `json:"updatedBy,omitempty"                yaml:"updatedBy,omitempty"`
	Source                   string     `json:"source,omitempty"                   yaml:"source,omitempty"`
	CloneCategories          []string   `json:"cloneCategories,omitempty"          yaml:"cloneCategories,omitempty"`
	CustomSignatureEnabled   bool       `json:"customSignatureEnabled,omitempty"   yaml:"customSignatureEnabled,omitempty"`
	DeepLicenseDataEnabled   bool       `json:"deepLicenseDataEnabled,omitempty"   yaml:"deepLicenseDataEnabled,omitempty"`
	SnippetAdjustmentApplied bool       `json:"snippetAdjustmentApplied,omitempty" yaml:"snippetAdjustmentApplied,omitempty"`
	Meta                     *Meta      `json:"_meta,omitempty"                    yaml:"_meta,omitempty"`
}

// ProjectVersion represents one version of a project.
type ProjectVersion struct {
	VersionName      string     `json:"versionName"                yaml:"versionName"`
	Nickname         string     `json:"nickname,omitempty"         yaml:"nickname,omitempty"`
	Phase            string     `json:"phase,omitempty"            yaml:"phase,omitempty"`
	Distribution     string     `json:"distribution,omitempty"     yaml:"distribution,omitempty"`
	ReleasedOn       *time.Time `json:"releasedOn,omitempty"       yaml:"releasedOn,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"        yaml:"createdAt,omitempty"`
	CreatedBy        string     `json:"createdBy,omitempty"        yaml:"createdBy,omitempty"`
	SettingUpdatedAt *time.Time `json:"settingUpdatedAt,omitempty" yaml:"settingUpdatedAt,omitempty"`
	Source           string     `json:"source,omitempty"           yaml:"source,omitempty"`
	Meta             *Meta      `json:"_meta,omitempty"            yaml:"_meta,omitempty"`
}

// ProjectMapping links a project to an external application identifier.
type ProjectMapping struct {
	ApplicationID string `json:"applicationId"   yaml:"applicationId"`
	Meta          *Meta  `json:"_meta,omitempty" yaml:"_meta,omitempty"`
}

// Tag is a label attached to a project.
type Tag struct {
	Name string `json:"name"            yaml:"name"`
	Meta *Meta  `json:"_meta,omitempty" yaml:"_meta,omitempty"`
}

// CustomField is a user-defined field on a project or version.
type CustomField struct {
	Label  string   `json:"label"            yaml:"label"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`
	Meta   *Meta    `json:"_meta,omitempty"  yaml:"_meta,omitempty"`
}

// BomComponent is one component recorded in a project version's bill of
// materials.
type BomComponent struct {
	ComponentName        string      `json:"componentName"                  yaml:"componentName"`
	ComponentVersionName string      `json:"componentVersionName,omitempty" yaml:"componentVersionName,omitempty"`
	Component            string      `json:"component,omitempty"            yaml:"component,omitempty"`
	ComponentVersion     string      `json:"componentVersion,omitempty"     yaml:"componentVersion,omitempty"`
	Origins              []BomOrigin `json:"origins,omitempty"              yaml:"origins,omitempty"`
	Ignored              bool        `json:"ignored,omitempty"              yaml:"ignored,omitempty"`
	ReviewStatus         string      `json:"reviewStatus,omitempty"         yaml:"reviewStatus,omitempty"`
	PolicyStatus         string      `json:"approvalStatus,omitempty"       yaml:"approvalStatus,omitempty"`
	MatchTypes           []string    `json:"matchTypes,omitempty"           yaml:"matchTypes,omitempty"`
	Usages               []string    `json:"usages,omitempty"               yaml:"usages,omitempty"`
	Meta                 *Meta       `json:"_meta,omitempty"                yaml:"_meta,omitempty"`
}

// BomOrigin is an origin reference embedded in a BoM component entry.
type BomOrigin struct {
	Name              string `json:"name,omitempty"              yaml:"name,omitempty"`
	ExternalNamespace string `json:"externalNamespace,omitempty" yaml:"externalNamespace,omitempty"`
	ExternalID        string `json:"externalId,omitempty"        yaml:"externalId,omitempty"`
	Meta              *Meta  `json:"_meta,omitempty"             yaml:"_meta,omitempty"`
}

// Href resolves the origin's canonical resource href. The origin's own href
// wins; entries without one fall back to their "origin" relation link.
func (o *BomOrigin) Href() (string, bool) {
	if o.Meta != nil && o.Meta.Href != "" {
		return o.Meta.Href, true
	}

	if href, ok := o.Meta.Link("origin"); ok {
		return href, true
	}

	return "", false
}

// Origin is a provenance record tying a component version to evidence.
type Origin struct {
	OriginName        string `json:"originName,omitempty"        yaml:"originName,omitempty"`
	OriginID          string `json:"originId,omitempty"          yaml:"originId,omitempty"`
	ExternalNamespace string `json:"externalNamespace,omitempty" yaml:"externalNamespace,omitempty"`
	ExternalID        string `json:"externalId,omitempty"        yaml:"externalId,omitempty"`
	Meta              *Meta  `json:"_meta,omitempty"             yaml:"_meta,omitempty"`
}

// CopyrightRecord is a single copyright statement associated with an origin.
type CopyrightRecord struct {
	Active           bool       `json:"active"                     yaml:"active"`
	KBCopyright      string     `json:"kbCopyright,omitempty"      yaml:"kbCopyright,omitempty"`
	UpdatedCopyright string     `json:"updatedCopyright,omitempty" yaml:"updatedCopyright,omitempty"`
	FileSHA1s        []string   `json:"fileSha1s,omitempty"        yaml:"fileSha1s,omitempty"`
	Source           string     `json:"source,omitempty"           yaml:"source,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"        yaml:"updatedAt,omitempty"`
	UpdatedBy        string     `json:"updatedBy,omitempty"        yaml:"updatedBy,omitempty"`
	Meta             *Meta      `json:"_meta,omitempty"            yaml:"_meta,omitempty"`
}

// User represents a Hub user account.
type User struct {
	UserName  string `json:"userName"            yaml:"userName"`
	FirstName string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	Email     string `json:"email,omitempty"     yaml:"email,omitempty"`
	Active    bool   `json:"active"              yaml:"active"`
	Type      string `json:"type,omitempty"      yaml:"type,omitempty"`
	Meta      *Meta  `json:"_meta,omitempty"     yaml:"_meta,omitempty"`
}

// UserGroup represents a group of users.
type UserGroup struct {
	Name        string `json:"name"                  yaml:"name"`
	Active      bool   `json:"active"                yaml:"active"`
	CreatedFrom string `json:"createdFrom,omitempty" yaml:"createdFrom,omitempty"`
	Meta        *Meta  `json:"_meta,omitempty"       yaml:"_meta,omitempty"`
}

// Role is a role assignment held by a user or group.
type Role struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Scope       string `json:"scope,omitempty"       yaml:"scope,omitempty"`
	Meta        *Meta  `json:"_meta,omitempty"       yaml:"_meta,omitempty"`
}

// CodeLocation is a scan location mapped to a project version.
type CodeLocation struct {
	Name                 string     `json:"name"                           yaml:"name"`
	MappedProjectVersion string     `json:"mappedProjectVersion,omitempty" yaml:"mappedProjectVersion,omitempty"`
	CreatedAt            *time.Time `json:"createdAt,omitempty"            yaml:"createdAt,omitempty"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"            yaml:"updatedAt,omitempty"`
	ScanSize             int64      `json:"scanSize,omitempty"             yaml:"scanSize,omitempty"`
	Meta                 *Meta      `json:"_meta,omitempty"                yaml:"_meta,omitempty"`
}

// ComponentSearchResult is one hit from the component search endpoint.
type ComponentSearchResult struct {
	ComponentName string `json:"componentName"          yaml:"componentName"`
	Component     string `json:"component,omitempty"    yaml:"component,omitempty"`
	OriginID      string `json:"originId,omitempty"     yaml:"originId,omitempty"`
	VersionName   string `json:"versionName,omitempty"  yaml:"versionName,omitempty"`
	Meta          *Meta  `json:"_meta,omitempty"        yaml:"_meta,omitempty"`
}

// KBComponent is a KnowledgeBase component record.
type KBComponent struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url,omitempty"         yaml:"url,omitempty"`
	Meta        *Meta  `json:"_meta,omitempty"       yaml:"_meta,omitempty"`
}

// Report formats accepted by the report endpoints.
const (
	ReportFormatJSON     = "JSON"
	ReportFormatRDF      = "RDF"
	ReportFormatTagValue = "TAGVALUE"
	ReportFormatYAML     = "YAML"
)

// SBOM report types accepted by the report endpoints.
const (
	ReportTypeSPDX22      = "SPDX_22"
	ReportTypeCycloneDX13 = "CYCLONEDX_13"
	ReportTypeCycloneDX14 = "CYCLONEDX_14"
)

// Report status values.
const (
	ReportStatusInProgress = "IN_PROGRESS"
	ReportStatusCompleted  = "COMPLETED"
	ReportStatusFailed     = "FAILED"
)

// VersionReportRequest asks the server to generate an SBOM report.
type VersionReportRequest struct {
	ReportFormat string `json:"reportFormat" yaml:"reportFormat"`
	ReportType   string `json:"reportType"   yaml:"reportType"`
	SBOMType     string `json:"sbomType"     yaml:"sbomType"`
}

// VersionReport is a generated report for a project version.
type VersionReport struct {
	ReportFormat string     `json:"reportFormat,omitempty" yaml:"reportFormat,omitempty"`
	ReportType   string     `json:"reportType,omitempty"   yaml:"reportType,omitempty"`
	Status       string     `json:"status,omitempty"       yaml:"status,omitempty"`
	FileName     string     `json:"fileName,omitempty"     yaml:"fileName,omitempty"`
	FileSize     int64      `json:"fileSize,omitempty"     yaml:"fileSize,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"    yaml:"createdAt,omitempty"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty"   yaml:"finishedAt,omitempty"`
	Meta         *Meta      `json:"_meta,omitempty"        yaml:"_meta,omitempty"`
}

// ReportContent is one file inside a downloaded report.
type ReportContent struct {
	FileName    string `json:"fileName"    yaml:"fileName"`
	FileContent string `json:"fileContent" yaml:"fileContent"`
}

// ReportContents is the download envelope for a completed report.
type ReportContents struct {
	ReportContent []ReportContent `json:"reportContent" yaml:"reportContent"`
}

// NotificationTypeBomComputed marks a completed scan/BOM computation.
const NotificationTypeBomComputed = "VERSION_BOM_CODE_LOCATION_BOM_COMPUTED"

// NotificationContent is the payload of a notification.
type NotificationContent struct {
	ProjectName        string `json:"projectName,omitempty"        yaml:"projectName,omitempty"`
	ProjectVersionName string `json:"projectVersionName,omitempty" yaml:"projectVersionName,omitempty"`
	ProjectVersion     string `json:"projectVersion,omitempty"     yaml:"projectVersion,omitempty"`
}

// Notification is a system event visible to the current user.
type Notification struct {
	Type      string               `json:"type"              yaml:"type"`
	CreatedAt *time.Time           `json:"createdAt"         yaml:"createdAt"`
	Content   *NotificationContent `json:"content,omitempty" yaml:"content,omitempty"`
	Meta      *Meta                `json:"_meta,omitempty"   yaml:"_meta,omitempty"`
}

// JournalObject identifies the resource a journal event refers to.
type JournalObject struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// JournalTrigger identifies who caused a journal event.
type JournalTrigger struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// JournalEvent is one audit entry for a project version.
type JournalEvent struct {
	Action      string          `json:"action"                yaml:"action"`
	Timestamp   *time.Time      `json:"timestamp"             yaml:"timestamp"`
	ObjectData  *JournalObject  `json:"objectData,omitempty"  yaml:"objectData,omitempty"`
	TriggerData *JournalTrigger `json:"triggerData,omitempty" yaml:"triggerData,omitempty"`
	Meta        *Meta           `json:"_meta,omitempty"       yaml:"_meta,omitempty"`
}
