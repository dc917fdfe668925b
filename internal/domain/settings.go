package domain

// SettingsID is the well-known key of the site settings singleton row.
const SettingsID = "global_settings"

// SiteSettings is a single externally-owned record read on nearly every
// request and written rarely, by privileged audited action only.
type SiteSettings struct {
	ID              string
	MaintenanceMode bool
}
