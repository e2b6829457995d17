package models

// ApplicationRecord is one hand-authored entry of the metadata store
type ApplicationRecord struct {
	ID       string
	Disabled string // non-empty means disabled; the value is the reason

	License      string
	WebSite      string
	SourceCode   string
	IssueTracker string
	Summary      string
	Description  string

	// Release the maintainer recommends. A code of "0" or "" means none.
	MarketVersion     string
	MarketVersionCode string
}

// IsDisabled reports whether the application is excluded from the index
func (a ApplicationRecord) IsDisabled() bool {
	return a.Disabled != ""
}

// HasMarketVersion reports whether a recommended version code is declared
func (a ApplicationRecord) HasMarketVersion() bool {
	return a.MarketVersionCode != "" && a.MarketVersionCode != "0"
}

// Application is an ApplicationRecord enriched with the information derived
// from its packages
type Application struct {
	Record ApplicationRecord

	// Name and Icon come from the package with the highest version code,
	// or are ID and "" when there is none.
	Name string
	Icon string

	// Packages holds every matching package in scan order
	Packages []PackageRecord
}
