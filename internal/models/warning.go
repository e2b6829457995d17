package models

import "fmt"

// WarningKind classifies a recoverable condition found while building the index
type WarningKind int

const (
	WarnMissingSDKVersion WarningKind = iota
	WarnOrphanPackage
	WarnNoPackages
	WarnMarketVersionMissing
	WarnDuplicatePackage
	WarnIconUnavailable
)

// String returns the string representation of WarningKind
func (k WarningKind) String() string {
	switch k {
	case WarnMissingSDKVersion:
		return "MissingSDKVersion"
	case WarnOrphanPackage:
		return "OrphanPackage"
	case WarnNoPackages:
		return "NoPackages"
	case WarnMarketVersionMissing:
		return "MarketVersionMissing"
	case WarnDuplicatePackage:
		return "DuplicatePackage"
	case WarnIconUnavailable:
		return "IconUnavailable"
	default:
		return "Unknown"
	}
}

// Warning is a recoverable problem. Warnings never fail a run.
type Warning struct {
	Kind    WarningKind
	Subject string // package file name or application id
	Message string
}

// String renders the warning for logs
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Subject, w.Message)
}
