package fdroid

import (
	"github.com/ralt/fdindex/internal/models"
)

// Reconciliation is the result of matching application records with
// package records
type Reconciliation struct {
	Applications []models.Application   // in metadata store order
	Orphans      []models.PackageRecord // packages without a record, in scan order
	Warnings     []models.Warning
}

// Reconcile matches packages to applications by id. Each application takes
// its name and icon from the package with the highest version code; on a tie
// the earliest package in scan order wins. The inputs are not modified.
func Reconcile(apps []models.ApplicationRecord, packages []models.PackageRecord) *Reconciliation {
	byID := make(map[string][]models.PackageRecord)
	for _, pkg := range packages {
		byID[pkg.ID] = append(byID[pkg.ID], pkg)
	}

	r := &Reconciliation{}
	known := make(map[string]bool, len(apps))

	for _, app := range apps {
		known[app.ID] = true

		matched := byID[app.ID]
		enriched, ok := enrich(app, matched)
		if !ok {
			msg := "application has no packages"
			if len(matched) > 0 {
				msg = "application has no package with a positive version code"
			}
			r.Warnings = append(r.Warnings, models.Warning{
				Kind:    models.WarnNoPackages,
				Subject: app.ID,
				Message: msg,
			})
		}
		r.Applications = append(r.Applications, enriched)
	}

	for _, pkg := range packages {
		if !known[pkg.ID] {
			r.Orphans = append(r.Orphans, pkg)
		}
	}

	return r
}

// enrich derives the display fields of app from its packages. It reports
// false when no package qualifies.
func enrich(app models.ApplicationRecord, packages []models.PackageRecord) (models.Application, bool) {
	best := bestPackage(packages)
	if best == nil {
		return models.Application{
			Record:   app,
			Name:     app.ID,
			Icon:     "",
			Packages: packages,
		}, false
	}

	return models.Application{
		Record:   app,
		Name:     best.DisplayName,
		Icon:     best.IconName,
		Packages: packages,
	}, true
}

// bestPackage returns the package with the strictly greatest version code
// above zero
func bestPackage(packages []models.PackageRecord) *models.PackageRecord {
	var best *models.PackageRecord
	bestCode := 0
	for i := range packages {
		if packages[i].VersionCode > bestCode {
			bestCode = packages[i].VersionCode
			best = &packages[i]
		}
	}
	return best
}
