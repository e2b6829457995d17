package utils

import (
	"fmt"

	"github.com/ralt/fdindex/internal/models"
)

// PackageIdentity returns the key that must be unique across a repository.
// Icon file names are derived from it.
func PackageIdentity(pkg models.PackageRecord) string {
	return fmt.Sprintf("%s:%d", pkg.ID, pkg.VersionCode)
}

// DetectDuplicates returns, in input order, the packages whose identity was
// already taken by an earlier package of the slice
func DetectDuplicates(packages []models.PackageRecord) []models.PackageRecord {
	seen := make(map[string]bool)

	var duplicates []models.PackageRecord
	for _, pkg := range packages {
		id := PackageIdentity(pkg)
		if seen[id] {
			duplicates = append(duplicates, pkg)
			continue
		}
		seen[id] = true
	}
	return duplicates
}
