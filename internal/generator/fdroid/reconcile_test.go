package fdroid

import (
	"testing"

	"github.com/ralt/fdindex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkgRecord(file, id string, code int, label string) models.PackageRecord {
	return models.PackageRecord{
		ID:          id,
		VersionCode: code,
		DisplayName: label,
		IconName:    models.IconFileName(id, code),
		Filename:    file,
	}
}

func TestReconcileUsesHighestVersionCode(t *testing.T) {
	apps := []models.ApplicationRecord{{ID: "org.app", MarketVersionCode: "0"}}
	pkgs := []models.PackageRecord{
		pkgRecord("app_3.apk", "org.app", 3, "App v3"),
		pkgRecord("app_10.apk", "org.app", 10, "App v10"),
		pkgRecord("app_7.apk", "org.app", 7, "App v7"),
	}

	r := Reconcile(apps, pkgs)
	require.Len(t, r.Applications, 1)
	app := r.Applications[0]

	assert.Equal(t, "App v10", app.Name)
	assert.Equal(t, "org.app.10.png", app.Icon)
	assert.Equal(t, pkgs, app.Packages, "packages keep scan order")
	assert.Empty(t, r.Warnings)
	assert.Empty(t, r.Orphans)
}

func TestReconcileTieKeepsFirstInScanOrder(t *testing.T) {
	apps := []models.ApplicationRecord{{ID: "org.app"}}
	pkgs := []models.PackageRecord{
		pkgRecord("a.apk", "org.app", 5, "From a"),
		pkgRecord("b.apk", "org.app", 5, "From b"),
	}

	r := Reconcile(apps, pkgs)
	assert.Equal(t, "From a", r.Applications[0].Name)
}

func TestReconcileApplicationWithoutPackages(t *testing.T) {
	apps := []models.ApplicationRecord{{ID: "org.empty"}, {ID: "org.zero"}}
	pkgs := []models.PackageRecord{pkgRecord("zero.apk", "org.zero", 0, "Zero")}

	r := Reconcile(apps, pkgs)
	require.Len(t, r.Applications, 2)

	assert.Equal(t, "org.empty", r.Applications[0].Name)
	assert.Equal(t, "", r.Applications[0].Icon)
	assert.Empty(t, r.Applications[0].Packages)

	assert.Equal(t, "org.zero", r.Applications[1].Name)
	assert.Len(t, r.Applications[1].Packages, 1)

	require.Len(t, r.Warnings, 2)
	for _, w := range r.Warnings {
		assert.Equal(t, models.WarnNoPackages, w.Kind)
	}
	assert.Equal(t, "org.empty", r.Warnings[0].Subject)
}

func TestReconcileOrphans(t *testing.T) {
	apps := []models.ApplicationRecord{{ID: "org.known"}}
	pkgs := []models.PackageRecord{
		pkgRecord("x.apk", "com.orphan.app", 1, "Orphan"),
		pkgRecord("k.apk", "org.known", 1, "Known"),
		pkgRecord("y.apk", "com.orphan.app", 2, "Orphan"),
	}

	r := Reconcile(apps, pkgs)
	require.Len(t, r.Orphans, 2)
	assert.Equal(t, "x.apk", r.Orphans[0].Filename)
	assert.Equal(t, "y.apk", r.Orphans[1].Filename)
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	apps := []models.ApplicationRecord{{ID: "org.app", Summary: "s"}}
	pkgs := []models.PackageRecord{pkgRecord("a.apk", "org.app", 1, "App")}
	appsCopy := append([]models.ApplicationRecord(nil), apps...)

	Reconcile(apps, pkgs)
	assert.Equal(t, appsCopy, apps)
}
