package fdroid

import (
	"context"
	"fmt"

	"github.com/ralt/fdindex/internal/inspector"
	"github.com/ralt/fdindex/internal/models"
	"github.com/ralt/fdindex/internal/scanner"
	"github.com/ralt/fdindex/internal/utils"
)

// ParsePackage inspects an Android package and builds its record. The icon
// is not extracted here; see ExtractIcon.
func ParsePackage(ctx context.Context, insp inspector.Inspector, scanned scanner.ScannedPackage) (*models.PackageRecord, []models.Warning, error) {
	badging, _, err := insp.Badging(ctx, scanned.Path)
	if err != nil {
		return nil, nil, err
	}

	checksums, err := utils.CalculateChecksums(scanned.Path)
	if err != nil {
		return nil, nil, &models.RepoGenError{
			Type:    models.ErrPackageParse,
			Package: scanned.Filename,
			Err:     fmt.Errorf("failed to calculate checksums: %w", err),
		}
	}

	var warnings []models.Warning
	if !badging.HasSDKVersion {
		warnings = append(warnings, models.Warning{
			Kind:    models.WarnMissingSDKVersion,
			Subject: scanned.Filename,
			Message: "no SDK version information found",
		})
	}

	pkg := &models.PackageRecord{
		ID:          badging.PackageName,
		VersionCode: badging.VersionCode,
		VersionName: badging.VersionName,
		DisplayName: badging.Label,
		IconSource:  badging.Icon,
		IconName:    models.IconFileName(badging.PackageName, badging.VersionCode),
		SDKVersion:  badging.SDKVersion,
		NativeCode:  badging.NativeCode,
		Permissions: badging.Permissions,
		Features:    badging.Features,
		Filename:    scanned.Filename,
		Size:        checksums.Size,
		Hash:        checksums.MD5,
		SHA256Sum:   checksums.SHA256,
	}

	return pkg, warnings, nil
}
