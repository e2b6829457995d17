package fdroid

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zip"
	"github.com/ralt/fdindex/internal/models"
	"github.com/ralt/fdindex/internal/utils"
)

// ExtractIcon copies the archive member src of the package at apkPath to dst
// byte for byte
func ExtractIcon(apkPath, src, dst string) error {
	if src == "" {
		return &models.RepoGenError{
			Type:    models.ErrIconExtraction,
			Package: apkPath,
			Err:     fmt.Errorf("package declares no icon"),
		}
	}

	r, err := zip.OpenReader(apkPath)
	if err != nil {
		return &models.RepoGenError{
			Type:    models.ErrIconExtraction,
			Package: apkPath,
			Err:     fmt.Errorf("failed to open archive: %w", err),
		}
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != src {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return &models.RepoGenError{
				Type:    models.ErrIconExtraction,
				Package: apkPath,
				Err:     fmt.Errorf("failed to open %s: %w", src, err),
			}
		}
		defer rc.Close()

		if err := utils.CopyToFile(dst, rc); err != nil {
			os.Remove(dst)
			return &models.RepoGenError{
				Type:    models.ErrIconExtraction,
				Package: apkPath,
				Err:     fmt.Errorf("failed to write icon %s: %w", dst, err),
			}
		}
		return nil
	}

	return &models.RepoGenError{
		Type:    models.ErrIconExtraction,
		Package: apkPath,
		Err:     fmt.Errorf("icon %s not found in archive", src),
	}
}
