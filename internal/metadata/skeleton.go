package metadata

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/fdindex/internal/models"
	"github.com/ralt/fdindex/internal/utils"
	"github.com/sirupsen/logrus"
)

// Skeleton renders a placeholder record for a package that has no metadata
func Skeleton(pkg models.PackageRecord) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s:Unknown\n", KeyLicense)
	fmt.Fprintf(&buf, "%s:\n", KeyWebSite)
	fmt.Fprintf(&buf, "%s:\n", KeySourceCode)
	fmt.Fprintf(&buf, "%s:\n", KeyIssueTracker)
	fmt.Fprintf(&buf, "%s:%s\n", KeySummary, pkg.DisplayName)
	fmt.Fprintf(&buf, "%s:\n", KeyDescription)
	fmt.Fprintf(&buf, "%s\n", pkg.DisplayName)
	buf.WriteString(".\n")

	return buf.Bytes()
}

// WriteSkeleton stores a skeleton record for pkg. An existing record is
// never overwritten; written reports whether a file was created.
func (s *Store) WriteSkeleton(pkg models.PackageRecord) (written bool, err error) {
	path := filepath.Join(s.dir, pkg.ID+RecordExt)

	if _, err := os.Stat(path); err == nil {
		logrus.Debugf("Metadata for %s already exists at %s", pkg.ID, path)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := utils.WriteFile(path, Skeleton(pkg), 0644); err != nil {
		return false, &models.RepoGenError{
			Type:    models.ErrMetadataGen,
			Package: pkg.ID,
			Err:     fmt.Errorf("failed to write skeleton metadata: %w", err),
		}
	}

	logrus.Infof("Generated skeleton metadata for %s", pkg.ID)
	return true, nil
}
