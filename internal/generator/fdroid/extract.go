package fdroid

import (
	"context"
	"path/filepath"

	"github.com/ralt/fdindex/internal/inspector"
	"github.com/ralt/fdindex/internal/models"
	"github.com/ralt/fdindex/internal/scanner"
	"github.com/ralt/fdindex/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Extractor turns scanned package files into package records and fills the
// icon directory
type Extractor struct {
	inspector inspector.Inspector
	config    *models.RepositoryConfig
}

// NewExtractor creates an extractor using insp to read package badging
func NewExtractor(insp inspector.Inspector, config *models.RepositoryConfig) *Extractor {
	return &Extractor{
		inspector: insp,
		config:    config,
	}
}

// IconDir returns the directory icons are extracted to
func IconDir(config *models.RepositoryConfig) string {
	if config.IconDir != "" {
		return config.IconDir
	}
	return filepath.Join(config.RepoDir, "icons")
}

// Extract wipes the icon directory, inspects every package and extracts the
// icons. Records are returned in the order of files. The first fatal error
// stops the run.
func (e *Extractor) Extract(ctx context.Context, files []scanner.ScannedPackage) ([]models.PackageRecord, []models.Warning, error) {
	iconDir := IconDir(e.config)
	if err := utils.ResetDir(iconDir); err != nil {
		return nil, nil, &models.RepoGenError{Type: models.ErrFileOp, Err: err}
	}

	records := make([]models.PackageRecord, len(files))
	perFile := make([][]models.Warning, len(files))

	jobs := e.config.Jobs
	if jobs < 1 {
		jobs = 1
	}

	// Inspection and hashing touch only the package's own file
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			// A failed package stops the remaining ones from starting
			if err := gctx.Err(); err != nil {
				return err
			}
			logrus.Infof("Processing %s", file.Filename)

			pkg, warnings, err := ParsePackage(gctx, e.inspector, file)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				logrus.Warn(w.String())
			}

			records[i] = *pkg
			perFile[i] = warnings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var warnings []models.Warning
	for _, w := range perFile {
		warnings = append(warnings, w...)
	}

	// Icons are written in file order so that when two packages share an
	// id and version code the first one by file name owns the icon.
	duplicates := make(map[string]bool)
	for _, dup := range utils.DetectDuplicates(records) {
		duplicates[dup.Filename] = true
		w := models.Warning{
			Kind:    models.WarnDuplicatePackage,
			Subject: dup.Filename,
			Message: "another package already has id and version code " + utils.PackageIdentity(dup),
		}
		logrus.Warn(w.String())
		warnings = append(warnings, w)
	}

	for i := range records {
		pkg := &records[i]
		if duplicates[pkg.Filename] {
			continue
		}

		err := ExtractIcon(files[i].Path, pkg.IconSource, filepath.Join(iconDir, pkg.IconName))
		if err == nil {
			continue
		}
		if !e.config.SoftIconFailures {
			return nil, nil, err
		}

		w := models.Warning{
			Kind:    models.WarnIconUnavailable,
			Subject: pkg.Filename,
			Message: err.Error(),
		}
		logrus.Warn(w.String())
		warnings = append(warnings, w)
		pkg.IconName = ""
	}

	return records, warnings, nil
}
