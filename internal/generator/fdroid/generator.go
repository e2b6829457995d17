package fdroid

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ralt/fdindex/internal/generator"
	"github.com/ralt/fdindex/internal/metadata"
	"github.com/ralt/fdindex/internal/models"
	"github.com/ralt/fdindex/internal/signer"
	"github.com/ralt/fdindex/internal/utils"
	"github.com/sirupsen/logrus"
)

// IndexFile is the name of the generated index inside the repository directory
const IndexFile = "index.xml"

// Generator implements the generator.Generator interface for F-Droid
// repositories
type Generator struct {
	store  *metadata.Store
	signer signer.Signer
}

// NewGenerator creates a new F-Droid index generator. s may be nil for an
// unsigned repository.
func NewGenerator(store *metadata.Store, s signer.Signer) generator.Generator {
	return &Generator{
		store:  store,
		signer: s,
	}
}

// Generate reads the metadata store, reconciles it with packages and writes
// index.xml into the repository directory
func (g *Generator) Generate(ctx context.Context, config *models.RepositoryConfig, packages []models.PackageRecord) (*models.Result, error) {
	logrus.Info("Generating F-Droid index...")

	apps, err := g.store.ReadAll()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := Reconcile(apps, packages)
	warnings := logWarnings(nil, rec.Warnings...)

	for _, orphan := range rec.Orphans {
		if config.CreateMeta {
			if _, err := g.store.WriteSkeleton(orphan); err != nil {
				return nil, err
			}
			continue
		}
		warnings = logWarnings(warnings, models.Warning{
			Kind:    models.WarnOrphanPackage,
			Subject: orphan.Filename,
			Message: fmt.Sprintf("%s has no metadata (%s - %s)", orphan.ID, orphan.DisplayName, orphan.VersionName),
		})
	}

	index, result := BuildIndex(rec.Applications)
	result.Warnings = logWarnings(warnings, result.Warnings...)

	data, err := index.Marshal()
	if err != nil {
		return nil, &models.RepoGenError{
			Type: models.ErrMetadataGen,
			Err:  fmt.Errorf("failed to marshal index: %w", err),
		}
	}

	// Signed before the index is replaced
	var signature []byte
	if g.signer != nil {
		signature, err = g.signer.SignDetached(data)
		if err != nil {
			return nil, &models.RepoGenError{Type: models.ErrSigning, Err: err}
		}
	}

	indexPath := filepath.Join(config.RepoDir, IndexFile)
	if err := utils.WriteFileAtomic(indexPath, data, 0644); err != nil {
		return nil, &models.RepoGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write %s: %w", IndexFile, err),
		}
	}
	result.IndexPath = indexPath
	logrus.Infof("Wrote %s (%d applications, %d packages)", indexPath, result.InRepo, result.Packages)

	for _, format := range config.Compress {
		if err := writeCompressed(indexPath, format, data); err != nil {
			return nil, err
		}
	}

	if g.signer != nil {
		if err := g.writeSignature(config, indexPath, signature); err != nil {
			return nil, err
		}
	} else {
		logrus.Warn("No signer configured, index will be unsigned")
	}

	return result, nil
}

func writeCompressed(indexPath, format string, data []byte) error {
	compressed, err := utils.Compress(format, data)
	if err != nil {
		return &models.RepoGenError{
			Type: models.ErrMetadataGen,
			Err:  fmt.Errorf("failed to compress index: %w", err),
		}
	}

	path := indexPath + "." + format
	if err := utils.WriteFileAtomic(path, compressed, 0644); err != nil {
		return &models.RepoGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write %s: %w", path, err),
		}
	}
	logrus.Debugf("Wrote %s", path)
	return nil
}

func (g *Generator) writeSignature(config *models.RepositoryConfig, indexPath string, signature []byte) error {
	sigPath := indexPath + ".asc"
	if err := utils.WriteFileAtomic(sigPath, signature, 0644); err != nil {
		return &models.RepoGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write signature: %w", err),
		}
	}

	pubKey, err := g.signer.GetPublicKey()
	if err != nil {
		return &models.RepoGenError{Type: models.ErrSigning, Err: err}
	}
	if err := utils.WriteFile(filepath.Join(config.RepoDir, "pubkey.asc"), pubKey, 0644); err != nil {
		return &models.RepoGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write public key: %w", err),
		}
	}

	logrus.Info("Index signed successfully")
	return nil
}

// ValidatePackages checks that every package has an id and an .apk name
func (g *Generator) ValidatePackages(packages []models.PackageRecord) error {
	for _, pkg := range packages {
		if pkg.ID == "" {
			return fmt.Errorf("package missing id: %s", pkg.Filename)
		}
		if !strings.HasSuffix(strings.ToLower(pkg.Filename), ".apk") {
			return fmt.Errorf("package %s is not an .apk file", pkg.ID)
		}
		if pkg.Size < 0 {
			return fmt.Errorf("package %s has a negative size", pkg.Filename)
		}
	}
	return nil
}

func logWarnings(dst []models.Warning, warnings ...models.Warning) []models.Warning {
	for _, w := range warnings {
		logrus.Warn(w.String())
	}
	return append(dst, warnings...)
}
