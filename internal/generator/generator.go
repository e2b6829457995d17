package generator

import (
	"context"

	"github.com/ralt/fdindex/internal/models"
)

// Generator interface for repository index generators
type Generator interface {
	// Generate builds and writes the index from the extracted packages
	Generate(ctx context.Context, config *models.RepositoryConfig, packages []models.PackageRecord) (*models.Result, error)

	// ValidatePackages checks if packages are valid for this generator
	ValidatePackages(packages []models.PackageRecord) error
}
