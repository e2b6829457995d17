package scanner

import "context"

// ScannedPackage represents a package file found during scanning
type ScannedPackage struct {
	Path     string // path usable to open the file
	Filename string // path relative to the scanned directory
	Size     int64
}

// Scanner interface for detecting and scanning packages
type Scanner interface {
	// Scan lists the packages of a directory in filename order
	Scan(ctx context.Context, dir string) ([]ScannedPackage, error)

	// IsPackage reports whether a file is an Android package
	IsPackage(path string) (bool, error)
}
