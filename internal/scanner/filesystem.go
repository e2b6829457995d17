package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner interface for filesystem scanning
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan lists the packages stored directly in dir. Subdirectories such as
// the icon directory are not descended into. WalkDir visits entries in
// lexical order, which makes the result ordered by filename.
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]ScannedPackage, error) {
	var packages []ScannedPackage

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if path == dir {
				return nil
			}
			return filepath.SkipDir
		}

		ok, err := s.IsPackage(path)
		if err != nil {
			logrus.Warnf("Skipping %s: %v", path, err)
			return nil
		}
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		logrus.Debugf("Found package: %s", path)

		packages = append(packages, ScannedPackage{
			Path:     path,
			Filename: filepath.ToSlash(rel),
			Size:     info.Size(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	logrus.Infof("Found %d packages in %s", len(packages), dir)
	return packages, nil
}

// IsPackage reports whether a file is an Android package
func (s *FileSystemScanner) IsPackage(path string) (bool, error) {
	return DetectPackage(path)
}
