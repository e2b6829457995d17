// Package metadata reads and writes the hand-authored application records
// kept in the repository's metadata directory, one text file per application.
package metadata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/ralt/fdindex/internal/models"
	"github.com/sirupsen/logrus"
)

// RecordExt is the extension of metadata files
const RecordExt = ".txt"

// Record keys
const (
	KeyDisabled          = "Disabled"
	KeyLicense           = "License"
	KeyWebSite           = "Web Site"
	KeySourceCode        = "Source Code"
	KeyIssueTracker      = "Issue Tracker"
	KeySummary           = "Summary"
	KeyDescription       = "Description"
	KeyMarketVersion     = "Market Version"
	KeyMarketVersionCode = "Market Version Code"
)

// Store is the metadata directory
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// ReadAll parses every record of the store, ordered by file name. Errors in
// individual files are collected and returned together.
func (s *Store) ReadAll() ([]models.ApplicationRecord, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*"+RecordExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var apps []models.ApplicationRecord
	var errs *multierror.Error

	for _, path := range paths {
		app, err := ReadFile(path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		apps = append(apps, *app)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, &models.RepoGenError{Type: models.ErrMetadata, Err: err}
	}

	logrus.Infof("Read %d application records from %s", len(apps), s.dir)
	return apps, nil
}

// ReadFile parses one metadata file. The application id is the file name
// without its extension.
func ReadFile(path string) (*models.ApplicationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(path), RecordExt)
	app, err := Parse(id, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return app, nil
}

// Parse reads a record in "Key:Value" form. The Description key starts a
// multi-line body that ends with a line holding a single ".".
func Parse(id string, r io.Reader) (*models.ApplicationRecord, error) {
	app := &models.ApplicationRecord{
		ID:                id,
		MarketVersionCode: "0",
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	inDescription := false
	var description []string

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if inDescription {
			if line == "." {
				inDescription = false
				app.Description = strings.Join(description, "\n")
				continue
			}
			description = append(description, line)
			continue
		}

		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"Key:Value\", got %q", lineNo, line)
		}
		value = strings.TrimSpace(value)

		switch key {
		case KeyDisabled:
			app.Disabled = value
		case KeyLicense:
			app.License = value
		case KeyWebSite:
			app.WebSite = value
		case KeySourceCode:
			app.SourceCode = value
		case KeyIssueTracker:
			app.IssueTracker = value
		case KeySummary:
			app.Summary = value
		case KeyDescription:
			inDescription = true
			description = description[:0]
			if value != "" {
				description = append(description, value)
			}
		case KeyMarketVersion:
			app.MarketVersion = value
		case KeyMarketVersionCode:
			if value == "" {
				value = "0"
			}
			app.MarketVersionCode = value
		default:
			logrus.Debugf("%s: ignoring unknown key %q", id, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if inDescription {
		return nil, fmt.Errorf("description not terminated by \".\"")
	}

	return app, nil
}
