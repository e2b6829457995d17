package scanner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Android packages are zip archives
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// PackageExt is the extension of the files that are indexed
const PackageExt = ".apk"

// DetectPackage reports whether path is an Android package. Files with the
// package extension that are not zip archives are rejected with an error.
func DetectPackage(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), PackageExt) {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, len(zipMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return false, fmt.Errorf("failed to read header: %w", err)
	}

	if !bytes.Equal(header, zipMagic) {
		return false, fmt.Errorf("not a zip archive")
	}

	return true, nil
}
