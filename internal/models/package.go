package models

import "strconv"

// PackageRecord describes one scanned Android package file
type PackageRecord struct {
	// Identity
	ID          string
	VersionCode int
	VersionName string

	// Application level information declared by the package
	DisplayName string
	IconSource  string // path of the icon asset inside the archive
	IconName    string // file name of the extracted icon, empty if none

	// Requirements
	SDKVersion  int
	NativeCode  string
	Permissions []string
	Features    []string

	// File information
	Filename  string // relative to the repository directory
	Size      int64
	Hash      string // hex MD5, published in the index
	SHA256Sum string
}

// IconFileName returns the name under which the icon of a package with the
// given id and version code is stored in the icon directory
func IconFileName(id string, versionCode int) string {
	return id + "." + strconv.Itoa(versionCode) + ".png"
}
