package models

import "time"

// RepositoryConfig contains configuration for index generation
type RepositoryConfig struct {
	// Layout
	RepoDir     string // directory holding the .apk files and the index
	MetadataDir string // directory holding the per-application records
	IconDir     string // defaults to RepoDir/icons

	// Package inspector
	AAPTPath         string
	InspectorTimeout time.Duration

	// Behaviour
	CreateMeta       bool // write skeleton metadata for orphan packages
	Verbose          bool // echo raw inspector output
	SoftIconFailures bool // downgrade icon extraction failures to warnings
	Jobs             int  // packages inspected concurrently

	// Output
	Compress []string // extra compressed copies of the index: "gz", "xz"

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}
