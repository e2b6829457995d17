package models

// Result summarises one index generation run
type Result struct {
	InRepo    int // enabled applications written to the index
	Disabled  int // applications skipped because they are disabled
	Packages  int // package entries written to the index
	IndexPath string
	Warnings  []Warning
}
