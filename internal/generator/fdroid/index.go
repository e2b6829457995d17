package fdroid

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/ralt/fdindex/internal/models"
)

// XML structures for index.xml

// Index is the root of index.xml
type Index struct {
	XMLName      xml.Name         `xml:"fdroid"`
	Applications []xmlApplication `xml:"application"`
}

type xmlApplication struct {
	ID            string       `xml:"id"`
	Name          string       `xml:"name"`
	Summary       string       `xml:"summary"`
	Icon          string       `xml:"icon"`
	Description   string       `xml:"description"`
	License       string       `xml:"license"`
	Web           string       `xml:"web"`
	Source        string       `xml:"source"`
	Tracker       string       `xml:"tracker"`
	MarketVersion string       `xml:"marketversion"`
	MarketVerCode string       `xml:"marketvercode"`
	Packages      []xmlPackage `xml:"package"`
}

type xmlPackage struct {
	Version     string `xml:"version"`
	VersionCode int    `xml:"versioncode"`
	ApkName     string `xml:"apkname"`
	Hash        string `xml:"hash"`
	Size        int64  `xml:"size"`
	SDKVer      int    `xml:"sdkver"`
	Permissions string `xml:"permissions,omitempty"`
	Features    string `xml:"features,omitempty"`
	NativeCode  string `xml:"nativecode,omitempty"`
}

// BuildIndex converts reconciled applications into the index document.
// Disabled applications are counted but not included. Applications and
// packages keep their input order.
func BuildIndex(apps []models.Application) (*Index, *models.Result) {
	index := &Index{}
	result := &models.Result{}

	for _, app := range apps {
		rec := app.Record
		if rec.IsDisabled() {
			result.Disabled++
			continue
		}
		result.InRepo++

		entry := xmlApplication{
			ID:            rec.ID,
			Name:          app.Name,
			Summary:       rec.Summary,
			Icon:          app.Icon,
			Description:   rec.Description,
			License:       rec.License,
			Web:           rec.WebSite,
			Source:        rec.SourceCode,
			Tracker:       rec.IssueTracker,
			MarketVersion: rec.MarketVersion,
			MarketVerCode: rec.MarketVersionCode,
		}

		gotMarketVersion := false
		for _, pkg := range app.Packages {
			if strconv.Itoa(pkg.VersionCode) == rec.MarketVersionCode {
				gotMarketVersion = true
			}
			entry.Packages = append(entry.Packages, xmlPackage{
				Version:     pkg.VersionName,
				VersionCode: pkg.VersionCode,
				ApkName:     pkg.Filename,
				Hash:        pkg.Hash,
				Size:        pkg.Size,
				SDKVer:      pkg.SDKVersion,
				Permissions: strings.Join(pkg.Permissions, ","),
				Features:    strings.Join(pkg.Features, ","),
				NativeCode:  pkg.NativeCode,
			})
			result.Packages++
		}

		if !gotMarketVersion && rec.HasMarketVersion() {
			result.Warnings = append(result.Warnings, models.Warning{
				Kind:    models.WarnMarketVersionMissing,
				Subject: rec.ID,
				Message: fmt.Sprintf("don't have market version (%s, code %s) of %s", rec.MarketVersion, rec.MarketVersionCode, app.Name),
			})
		}

		index.Applications = append(index.Applications, entry)
	}

	return index, result
}

// Marshal renders the index as a UTF-8 XML document
func (i *Index) Marshal() ([]byte, error) {
	xmlBytes, err := xml.MarshalIndent(i, "", "  ")
	if err != nil {
		return nil, err
	}

	data := append([]byte(xml.Header), xmlBytes...)
	return append(data, '\n'), nil
}
