package fdroid

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/ralt/fdindex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndexSkipsDisabledApplications(t *testing.T) {
	apps := []models.Application{
		{
			Record:   models.ApplicationRecord{ID: "org.off", Disabled: "Non-free", MarketVersionCode: "1"},
			Name:     "Off",
			Packages: []models.PackageRecord{pkgRecord("off.apk", "org.off", 1, "Off")},
		},
		{
			Record: models.ApplicationRecord{ID: "org.on", MarketVersionCode: "0"},
			Name:   "org.on",
		},
	}

	index, result := BuildIndex(apps)
	require.Len(t, index.Applications, 1)
	assert.Equal(t, "org.on", index.Applications[0].ID)
	assert.Equal(t, 1, result.InRepo)
	assert.Equal(t, 1, result.Disabled)
	assert.Equal(t, 0, result.Packages)
	assert.Empty(t, result.Warnings, "market version code 0 never warns")

	data, err := index.Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "org.off")
	assert.NotContains(t, string(data), "off.apk")
}

func TestBuildIndexMarketVersionMissing(t *testing.T) {
	apps := []models.Application{{
		Record:   models.ApplicationRecord{ID: "org.app", MarketVersion: "3.0", MarketVersionCode: "3"},
		Name:     "App",
		Packages: []models.PackageRecord{pkgRecord("a.apk", "org.app", 2, "App")},
	}}

	_, result := BuildIndex(apps)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, models.WarnMarketVersionMissing, result.Warnings[0].Kind)
	assert.Equal(t, "org.app", result.Warnings[0].Subject)
}

func TestIndexMarshalLayout(t *testing.T) {
	apps := []models.Application{{
		Record: models.ApplicationRecord{
			ID: "org.app", License: "GPLv3", WebSite: "https://w", SourceCode: "https://s",
			IssueTracker: "https://t", Summary: "Sum", Description: "Desc & more",
			MarketVersion: "1.0", MarketVersionCode: "1",
		},
		Name: "App",
		Icon: "org.app.1.png",
		Packages: []models.PackageRecord{
			{
				ID: "org.app", VersionCode: 1, VersionName: "1.0", Filename: "app.apk",
				Hash: "abc", Size: 1234, SDKVersion: 4,
				Permissions: []string{"INTERNET", "CAMERA"}, Features: nil,
			},
		},
	}}

	index, _ := BuildIndex(apps)
	data, err := index.Marshal()
	require.NoError(t, err)

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<fdroid>
  <application>
    <id>org.app</id>
    <name>App</name>
    <summary>Sum</summary>
    <icon>org.app.1.png</icon>
    <description>Desc &amp; more</description>
    <license>GPLv3</license>
    <web>https://w</web>
    <source>https://s</source>
    <tracker>https://t</tracker>
    <marketversion>1.0</marketversion>
    <marketvercode>1</marketvercode>
    <package>
      <version>1.0</version>
      <versioncode>1</versioncode>
      <apkname>app.apk</apkname>
      <hash>abc</hash>
      <size>1234</size>
      <sdkver>4</sdkver>
      <permissions>INTERNET,CAMERA</permissions>
    </package>
  </application>
</fdroid>
`
	assert.Equal(t, expected, string(data))
	assert.False(t, strings.Contains(string(data), "<features>"))

	var parsed Index
	require.NoError(t, xml.Unmarshal(data, &parsed))
	assert.Equal(t, "org.app", parsed.Applications[0].ID)
}
