package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ralt/fdindex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateChecksumsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.apk")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	first, err := CalculateChecksums(path)
	require.NoError(t, err)
	second, err := CalculateChecksums(path)
	require.NoError(t, err)

	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", first.MD5)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", first.SHA256)
	assert.Equal(t, int64(5), first.Size)
	assert.Equal(t, first, second)
}

func TestCalculateChecksumsMissingFile(t *testing.T) {
	_, err := CalculateChecksums(filepath.Join(t.TempDir(), "missing.apk"))
	assert.Error(t, err)
}

func TestCompressRoundTrip(t *testing.T) {
	data := []byte("<fdroid></fdroid>\n")

	gz, err := Compress("gz", data)
	require.NoError(t, err)
	out, err := GzipDecompress(gz)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	xzData, err := Compress("xz", data)
	require.NoError(t, err)
	out, err = XzDecompress(xzData)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	_, err = Compress("bz2", data)
	assert.Error(t, err)
}

func TestResetDirRemovesStaleFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")
	require.NoError(t, EnsureDir(dir))
	stale := filepath.Join(dir, "old.1.png")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0644))

	require.NoError(t, ResetDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.xml")
	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestDetectDuplicates(t *testing.T) {
	pkgs := []models.PackageRecord{
		{ID: "org.a", VersionCode: 1, Filename: "a1.apk"},
		{ID: "org.a", VersionCode: 2, Filename: "a2.apk"},
		{ID: "org.a", VersionCode: 1, Filename: "a1-copy.apk"},
		{ID: "org.b", VersionCode: 1, Filename: "b1.apk"},
	}

	dups := DetectDuplicates(pkgs)
	require.Len(t, dups, 1)
	assert.Equal(t, "a1-copy.apk", dups[0].Filename)
	assert.Equal(t, "org.a:1", PackageIdentity(dups[0]))
}
