package fdroid

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/ralt/fdindex/internal/inspector"
	"github.com/ralt/fdindex/internal/models"
	"github.com/ralt/fdindex/internal/scanner"
	"github.com/stretchr/testify/require"
)

const iconPath = "res/drawable/icon.png"

// fakeAAPT answers "aapt dump badging" for registered package paths
type fakeAAPT struct {
	mu      sync.Mutex
	outputs map[string]string
	failing map[string]bool
	calls   []string
}

func newFakeAAPT() *fakeAAPT {
	return &fakeAAPT{
		outputs: make(map[string]string),
		failing: make(map[string]bool),
	}
}

func (f *fakeAAPT) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := args[len(args)-1]
	f.calls = append(f.calls, path)
	if f.failing[path] {
		return []byte("ERROR: dump failed because no AndroidManifest.xml found"), errors.New("exit status 1")
	}
	out, ok := f.outputs[path]
	if !ok {
		return nil, fmt.Errorf("unexpected package %s", path)
	}
	return []byte(out), nil
}

func (f *fakeAAPT) inspector() inspector.Inspector {
	return inspector.NewAAPT("aapt", inspector.WithRunner(f.run))
}

type testApk struct {
	file        string
	id          string
	versionCode int
	versionName string
	label       string
	sdk         string // empty omits the sdkVersion line
	icon        []byte // nil omits the icon from the archive
	extra       string
}

func (a testApk) badging() string {
	out := fmt.Sprintf("package: name='%s' versionCode='%d' versionName='%s'\n", a.id, a.versionCode, a.versionName)
	if a.sdk != "" {
		out += fmt.Sprintf("sdkVersion:'%s'\n", a.sdk)
	}
	out += fmt.Sprintf("application: label='%s' icon='%s'\n", a.label, iconPath)
	return out + a.extra
}

// repoFixture is a repository directory with packages and a metadata store
type repoFixture struct {
	root        string
	repoDir     string
	metadataDir string
	aapt        *fakeAAPT
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()
	root := t.TempDir()
	f := &repoFixture{
		root:        root,
		repoDir:     filepath.Join(root, "repo"),
		metadataDir: filepath.Join(root, "metadata"),
		aapt:        newFakeAAPT(),
	}
	require.NoError(t, os.MkdirAll(f.repoDir, 0755))
	require.NoError(t, os.MkdirAll(f.metadataDir, 0755))
	return f
}

func (f *repoFixture) config() *models.RepositoryConfig {
	return &models.RepositoryConfig{
		RepoDir:     f.repoDir,
		MetadataDir: f.metadataDir,
		Jobs:        1,
	}
}

func (f *repoFixture) addApk(t *testing.T, a testApk) {
	t.Helper()
	path := filepath.Join(f.repoDir, a.file)

	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)

	w, err := zw.Create("AndroidManifest.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("manifest of " + a.id))
	require.NoError(t, err)

	if a.icon != nil {
		w, err = zw.Create(iconPath)
		require.NoError(t, err)
		_, err = w.Write(a.icon)
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	f.aapt.outputs[path] = a.badging()
}

func (f *repoFixture) addMetadata(t *testing.T, id, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.metadataDir, id+".txt"), []byte(content), 0644))
}

func (f *repoFixture) scan(t *testing.T) []scanner.ScannedPackage {
	t.Helper()
	files, err := scanner.NewFileSystemScanner().Scan(context.Background(), f.repoDir)
	require.NoError(t, err)
	return files
}
