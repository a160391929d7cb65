package defaults

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanApplications(t *testing.T) {
	fsys := filesystem.NewMemory()
	dir := "/Applications"
	other := "/Users/me/Applications"
	for _, name := range []string{"Safari.app", "iTerm.app", "Utilities"} {
		require.NoError(t, fsys.MkdirAll(filepath.Join(dir, name), 0755))
	}
	require.NoError(t, fsys.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, fsys.MkdirAll(filepath.Join(other, "Safari.app"), 0755))
	require.NoError(t, fsys.MkdirAll(filepath.Join(other, "Xcode.app"), 0755))

	apps := ScanApplications(fsys, []string{
		dir,
		filepath.Join(dir, "does-not-exist"),
		other,
	})

	assert.ElementsMatch(t, []string{"Safari", "iTerm", "Xcode"}, apps)
}

func TestScanApplications_NoDirs(t *testing.T) {
	assert.Empty(t, ScanApplications(filesystem.NewMemory(), nil))
}
