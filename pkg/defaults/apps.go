package defaults

import (
	"strings"

	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/arthur-debert/macstage/pkg/paths"
)

// AppBundleSuffix marks an application bundle directory
const AppBundleSuffix = ".app"

// ScanApplications lists the display names of application bundles found
// directly inside dirs. Missing or unreadable directories are skipped.
func ScanApplications(fsys filesystem.FS, dirs []string) []string {
	logger := logging.GetLogger("defaults.apps")

	var apps []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		dir = paths.ExpandHome(dir)
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			logger.Debug().Err(err).Str("dir", dir).Msg("Skipping application directory")
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasSuffix(name, AppBundleSuffix) {
				continue
			}
			display := strings.TrimSuffix(name, AppBundleSuffix)
			if display == "" || seen[display] {
				continue
			}
			seen[display] = true
			apps = append(apps, display)
		}
	}

	logger.Debug().Int("count", len(apps)).Msg("Scanned installed applications")
	return apps
}
