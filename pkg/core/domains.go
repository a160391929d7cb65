package core

import (
	"context"

	"github.com/arthur-debert/macstage/pkg/config"
	"github.com/arthur-debert/macstage/pkg/defaults"
	"github.com/arthur-debert/macstage/pkg/filesystem"
)

// Domains lists the preference domains a run would capture, without writing
func Domains(ctx context.Context, cfg *config.Config, store defaults.PreferenceStore, fsys filesystem.FS) []defaults.Domain {
	if cfg == nil {
		cfg = config.Default()
	}
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return defaults.EnumerateDomains(ctx, store, defaults.EnumerateOptions{
		Builtins:     cfg.Capture.BuiltinDomains,
		Applications: defaults.ScanApplications(fsys, cfg.Capture.AppDirs),
		Match:        cfg.Capture.Match,
	})
}
