// Package homebrew exports the installed package list as a Brewfile.
package homebrew

import (
	"context"
	"strings"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/arthur-debert/macstage/pkg/runner"
	"github.com/rs/zerolog"
)

// BrewCommand is the Homebrew executable name
const BrewCommand = "brew"

// KnownLocations are checked when brew is not on PATH
var KnownLocations = []string{
	"/opt/homebrew/bin/brew",
	"/usr/local/bin/brew",
}

// PackageManager exports a manifest of installed packages
type PackageManager interface {
	Name() string
	Available() bool
	ExportManifest(ctx context.Context, path string) error
}

// Homebrew is the PackageManager for brew bundle
type Homebrew struct {
	runner runner.Runner
	path   string
}

// New creates a Homebrew manager that runs commands through r
func New(r runner.Runner) *Homebrew {
	return &Homebrew{
		runner: r,
	}
}

// Name implements PackageManager
func (h *Homebrew) Name() string {
	return BrewCommand
}

// Available reports whether a brew executable can be found
func (h *Homebrew) Available() bool {
	return h.resolve() != ""
}

func (h *Homebrew) resolve() string {
	if h.path != "" {
		return h.path
	}
	for _, candidate := range append([]string{BrewCommand}, KnownLocations...) {
		if p, err := h.runner.LookPath(candidate); err == nil {
			h.path = p
			return p
		}
	}
	return ""
}

// ExportManifest writes the Brewfile for everything installed to path.
// It does not pass --force; callers skip existing manifests.
func (h *Homebrew) ExportManifest(ctx context.Context, path string) error {
	brew := h.resolve()
	if brew == "" {
		return errors.New(errors.ErrToolMissing, "brew is not installed")
	}

	h.log().Debug().Str("brew", brew).Str("file", path).Msg("Dumping Brewfile")
	out, err := h.runner.Output(ctx, brew, "bundle", "dump", "--file="+path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCommandExec, "brew bundle dump failed").
			WithDetail("file", path)
	}
	if msg := strings.TrimSpace(string(out)); msg != "" {
		h.log().Trace().Str("output", msg).Msg("brew bundle dump output")
	}
	return nil
}

func (h *Homebrew) log() *zerolog.Logger {
	l := logging.GetLogger("homebrew")
	return &l
}

var _ PackageManager = (*Homebrew)(nil)
