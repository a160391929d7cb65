package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/arthur-debert/macstage/pkg/logging"
)

// Fixed names inside a layout root
const (
	WorkspacesDir = "workspaces"
	SymlinksDir   = "symlinks"
	ShellDir      = "shell"
	GitDir        = "git"
	ConfigDir     = "config"
	RunDir        = "run"
	BeforeDir     = "before"
	AfterDir      = "after"

	BeforeScript = "01-before.sh"
	AfterScript  = "01-after.sh"
)

// Names are the configurable file and directory names of a layout
type Names struct {
	Manifest string
	Document string
	Tool     string
}

// DefaultNames returns the names used when none are configured
func DefaultNames() Names {
	return Names{
		Manifest: "Brewfile",
		Document: "defaults.yaml",
		Tool:     "zero",
	}
}

// Layout is the resolved set of absolute staging paths
type Layout struct {
	Base      string
	Workspace string
	Root      string

	Manifest string
	Document string

	Symlinks  string
	ShellDir  string
	GitDir    string
	ConfigDir string

	BeforeDir string
	AfterDir  string

	ToolDir string
}

// Resolve computes the layout for base and an optional workspace name.
// Empty fields of names fall back to DefaultNames.
func Resolve(base, workspace string, names Names) (Layout, error) {
	if strings.TrimSpace(base) == "" {
		return Layout{}, errors.New(errors.ErrLayoutInvalid, "base path must not be empty")
	}
	if err := ValidateWorkspace(workspace); err != nil {
		return Layout{}, err
	}

	defaults := DefaultNames()
	if names.Manifest == "" {
		names.Manifest = defaults.Manifest
	}
	if names.Document == "" {
		names.Document = defaults.Document
	}
	if names.Tool == "" {
		names.Tool = defaults.Tool
	}

	absBase, err := filepath.Abs(ExpandHome(base))
	if err != nil {
		return Layout{}, errors.Wrapf(err, errors.ErrLayoutInvalid, "cannot resolve base path %q", base)
	}

	root := absBase
	if workspace != "" {
		root = filepath.Join(absBase, WorkspacesDir, workspace)
	}

	symlinks := filepath.Join(root, SymlinksDir)
	return Layout{
		Base:      absBase,
		Workspace: workspace,
		Root:      root,
		Manifest:  filepath.Join(root, names.Manifest),
		Document:  filepath.Join(root, names.Document),
		Symlinks:  symlinks,
		ShellDir:  filepath.Join(symlinks, ShellDir),
		GitDir:    filepath.Join(symlinks, GitDir),
		ConfigDir: filepath.Join(symlinks, ConfigDir),
		BeforeDir: filepath.Join(root, RunDir, BeforeDir),
		AfterDir:  filepath.Join(root, RunDir, AfterDir),
		ToolDir:   filepath.Join(absBase, names.Tool),
	}, nil
}

// ValidateWorkspace rejects names that would escape base/workspaces
func ValidateWorkspace(name string) error {
	if name == "" {
		return nil
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Newf(errors.ErrInvalidInput, "invalid workspace name %q", name)
	}
	return nil
}

// Directories lists every directory of the layout, parents first
func (l Layout) Directories() []string {
	return []string{
		l.Root,
		l.Symlinks,
		l.ShellDir,
		l.GitDir,
		l.ConfigDir,
		l.BeforeDir,
		l.AfterDir,
		l.ToolDir,
	}
}

// BeforeScript is the pre-setup placeholder path
func (l Layout) BeforeScript() string {
	return filepath.Join(l.BeforeDir, BeforeScript)
}

// AfterScript is the post-setup placeholder path
func (l Layout) AfterScript() string {
	return filepath.Join(l.AfterDir, AfterScript)
}

// Materialize creates every directory of the layout
func (l Layout) Materialize(fsys filesystem.FS) error {
	logger := logging.GetLogger("paths.layout")

	for _, dir := range l.Directories() {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrLayoutCreate, "failed to create %s", dir)
		}
		logger.Trace().Str("dir", dir).Msg("Directory ready")
	}

	logger.Debug().Str("root", l.Root).Msg("Layout materialized")
	return nil
}
