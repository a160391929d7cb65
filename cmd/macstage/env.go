package macstage

import (
	"io"
	"os"

	"github.com/arthur-debert/macstage/pkg/defaults"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/arthur-debert/macstage/pkg/homebrew"
	"github.com/arthur-debert/macstage/pkg/paths"
	"github.com/arthur-debert/macstage/pkg/runner"
	"github.com/arthur-debert/macstage/pkg/shell"
	"github.com/arthur-debert/macstage/pkg/ui"
	"github.com/arthur-debert/macstage/pkg/vcs"
)

// Env holds everything the commands touch outside the process
type Env struct {
	Out    io.Writer
	ErrOut io.Writer

	// Interactive reports whether the base path may be prompted for
	Interactive func() bool
	Prompter    ui.Prompter

	FS       filesystem.FS
	Store    defaults.PreferenceStore
	Packages homebrew.PackageManager
	VCS      vcs.SourceControl

	Home        func() (string, error)
	DetectShell func() shell.Shell
}

// DefaultEnv wires the real system. Store stays nil where the defaults
// command is missing, which turns the preferences step into a warning.
func DefaultEnv() Env {
	r := runner.New()
	var store defaults.PreferenceStore
	if cs := defaults.NewCommandStore(r); cs.Available() {
		store = cs
	}
	return Env{
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Interactive: func() bool { return ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout) },
		Prompter:    ui.TerminalPrompter{},
		FS:          filesystem.NewOS(),
		Store:       store,
		Packages:    homebrew.New(r),
		VCS:         vcs.New(),
		Home:        paths.HomeDir,
		DetectShell: shell.Detect,
	}
}
