package macstage

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/macstage/pkg/bootstrap"
	"github.com/arthur-debert/macstage/pkg/defaults"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/arthur-debert/macstage/pkg/homebrew"
	"github.com/arthur-debert/macstage/pkg/runner"
	"github.com/arthur-debert/macstage/pkg/shell"
	"github.com/arthur-debert/macstage/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	Env
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	home     string
	prompter *ui.StaticPrompter
	vcs      *bootstrap.FakeVCS
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ".zshrc"), []byte("alias ll='ls -l'\n"), 0644))

	te := &testEnv{
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
		home:     home,
		prompter: &ui.StaticPrompter{},
		vcs:      &bootstrap.FakeVCS{Tags: []string{"0.5.0"}},
	}
	te.Env = Env{
		Out:         te.out,
		ErrOut:      te.errOut,
		Interactive: func() bool { return false },
		Prompter:    te.prompter,
		FS:          filesystem.NewOS(),
		Store:       defaults.NewMemoryStore().Set("com.apple.dock", "autohide", "1"),
		Packages:    homebrew.New(runner.NewFake()),
		VCS:         te.vcs,
		Home:        func() (string, error) { return home, nil },
		DetectShell: func() shell.Shell { return shell.Zsh },
	}
	return te
}

func (te *testEnv) execute(args ...string) error {
	return Execute(NewRootCmdWithEnv(te.Env), args)
}

func TestStage_WithPath(t *testing.T) {
	te := newTestEnv(t)
	base := filepath.Join(t.TempDir(), "out")

	require.NoError(t, te.execute("-p", base))

	assert.FileExists(t, filepath.Join(base, "defaults.yaml"))
	assert.FileExists(t, filepath.Join(base, "symlinks", "shell", "zshrc"))
	assert.FileExists(t, filepath.Join(base, "run", "before", "01-before.sh"))
	assert.NoFileExists(t, filepath.Join(base, "Brewfile"))

	out := te.out.String()
	assert.Contains(t, out, "Staging into "+base)
	assert.Contains(t, out, "brew not found")
	assert.Empty(t, te.prompter.Asked)
}

func TestStage_Workspace(t *testing.T) {
	te := newTestEnv(t)
	base := t.TempDir()

	require.NoError(t, te.execute("--path", base, "--workspace", "laptop"))
	assert.FileExists(t, filepath.Join(base, "workspaces", "laptop", "defaults.yaml"))
}

func TestStage_NonInteractiveDefaultBase(t *testing.T) {
	te := newTestEnv(t)
	base := filepath.Join(t.TempDir(), "dotfiles")
	t.Setenv("MACSTAGE_STAGING_BASE_PATH", base)

	require.NoError(t, te.execute())

	assert.Contains(t, te.out.String(), fmt.Sprintf(MsgNoticeDefaultBase, base))
	assert.FileExists(t, filepath.Join(base, "defaults.yaml"))
}

func TestStage_InteractivePrompt(t *testing.T) {
	te := newTestEnv(t)
	base := filepath.Join(t.TempDir(), "chosen")
	te.Interactive = func() bool { return true }
	te.prompter.Answer = base

	require.NoError(t, te.execute())

	assert.Equal(t, []string{MsgPromptBasePath}, te.prompter.Asked)
	assert.FileExists(t, filepath.Join(base, "defaults.yaml"))
}

func TestStage_PromptFailure(t *testing.T) {
	te := newTestEnv(t)
	te.Interactive = func() bool { return true }
	te.prompter.Err = fmt.Errorf("interrupted")

	assert.Error(t, te.execute())
}

func TestStage_Bootstrap(t *testing.T) {
	te := newTestEnv(t)
	base := t.TempDir()

	require.NoError(t, te.execute("-p", base, "-b"))

	assert.DirExists(t, filepath.Join(base, "zero", ".git"))
	assert.Len(t, te.vcs.Cloned, 1)
	assert.Contains(t, te.out.String(), "zero.sh cloned at 0.5.0")
}

func TestStage_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"path without value", []string{"-p"}},
		{"workspace without value", []string{"-w"}},
		{"path followed by a flag", []string{"-p", "-w", "work"}},
		{"workspace with separator", []string{"-p", "/tmp/x", "-w", "a/b"}},
		{"workspace parent", []string{"-p", "/tmp/x", "-w", ".."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEnv(t)
			err := te.execute(tt.args...)
			require.Error(t, err)
			assert.NoDirExists(t, "/tmp/x/symlinks")
		})
	}
}

func TestStage_UnknownFlagIsIgnored(t *testing.T) {
	te := newTestEnv(t)
	base := t.TempDir()

	require.NoError(t, te.execute("-p", base, "--frobnicate", "-x"))

	assert.Contains(t, te.errOut.String(), "unknown flag --frobnicate ignored")
	assert.Contains(t, te.errOut.String(), "unknown flag -x ignored")
	assert.FileExists(t, filepath.Join(base, "defaults.yaml"))
}

func TestStage_ArgumentsAfterTerminator(t *testing.T) {
	te := newTestEnv(t)
	base := t.TempDir()

	require.NoError(t, te.execute("-p", base, "--", "extra", "-w", "ignored"))

	assert.FileExists(t, filepath.Join(base, "defaults.yaml"))
	assert.NoDirExists(t, filepath.Join(base, "workspaces"))
	assert.NotContains(t, te.errOut.String(), "extra")
}

func TestStage_StrayArgumentIsIgnored(t *testing.T) {
	te := newTestEnv(t)
	base := t.TempDir()

	require.NoError(t, te.execute("stray", "-p", base))

	assert.Contains(t, te.errOut.String(), `unexpected argument "stray" ignored`)
	assert.FileExists(t, filepath.Join(base, "defaults.yaml"))
}

func TestHelp(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.execute("-h"))
	assert.Contains(t, te.out.String(), "USAGE")
	assert.Contains(t, te.out.String(), "--workspace")
}

func TestVersionCmd(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.execute("version"))
	assert.Contains(t, te.out.String(), "macstage dev")
}

func TestDomainsCmd(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.execute("domains"))

	out := te.out.String()
	assert.Contains(t, out, "NSGlobalDomain")
	assert.Contains(t, out, "builtin")
}

func TestGenConfigCmd(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.execute("genconfig"))
	assert.Contains(t, te.out.String(), "[capture]")
	assert.Contains(t, te.out.String(), "base_path")

	te.out.Reset()
	require.NoError(t, te.execute("genconfig", "--write"))
	path := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "macstage", "config.toml")
	assert.FileExists(t, path)
	assert.Contains(t, te.out.String(), path)

	assert.Error(t, te.execute("genconfig", "--write"))
}

func TestDefaultEnv_StoreNeedsDefaultsCommand(t *testing.T) {
	env := DefaultEnv()
	if _, err := exec.LookPath(defaults.DefaultsCommand); err != nil {
		assert.Nil(t, env.Store)
	} else {
		assert.NotNil(t, env.Store)
	}
}

func TestUnknownFlags(t *testing.T) {
	root := NewRootCmdWithEnv(newTestEnv(t).Env)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all known", []string{"-p", "/x", "-w", "y", "-b", "-vv", "--config", "c.toml"}, nil},
		{"long unknown", []string{"--nope", "-p", "/x"}, []string{"--nope"}},
		{"long with value", []string{"--path=/x", "--nope=1"}, []string{"--nope"}},
		{"value looks like a flag", []string{"-p", "--nope"}, nil},
		{"combined shorthands", []string{"-bz"}, []string{"-z"}},
		{"after terminator", []string{"-p", "/x", "--", "--nope"}, nil},
		{"help", []string{"--help", "-h"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unknownFlags(root, tt.args))
		})
	}
}
