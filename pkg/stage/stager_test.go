package stage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newStager(t *testing.T) *Stager {
	t.Helper()
	s, err := New(filesystem.NewOS())
	require.NoError(t, err)
	return s
}

func TestNew_RequiresOSFilesystem(t *testing.T) {
	_, err := New(filesystem.NewMemory())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = New(nil)
	assert.Error(t, err)
}

func TestStageFile(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	out := t.TempDir()
	s := newStager(t)

	src := filepath.Join(home, ".zshrc")
	writeFile(t, src, "export EDITOR=vim\n")
	dst := filepath.Join(out, "symlinks", "shell", "zshrc")

	outcome, err := s.StageFile(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, Staged, outcome)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "export EDITOR=vim\n", string(data))

	t.Run("existing destination is kept", func(t *testing.T) {
		writeFile(t, src, "changed\n")
		outcome, err := s.StageFile(ctx, src, dst)
		require.NoError(t, err)
		assert.Equal(t, SkippedExists, outcome)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "export EDITOR=vim\n", string(data))
	})

	t.Run("missing source", func(t *testing.T) {
		outcome, err := s.StageFile(ctx, filepath.Join(home, ".bashrc"), filepath.Join(out, "bashrc"))
		require.NoError(t, err)
		assert.Equal(t, SkippedMissing, outcome)
		assert.NoFileExists(t, filepath.Join(out, "bashrc"))
	})

	t.Run("directory source counts as missing", func(t *testing.T) {
		outcome, err := s.StageFile(ctx, home, filepath.Join(out, "homecopy"))
		require.NoError(t, err)
		assert.Equal(t, SkippedMissing, outcome)
	})
}

func TestStageFile_FollowsSymlinkedSource(t *testing.T) {
	home := t.TempDir()
	out := t.TempDir()

	actual := filepath.Join(home, "dotfiles", "gitconfig")
	writeFile(t, actual, "[user]\n\tname = Alice\n")
	link := filepath.Join(home, ".gitconfig")
	require.NoError(t, os.Symlink(actual, link))

	dst := filepath.Join(out, "gitconfig")
	outcome, err := newStager(t).StageFile(context.Background(), link, dst)
	require.NoError(t, err)
	assert.Equal(t, Staged, outcome)

	info, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}

func TestStageTree(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	config := filepath.Join(home, ".config")

	writeFile(t, filepath.Join(config, "git", "ignore"), "*.swp\n")
	writeFile(t, filepath.Join(config, "nvim", "init.lua"), "vim.o.number = true\n")
	require.NoError(t, os.Symlink("nvim/init.lua", filepath.Join(config, "init-link")))
	require.NoError(t, os.MkdirAll(filepath.Join(config, "empty"), 0755))

	// the staging base lives inside the tree being copied
	base := filepath.Join(config, "dotfiles")
	dst := filepath.Join(base, "symlinks", "config")
	writeFile(t, filepath.Join(base, "Brewfile"), "brew \"git\"\n")
	require.NoError(t, os.MkdirAll(dst, 0755))

	s := newStager(t)
	result, err := s.StageTree(ctx, config, dst, base)
	require.NoError(t, err)
	assert.Equal(t, Staged, result.Outcome)
	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 1, result.Links)

	data, err := os.ReadFile(filepath.Join(dst, "nvim", "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "vim.o.number = true\n", string(data))
	assert.FileExists(t, filepath.Join(dst, "git", "ignore"))
	assert.DirExists(t, filepath.Join(dst, "empty"))

	target, err := os.Readlink(filepath.Join(dst, "init-link"))
	require.NoError(t, err)
	assert.Equal(t, "nvim/init.lua", target)

	assert.NoDirExists(t, filepath.Join(dst, "dotfiles"))

	t.Run("non-empty destination is skipped", func(t *testing.T) {
		writeFile(t, filepath.Join(config, "new", "file"), "x")
		result, err := s.StageTree(ctx, config, dst, base)
		require.NoError(t, err)
		assert.Equal(t, SkippedExists, result.Outcome)
		assert.NoFileExists(t, filepath.Join(dst, "new", "file"))
	})

	t.Run("exclude containing the source prunes nothing", func(t *testing.T) {
		out := filepath.Join(home, "stage", "config")
		result, err := s.StageTree(ctx, filepath.Join(config, "nvim"), out, home, config)
		require.NoError(t, err)
		assert.Equal(t, Staged, result.Outcome)
		assert.Equal(t, 1, result.Files)
		assert.FileExists(t, filepath.Join(out, "init.lua"))
	})

	t.Run("missing source", func(t *testing.T) {
		result, err := s.StageTree(ctx, filepath.Join(home, "nope"), filepath.Join(t.TempDir(), "c"))
		require.NoError(t, err)
		assert.Equal(t, SkippedMissing, result.Outcome)
	})
}

func TestWriteScript(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "run", "before", "01-before.sh")
	s := newStager(t)

	outcome, err := s.WriteScript(ctx, path, "#!/usr/bin/env bash\n")
	require.NoError(t, err)
	assert.Equal(t, Staged, outcome)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(ScriptMode), info.Mode().Perm())

	require.NoError(t, os.WriteFile(path, []byte("custom\n"), 0755))
	outcome, err = s.WriteScript(ctx, path, "#!/usr/bin/env bash\n")
	require.NoError(t, err)
	assert.Equal(t, SkippedExists, outcome)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(data))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "staged", Staged.String())
	assert.Equal(t, "already staged", SkippedExists.String())
	assert.Equal(t, "source missing", SkippedMissing.String())
}
