package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zeroURL = "https://github.com/zero-sh/zero.sh"

func TestStage_CloneThenUpdate(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "zero")
	fake := &FakeVCS{Tags: []string{"0.4.0", "0.5.0"}}
	opts := Options{Repository: zeroURL, Dir: dir, PinLatestTag: true, VCS: fake, FS: filesystem.NewOS()}

	result, err := Stage(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, Cloned, result.Action)
	assert.Equal(t, "0.5.0", result.Tag)
	assert.Equal(t, []string{zeroURL}, fake.Cloned)
	assert.DirExists(t, filepath.Join(dir, ".git"))

	result, err = Stage(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, Updated, result.Action)
	assert.Equal(t, []string{dir}, fake.Pulled)
	assert.Len(t, fake.Cloned, 1)
	assert.Equal(t, []string{"0.5.0", "0.5.0"}, fake.CheckedOut)
}

func TestStage_NoPin(t *testing.T) {
	fake := &FakeVCS{Tags: []string{"1.0"}}
	result, err := Stage(context.Background(), Options{
		Repository: zeroURL,
		Dir:        filepath.Join(t.TempDir(), "zero"),
		VCS:        fake,
		FS:         filesystem.NewOS(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Tag)
	assert.Empty(t, fake.CheckedOut)
}

func TestStage_NoTags(t *testing.T) {
	result, err := Stage(context.Background(), Options{
		Repository:   zeroURL,
		Dir:          filepath.Join(t.TempDir(), "zero"),
		PinLatestTag: true,
		VCS:          &FakeVCS{},
		FS:           filesystem.NewOS(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Tag)
	assert.NotEmpty(t, result.Notice)
}

func TestStage_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("occupied directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0644))
		_, err := Stage(ctx, Options{Repository: zeroURL, Dir: dir, VCS: &FakeVCS{}, FS: filesystem.NewOS()})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("clone failure", func(t *testing.T) {
		fake := &FakeVCS{CloneErr: errors.New(errors.ErrVCSClone, "network down")}
		_, err := Stage(ctx, Options{Repository: zeroURL, Dir: filepath.Join(t.TempDir(), "z"), VCS: fake, FS: filesystem.NewOS()})
		assert.True(t, errors.IsErrorCode(err, errors.ErrVCSClone))
	})

	t.Run("pull failure", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
		fake := &FakeVCS{PullErr: fmt.Errorf("diverged")}
		_, err := Stage(ctx, Options{Repository: zeroURL, Dir: dir, VCS: fake, FS: filesystem.NewOS()})
		assert.Error(t, err)
	})

	t.Run("missing options", func(t *testing.T) {
		_, err := Stage(ctx, Options{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
