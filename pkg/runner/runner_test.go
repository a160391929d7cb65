package runner

import (
	"context"
	"testing"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Output(t *testing.T) {
	r := New()

	out, err := r.Output(context.Background(), "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestExecRunner_OutputFailureCarriesStderr(t *testing.T) {
	r := New()

	_, err := r.Output(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandExec))

	var stageErr *errors.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "boom", stageErr.Details["stderr"])
}

func TestExecRunner_LookPath(t *testing.T) {
	r := New()

	path, err := r.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = r.LookPath("macstage-definitely-not-installed")
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
}

func TestFake(t *testing.T) {
	f := NewFake().
		On("defaults domains", "com.apple.dock").
		Fail("defaults read broken", errors.New(errors.ErrCommandExec, "nope")).
		Install("brew", "/opt/homebrew/bin/brew")

	out, err := f.Output(context.Background(), "defaults", "domains")
	require.NoError(t, err)
	assert.Equal(t, "com.apple.dock", string(out))

	_, err = f.Output(context.Background(), "defaults", "read", "broken")
	assert.Error(t, err)

	_, err = f.Output(context.Background(), "unknown")
	assert.Error(t, err)

	path, err := f.LookPath("brew")
	require.NoError(t, err)
	assert.Equal(t, "/opt/homebrew/bin/brew", path)

	_, err = f.LookPath("git")
	assert.Error(t, err)

	assert.Equal(t, []string{"defaults domains", "defaults read broken", "unknown"}, f.Calls)
}
