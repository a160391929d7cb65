package homebrew

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	tests := []struct {
		name      string
		installed map[string]string
		want      bool
	}{
		{"on PATH", map[string]string{"brew": "/usr/local/bin/brew"}, true},
		{"apple silicon prefix", map[string]string{"/opt/homebrew/bin/brew": "/opt/homebrew/bin/brew"}, true},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := runner.NewFake()
			for name, path := range tt.installed {
				fake.Install(name, path)
			}
			assert.Equal(t, tt.want, New(fake).Available())
		})
	}
}

func TestExportManifest(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "Brewfile")

	fake := runner.NewFake().
		Install("brew", "/opt/homebrew/bin/brew").
		Hook("/opt/homebrew/bin/brew", func(args []string) error {
			require.Equal(t, []string{"bundle", "dump", "--file=" + manifest}, args)
			return os.WriteFile(manifest, []byte("brew \"git\"\n"), 0644)
		})

	require.NoError(t, New(fake).ExportManifest(context.Background(), manifest))

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	assert.Equal(t, "brew \"git\"\n", string(data))
	assert.True(t, strings.HasPrefix(fake.Calls[0], "/opt/homebrew/bin/brew bundle dump"))
}

func TestExportManifest_Errors(t *testing.T) {
	err := New(runner.NewFake()).ExportManifest(context.Background(), "/tmp/Brewfile")
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))

	fake := runner.NewFake().
		Install("brew", "brew").
		Fail("brew bundle dump --file=/tmp/Brewfile", fmt.Errorf("exit status 1"))
	err = New(fake).ExportManifest(context.Background(), "/tmp/Brewfile")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandExec))
}
