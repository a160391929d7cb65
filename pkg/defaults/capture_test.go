package defaults

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/macstage/pkg/config"
	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	apps := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(apps, "Safari.app"), 0755))
	out := filepath.Join(t.TempDir(), "defaults.yaml")

	store := NewMemoryStore().
		Set(GlobalDomain, "AppleShowAllExtensions", "1").
		Set("com.apple.dock", "autohide", "1").
		Set("com.apple.Safari", "HomePage", "https://example.com").
		AddDomain("com.apple.TextEdit")

	doc, err := Capture(context.Background(), CaptureOptions{
		Store:       store,
		FS:          filesystem.NewOS(),
		Builtins:    []string{GlobalDomain, "com.apple.dock", "com.apple.screencapture"},
		AppDirs:     []string{apps},
		Match:       config.MatchSubstring,
		Destination: out,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{GlobalDomain, "com.apple.dock", "com.apple.screencapture", "com.apple.Safari"},
		func() []string {
			var names []string
			for _, g := range doc.Groups {
				names = append(names, g.Domain)
			}
			return names
		}())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.Contains(t, trimmedLines(data), "com.apple.screencapture:")
	assert.Contains(t, text, "  HomePage: https://example.com\n")
	assert.Equal(t, 1, strings.Count(text, "com.apple.dock:"))
}

func TestCapture_NothingCaptured(t *testing.T) {
	out := filepath.Join(t.TempDir(), "defaults.yaml")

	doc, err := Capture(context.Background(), CaptureOptions{
		Store:       NewMemoryStore(),
		FS:          filesystem.NewOS(),
		Destination: out,
	})
	require.NoError(t, err)
	assert.Empty(t, doc.Groups)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "---\n", string(data))
}

func TestCapture_Validation(t *testing.T) {
	_, err := Capture(context.Background(), CaptureOptions{FS: filesystem.NewOS()})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = Capture(context.Background(), CaptureOptions{Store: NewMemoryStore()})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCapture_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Capture(ctx, CaptureOptions{
		Store:    NewMemoryStore(),
		FS:       filesystem.NewOS(),
		Builtins: []string{GlobalDomain},
	})
	require.Error(t, err)
}
