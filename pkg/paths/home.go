package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/macstage/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// HomeDir returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	if homeDir = os.Getenv(EnvHome); homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory")
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths of the form ~user are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := HomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}
