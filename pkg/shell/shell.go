package shell

import (
	"path/filepath"
	"strings"
)

// Shell is a closed set of supported shells
type Shell int

const (
	Unsupported Shell = iota
	Bash
	Zsh
	Fish
)

// String returns the shell's executable name
func (s Shell) String() string {
	switch s {
	case Bash:
		return "bash"
	case Zsh:
		return "zsh"
	case Fish:
		return "fish"
	default:
		return "unsupported"
	}
}

// Supported reports whether the shell has known files
func (s Shell) Supported() bool {
	return s != Unsupported
}

// Parse maps a shell name or path ("/bin/zsh", "-zsh", "zsh-5.9") to a Shell
func Parse(name string) Shell {
	base := filepath.Base(strings.TrimSpace(name))
	// login shells are started as "-zsh"
	base = strings.TrimPrefix(base, "-")

	switch {
	case base == "bash" || strings.HasPrefix(base, "bash-"):
		return Bash
	case base == "zsh" || strings.HasPrefix(base, "zsh-"):
		return Zsh
	case base == "fish" || strings.HasPrefix(base, "fish-"):
		return Fish
	default:
		return Unsupported
	}
}

// File is a shell file to stage
type File struct {
	// Source is the absolute path in the home directory
	Source string
	// Name is the staged file name, without a leading dot
	Name string
}

// Files returns the run-control file and, when the shell has one, the
// login-profile file
func (s Shell) Files(home string) []File {
	var rel []string
	switch s {
	case Bash:
		rel = []string{".bashrc", ".bash_profile"}
	case Zsh:
		rel = []string{".zshrc", ".zprofile"}
	case Fish:
		// fish has no separate login profile
		rel = []string{filepath.Join(".config", "fish", "config.fish")}
	default:
		return nil
	}

	files := make([]File, 0, len(rel))
	for _, r := range rel {
		files = append(files, File{
			Source: filepath.Join(home, r),
			Name:   StagedName(r),
		})
	}
	return files
}

// StagedName strips directories and the leading dot from a shell file path
func StagedName(path string) string {
	return strings.TrimPrefix(filepath.Base(path), ".")
}
