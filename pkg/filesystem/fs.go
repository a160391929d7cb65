package filesystem

import (
	"io/fs"
)

// FS is the filesystem interface required for macstage operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
}

// Exists reports whether name exists, without following a final symlink.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Lstat(name)
	return err == nil
}

// IsDir reports whether name exists and is a directory.
func IsDir(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

// IsEmptyDir reports whether name is a directory with no entries.
// A missing directory counts as empty.
func IsEmptyDir(fsys FS, name string) bool {
	entries, err := fsys.ReadDir(name)
	if err != nil {
		return true
	}
	return len(entries) == 0
}
