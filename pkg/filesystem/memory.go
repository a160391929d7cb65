package filesystem

import (
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// memFS implements FS on an afero MemMapFs. Symlinks are stored as regular
// files holding their target, so Lstat and Stat agree on them.
type memFS struct {
	fs afero.Fs
}

// NewMemory returns an empty in-memory filesystem, mostly for tests
func NewMemory() FS {
	return &memFS{fs: afero.NewMemMapFs()}
}

func (m *memFS) Stat(name string) (fs.FileInfo, error) {
	return m.fs.Stat(name)
}

func (m *memFS) Lstat(name string) (fs.FileInfo, error) {
	return m.fs.Stat(name)
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	info, err := m.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(m.fs, name)
}

func (m *memFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(m.fs, name, data, perm)
}

func (m *memFS) Chmod(name string, mode fs.FileMode) error {
	return m.fs.Chmod(name, mode)
}

func (m *memFS) MkdirAll(path string, perm fs.FileMode) error {
	return m.fs.MkdirAll(path, perm)
}

func (m *memFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(m.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (m *memFS) Symlink(oldname, newname string) error {
	return afero.WriteFile(m.fs, newname, []byte(oldname), 0777|os.ModeSymlink)
}

func (m *memFS) Readlink(name string) (string, error) {
	data, err := afero.ReadFile(m.fs, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
