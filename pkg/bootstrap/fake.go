package bootstrap

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/vcs"
)

// FakeVCS is an in-process SourceControl for tests. Clone creates a .git
// directory so later runs see a repository.
type FakeVCS struct {
	Tags     []string
	CloneErr error
	PullErr  error

	Cloned     []string
	Pulled     []string
	CheckedOut []string
}

// IsRepository implements vcs.SourceControl
func (f *FakeVCS) IsRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// Clone implements vcs.SourceControl
func (f *FakeVCS) Clone(ctx context.Context, url, dir string) error {
	if f.CloneErr != nil {
		return f.CloneErr
	}
	f.Cloned = append(f.Cloned, url)
	return os.MkdirAll(filepath.Join(dir, ".git"), 0755)
}

// Pull implements vcs.SourceControl
func (f *FakeVCS) Pull(ctx context.Context, dir string) error {
	if f.PullErr != nil {
		return f.PullErr
	}
	f.Pulled = append(f.Pulled, dir)
	return nil
}

// LatestTag implements vcs.SourceControl, returning the last of Tags
func (f *FakeVCS) LatestTag(ctx context.Context, dir string) (string, error) {
	if len(f.Tags) == 0 {
		return "", errors.New(errors.ErrNotFound, "repository has no tags")
	}
	return f.Tags[len(f.Tags)-1], nil
}

// Checkout implements vcs.SourceControl
func (f *FakeVCS) Checkout(ctx context.Context, dir, tag string) error {
	f.CheckedOut = append(f.CheckedOut, tag)
	return nil
}

var _ vcs.SourceControl = (*FakeVCS)(nil)
