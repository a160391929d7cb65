// Package vcs wraps the version-control operations needed to stage an
// external tool: clone, update, and pin to the most recent tag.
package vcs

import (
	"context"
	stderrors "errors"
	"path/filepath"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
)

// RemoteName is the remote created by Clone
const RemoteName = "origin"

// SourceControl is the capability the bootstrap step needs
type SourceControl interface {
	// IsRepository reports whether dir holds a working copy
	IsRepository(dir string) bool
	Clone(ctx context.Context, url, dir string) error
	// Pull updates the working copy and fetches tags
	Pull(ctx context.Context, dir string) error
	// LatestTag returns the tag pointing at the most recently committed revision
	LatestTag(ctx context.Context, dir string) (string, error)
	Checkout(ctx context.Context, dir, tag string) error
}

// Git implements SourceControl with go-git, no git binary required
type Git struct{}

// New returns a go-git backed SourceControl
func New() *Git {
	return &Git{}
}

// IsRepository implements SourceControl
func (g *Git) IsRepository(dir string) bool {
	_, err := git.PlainOpen(dir)
	return err == nil
}

// Clone implements SourceControl
func (g *Git) Clone(ctx context.Context, url, dir string) error {
	g.log().Debug().Str("url", url).Str("dir", dir).Msg("Cloning repository")
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:        url,
		RemoteName: RemoteName,
		Tags:       git.AllTags,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrVCSClone, "failed to clone %s", url).
			WithDetail("dir", dir)
	}
	return nil
}

// Pull implements SourceControl. A detached HEAD (left by Checkout) is only
// fetched, since there is no branch to merge into.
func (g *Git) Pull(ctx context.Context, dir string) error {
	repo, err := open(dir)
	if err != nil {
		return err
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: RemoteName,
		Tags:       git.AllTags,
	})
	if err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		return errors.Wrap(err, errors.ErrVCSUpdate, "failed to fetch").WithDetail("dir", dir)
	}

	head, err := repo.Head()
	if err != nil {
		return errors.Wrap(err, errors.ErrVCSUpdate, "failed to resolve HEAD").WithDetail("dir", dir)
	}
	if !head.Name().IsBranch() {
		g.log().Debug().Str("dir", dir).Msg("Detached HEAD, fetched only")
		return nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		return errors.Wrap(err, errors.ErrVCSUpdate, "failed to open worktree").WithDetail("dir", dir)
	}
	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    RemoteName,
		ReferenceName: head.Name(),
	})
	if err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		return errors.Wrap(err, errors.ErrVCSUpdate, "failed to pull").WithDetail("dir", dir)
	}
	return nil
}

// LatestTag implements SourceControl. Ties on commit time go to the tag
// name that sorts last.
func (g *Git) LatestTag(ctx context.Context, dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}

	iter, err := repo.Tags()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCSTag, "failed to list tags")
	}

	var (
		best     string
		bestTime int64
	)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commit, err := tagCommit(repo, ref)
		if err != nil {
			g.log().Debug().Err(err).Str("tag", ref.Name().Short()).Msg("Skipping tag")
			return nil
		}
		name := ref.Name().Short()
		when := commit.Committer.When.Unix()
		if best == "" || when > bestTime || (when == bestTime && name > best) {
			best, bestTime = name, when
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCSTag, "failed to walk tags")
	}
	if best == "" {
		return "", errors.New(errors.ErrNotFound, "repository has no tags").WithDetail("dir", dir)
	}
	return best, nil
}

// Checkout implements SourceControl. Untracked files are kept.
func (g *Git) Checkout(ctx context.Context, dir, tag string) error {
	repo, err := open(dir)
	if err != nil {
		return err
	}

	ref, err := repo.Tag(tag)
	if err != nil {
		return errors.Wrapf(err, errors.ErrVCSCheckout, "unknown tag %s", tag)
	}
	commit, err := tagCommit(repo, ref)
	if err != nil {
		return errors.Wrapf(err, errors.ErrVCSCheckout, "cannot resolve tag %s", tag)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return errors.Wrap(err, errors.ErrVCSCheckout, "failed to open worktree")
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: commit.Hash, Keep: true}); err != nil {
		return errors.Wrapf(err, errors.ErrVCSCheckout, "failed to check out %s", tag)
	}

	g.log().Debug().Str("tag", tag).Str("commit", commit.Hash.String()).Msg("Checked out tag")
	return nil
}

func open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpen(filepath.Clean(dir))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrNotFound, "not a repository").WithDetail("dir", dir)
	}
	return repo, nil
}

// tagCommit peels annotated and lightweight tags to their commit
func tagCommit(repo *git.Repository, ref *plumbing.Reference) (*object.Commit, error) {
	if tag, err := repo.TagObject(ref.Hash()); err == nil {
		return tag.Commit()
	}
	return repo.CommitObject(ref.Hash())
}

func (g *Git) log() *zerolog.Logger {
	l := logging.GetLogger("vcs")
	return &l
}

var _ SourceControl = (*Git)(nil)
