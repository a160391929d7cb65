// Package bootstrap stages the zero.sh tool next to the captured workspace
// so a new machine can apply it straight from the staging directory.
package bootstrap

import (
	"context"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/arthur-debert/macstage/pkg/vcs"
)

// Action is how the working copy was obtained
type Action string

const (
	Cloned  Action = "cloned"
	Updated Action = "updated"
)

// Options configures Stage
type Options struct {
	Repository   string
	Dir          string
	PinLatestTag bool
	VCS          vcs.SourceControl
	FS           filesystem.FS
}

// Result reports what Stage did
type Result struct {
	Action Action
	Dir    string
	// Tag is the checked out tag, empty when not pinned
	Tag string
	// Notice explains a pin that could not be applied
	Notice string
}

// Stage clones the repository into Dir, or updates the working copy that is
// already there, then optionally checks out the most recent tag
func Stage(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("bootstrap")
	if opts.VCS == nil || opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "bootstrap requires source control and a filesystem")
	}
	if opts.Repository == "" || opts.Dir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "bootstrap requires a repository and a directory")
	}

	result := &Result{Dir: opts.Dir}

	switch {
	case opts.VCS.IsRepository(opts.Dir):
		logger.Info().Str("dir", opts.Dir).Msg("Updating tool checkout")
		if err := opts.VCS.Pull(ctx, opts.Dir); err != nil {
			return nil, err
		}
		result.Action = Updated
	case filesystem.IsEmptyDir(opts.FS, opts.Dir):
		logger.Info().Str("url", opts.Repository).Str("dir", opts.Dir).Msg("Cloning tool")
		if err := opts.VCS.Clone(ctx, opts.Repository, opts.Dir); err != nil {
			return nil, err
		}
		result.Action = Cloned
	default:
		return nil, errors.New(errors.ErrAlreadyExists, "tool directory exists and is not a repository").
			WithDetail("dir", opts.Dir)
	}

	if !opts.PinLatestTag {
		return result, nil
	}

	tag, err := opts.VCS.LatestTag(ctx, opts.Dir)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			result.Notice = "no release tags, staying on the default branch"
			return result, nil
		}
		return nil, err
	}
	if err := opts.VCS.Checkout(ctx, opts.Dir, tag); err != nil {
		return nil, err
	}
	result.Tag = tag

	logger.Info().Str("tag", tag).Str("action", string(result.Action)).Msg("Tool staged")
	return result, nil
}
