package stage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/rs/zerolog"
)

// ScriptMode is the permission of generated placeholder scripts
const ScriptMode = 0755

// Outcome is what a staging call did
type Outcome int

const (
	Staged Outcome = iota
	SkippedMissing
	SkippedExists
)

// String returns a short description of the outcome
func (o Outcome) String() string {
	switch o {
	case Staged:
		return "staged"
	case SkippedMissing:
		return "source missing"
	case SkippedExists:
		return "already staged"
	default:
		return "unknown"
	}
}

// TreeResult describes a directory copy
type TreeResult struct {
	Outcome Outcome
	Files   int
	Links   int
	Skipped []string
}

// Stager copies files into the layout without overwriting anything
type Stager struct {
	fs     filesystem.FS
	exec   *executor
	logger zerolog.Logger
}

// New returns a Stager that inspects paths through fsys. Copies always run
// through synthfs on the OS filesystem, so fsys must be filesystem.NewOS():
// checks and writes would otherwise land on different filesystems.
func New(fsys filesystem.FS) (*Stager, error) {
	if fsys == nil || !filesystem.IsOS(fsys) {
		return nil, errors.New(errors.ErrInvalidInput, "stager requires the OS filesystem")
	}
	return &Stager{
		fs:     fsys,
		exec:   newExecutor(),
		logger: logging.GetLogger("stage"),
	}, nil
}

// StageFile copies src to dst. Symlinked sources are followed.
func (s *Stager) StageFile(ctx context.Context, src, dst string) (Outcome, error) {
	info, err := s.fs.Stat(src)
	if err != nil || info.IsDir() {
		s.logger.Debug().Str("src", src).Msg("Source file missing")
		return SkippedMissing, nil
	}
	if filesystem.Exists(s.fs, dst) {
		s.logger.Debug().Str("dst", dst).Msg("Destination already staged")
		return SkippedExists, nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return SkippedMissing, errors.Wrap(err, errors.ErrDirCreate, "failed to create parent directory").
			WithDetail("path", filepath.Dir(dst))
	}

	b := newBatch()
	b.copy(src, dst)
	if err := s.exec.run(ctx, b); err != nil {
		return SkippedMissing, errors.Wrapf(err, errors.ErrFileCopy, "failed to stage %s", src)
	}
	if err := s.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		s.logger.Debug().Err(err).Str("dst", dst).Msg("Cannot preserve mode")
	}

	s.logger.Info().Str("src", src).Str("dst", dst).Msg("Staged file")
	return Staged, nil
}

// StageTree copies the contents of src into dst. The copy is skipped when
// dst already has entries. Paths under any of exclude are never visited,
// which keeps a staging directory inside src from copying itself. An exclude
// that contains src itself prunes nothing.
func (s *Stager) StageTree(ctx context.Context, src, dst string, exclude ...string) (TreeResult, error) {
	if !filesystem.IsDir(s.fs, src) {
		return TreeResult{Outcome: SkippedMissing}, nil
	}
	if !filesystem.IsEmptyDir(s.fs, dst) {
		return TreeResult{Outcome: SkippedExists}, nil
	}

	src, dst = filepath.Clean(src), filepath.Clean(dst)
	var excluded []string
	for _, e := range append([]string{dst}, exclude...) {
		if e == "" {
			continue
		}
		e = filepath.Clean(e)
		if within(src, e) {
			s.logger.Debug().Str("exclude", e).Str("src", src).Msg("Exclude contains source, ignoring")
			continue
		}
		excluded = append(excluded, e)
	}

	w := &treeWalker{stager: s, excluded: excluded, batch: newBatch()}
	if err := w.walk(src, dst); err != nil {
		return TreeResult{Outcome: SkippedMissing}, err
	}
	if err := s.exec.run(ctx, w.batch); err != nil {
		return TreeResult{Outcome: SkippedMissing}, errors.Wrapf(err, errors.ErrFileCopy, "failed to stage %s", src)
	}
	for _, m := range w.modes {
		if err := s.fs.Chmod(m.path, m.mode); err != nil {
			s.logger.Debug().Err(err).Str("path", m.path).Msg("Cannot preserve mode")
		}
	}

	s.logger.Info().
		Str("src", src).
		Str("dst", dst).
		Int("files", w.result.Files).
		Int("links", w.result.Links).
		Msg("Staged directory")
	w.result.Outcome = Staged
	return w.result, nil
}

type pendingMode struct {
	path string
	mode fs.FileMode
}

type treeWalker struct {
	stager   *Stager
	excluded []string
	batch    *batch
	modes    []pendingMode
	result   TreeResult
}

func (w *treeWalker) isExcluded(path string) bool {
	for _, e := range w.excluded {
		if within(path, e) {
			return true
		}
	}
	return false
}

// within reports whether path is dir or lies below it
func within(path, dir string) bool {
	if dir == string(os.PathSeparator) {
		return true
	}
	return path == dir || strings.HasPrefix(path, dir+string(os.PathSeparator))
}

func (w *treeWalker) walk(src, dst string) error {
	fsys := w.stager.fs
	if err := fsys.MkdirAll(dst, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create directory").WithDetail("path", dst)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		w.stager.logger.Warn().Err(err).Str("dir", src).Msg("Skipping unreadable directory")
		w.result.Skipped = append(w.result.Skipped, src)
		return nil
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if w.isExcluded(from) {
			w.stager.logger.Debug().Str("path", from).Msg("Excluded from copy")
			continue
		}

		info, err := fsys.Lstat(from)
		if err != nil {
			w.result.Skipped = append(w.result.Skipped, from)
			continue
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := fsys.Readlink(from)
			if err != nil {
				w.result.Skipped = append(w.result.Skipped, from)
				continue
			}
			w.batch.symlink(target, to)
			w.result.Links++
		case info.IsDir():
			if err := w.walk(from, to); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			w.batch.copy(from, to)
			w.modes = append(w.modes, pendingMode{path: to, mode: info.Mode().Perm()})
			w.result.Files++
		default:
			// sockets, fifos and devices
			w.result.Skipped = append(w.result.Skipped, from)
		}
	}
	return nil
}

// WriteScript creates an executable file with content unless path exists
func (s *Stager) WriteScript(ctx context.Context, path, content string) (Outcome, error) {
	if filesystem.Exists(s.fs, path) {
		return SkippedExists, nil
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return SkippedMissing, errors.Wrap(err, errors.ErrDirCreate, "failed to create script directory").
			WithDetail("path", filepath.Dir(path))
	}

	b := newBatch()
	b.write(path, []byte(content), ScriptMode)
	if err := s.exec.run(ctx, b); err != nil {
		return SkippedMissing, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	// the pipeline honours the process umask
	if err := s.fs.Chmod(path, ScriptMode); err != nil {
		return Staged, errors.Wrapf(err, errors.ErrFileWrite, "failed to mark %s executable", path)
	}

	s.logger.Info().Str("path", path).Msg("Wrote script")
	return Staged, nil
}
