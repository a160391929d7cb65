package stage

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

var opCounter uint64

// batch accumulates synthfs operations for one staging call
type batch struct {
	sfs *synthfs.SynthFS
	ops []synthfs.Operation
}

func newBatch() *batch {
	return &batch{sfs: synthfs.New()}
}

func opID(kind, path string) string {
	return fmt.Sprintf("%s_%s_%d", kind, filepath.Base(path), atomic.AddUint64(&opCounter, 1))
}

func (b *batch) copy(src, dst string) {
	b.ops = append(b.ops, b.sfs.CopyWithID(opID("copy", dst), src, dst))
}

func (b *batch) symlink(target, link string) {
	b.ops = append(b.ops, b.sfs.CreateSymlinkWithID(opID("link", link), target, link))
}

func (b *batch) write(path string, content []byte, mode fs.FileMode) {
	b.ops = append(b.ops, b.sfs.CreateFileWithID(opID("write", path), path, content, mode))
}

func (b *batch) len() int {
	return len(b.ops)
}

// executor runs batches against the real filesystem using absolute paths
type executor struct {
	fs       filesystem.FullFileSystem
	rollback bool
	logger   zerolog.Logger
}

func newExecutor() *executor {
	osfs := filesystem.NewOSFileSystem("/")
	return &executor{
		fs:       synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
		rollback: true,
		logger:   logging.GetLogger("stage.executor"),
	}
}

func (e *executor) run(ctx context.Context, b *batch) error {
	if b.len() == 0 {
		return nil
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = e.rollback

	e.logger.Debug().
		Int("operationCount", b.len()).
		Bool("rollbackEnabled", e.rollback).
		Msg("Executing synthfs operations")

	if _, err := synthfs.RunWithOptions(ctx, e.fs, options, b.ops...); err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, "failed to stage files")
	}
	return nil
}
