package core

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/macstage/pkg/bootstrap"
	"github.com/arthur-debert/macstage/pkg/config"
	"github.com/arthur-debert/macstage/pkg/defaults"
	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/arthur-debert/macstage/pkg/homebrew"
	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/arthur-debert/macstage/pkg/paths"
	"github.com/arthur-debert/macstage/pkg/shell"
	"github.com/arthur-debert/macstage/pkg/stage"
	"github.com/arthur-debert/macstage/pkg/vcs"
	"github.com/rs/zerolog"
)

// Source names inside the home directory
const (
	GitConfigFile  = ".gitconfig"
	StagedGitFile  = "gitconfig"
	ConfigTreeName = ".config"
)

// Options is the immutable input of a run
type Options struct {
	BasePath  string
	Workspace string
	Bootstrap bool

	Config *config.Config
	Home   string
	Shell  shell.Shell

	FS       filesystem.FS
	Store    defaults.PreferenceStore
	Packages homebrew.PackageManager
	VCS      vcs.SourceControl

	// Progress receives each result as it is recorded
	Progress func(StepResult)
}

type run struct {
	opts   Options
	cfg    *config.Config
	layout paths.Layout
	stager *stage.Stager
	result *Result
	logger zerolog.Logger
}

// Run stages a snapshot of the machine into the layout at BasePath. It only
// fails for a layout that cannot be resolved or created, or an FS other than
// the OS filesystem.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("core.run")
	done := logging.LogOperationStart(logger, "stage")
	defer done()

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	stager, err := stage.New(opts.FS)
	if err != nil {
		return nil, err
	}

	layout, err := paths.Resolve(opts.BasePath, opts.Workspace, Names(cfg))
	if err != nil {
		return nil, err
	}
	if err := layout.Materialize(opts.FS); err != nil {
		return nil, err
	}

	r := &run{
		opts:   opts,
		cfg:    cfg,
		layout: layout,
		stager: stager,
		result: &Result{Layout: layout, Shell: opts.Shell},
		logger: logger,
	}
	r.record(StepLayout, StatusDone, "workspace ready", layout.Root)

	steps := []func(context.Context){
		r.exportManifest,
		r.capturePreferences,
		r.stageShell,
		r.stageGit,
		r.stageConfig,
		r.writeScripts,
	}
	if opts.Bootstrap {
		steps = append(steps, r.stageTool)
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return r.result, errors.Wrap(err, errors.ErrInternal, "staging cancelled")
		}
		step(ctx)
	}

	logger.Info().
		Str("root", layout.Root).
		Int("warnings", r.result.Warnings()).
		Msg("Staging complete")
	return r.result, nil
}

// Names maps configuration onto layout file names
func Names(cfg *config.Config) paths.Names {
	return paths.Names{
		Manifest: cfg.Packages.Manifest,
		Document: cfg.Capture.Document,
		Tool:     cfg.Bootstrap.Dir,
	}
}

func (r *run) record(step Step, status Status, message, path string) {
	res := StepResult{Step: step, Status: status, Message: message, Path: path}
	r.result.Steps = append(r.result.Steps, res)

	event := r.logger.Debug()
	if status == StatusWarning {
		event = r.logger.Warn()
	}
	event.Str("step", string(step)).Str("status", string(status)).Str("path", path).Msg(message)

	if r.opts.Progress != nil {
		r.opts.Progress(res)
	}
}

func (r *run) warn(step Step, err error, path string) {
	r.record(step, StatusWarning, err.Error(), path)
}

func (r *run) exportManifest(ctx context.Context) {
	path := r.layout.Manifest
	pm := r.opts.Packages

	switch {
	case pm == nil || r.cfg.Packages.Manager != pm.Name():
		r.record(StepManifest, StatusSkipped,
			fmt.Sprintf("package manager %q is not supported, Brewfile not created", r.cfg.Packages.Manager), path)
		return
	case !pm.Available():
		r.record(StepManifest, StatusSkipped,
			fmt.Sprintf("%s not found, Brewfile not created", pm.Name()), path)
		return
	case filesystem.Exists(r.opts.FS, path):
		r.record(StepManifest, StatusSkipped, "Brewfile already exists, left unchanged", path)
		return
	}

	if err := pm.ExportManifest(ctx, path); err != nil {
		r.warn(StepManifest, err, path)
		return
	}
	r.record(StepManifest, StatusDone, "exported installed packages", path)
}

func (r *run) capturePreferences(ctx context.Context) {
	path := r.layout.Document
	if r.opts.Store == nil {
		r.warn(StepPreferences, errors.New(errors.ErrToolMissing, "no preference store available"), path)
		return
	}

	doc, err := defaults.Capture(ctx, defaults.CaptureOptions{
		Store:       r.opts.Store,
		FS:          r.opts.FS,
		Builtins:    r.cfg.Capture.BuiltinDomains,
		AppDirs:     r.cfg.Capture.AppDirs,
		Match:       r.cfg.Capture.Match,
		Destination: path,
	})
	if err != nil {
		r.warn(StepPreferences, err, path)
		return
	}
	r.result.Document = doc
	r.record(StepPreferences, StatusDone,
		fmt.Sprintf("captured %d domains, %d settings", len(doc.Groups), doc.EntryCount()), path)
}

func (r *run) stageShell(ctx context.Context) {
	if !r.opts.Shell.Supported() {
		r.record(StepShell, StatusSkipped, "no supported shell detected", r.layout.ShellDir)
		return
	}
	for _, f := range r.opts.Shell.Files(r.opts.Home) {
		r.stageFile(ctx, StepShell, f.Source, filepath.Join(r.layout.ShellDir, f.Name))
	}
}

func (r *run) stageGit(ctx context.Context) {
	r.stageFile(ctx, StepGit,
		filepath.Join(r.opts.Home, GitConfigFile),
		filepath.Join(r.layout.GitDir, StagedGitFile))
}

func (r *run) stageFile(ctx context.Context, step Step, src, dst string) {
	outcome, err := r.stager.StageFile(ctx, src, dst)
	if err != nil {
		r.warn(step, err, dst)
		return
	}
	switch outcome {
	case stage.Staged:
		r.record(step, StatusDone, fmt.Sprintf("staged %s", filepath.Base(src)), dst)
	case stage.SkippedExists:
		r.record(step, StatusSkipped, fmt.Sprintf("%s already staged", filepath.Base(dst)), dst)
	default:
		r.record(step, StatusSkipped, fmt.Sprintf("%s not found", src), dst)
	}
}

func (r *run) stageConfig(ctx context.Context) {
	src := filepath.Join(r.opts.Home, ConfigTreeName)
	dst := r.layout.ConfigDir

	tree, err := r.stager.StageTree(ctx, src, dst, r.layout.Base)
	if err != nil {
		r.warn(StepConfig, err, dst)
		return
	}
	switch tree.Outcome {
	case stage.Staged:
		msg := fmt.Sprintf("copied %d files, %d links", tree.Files, tree.Links)
		if len(tree.Skipped) > 0 {
			msg += fmt.Sprintf(", %d unreadable or special entries skipped", len(tree.Skipped))
		}
		r.record(StepConfig, StatusDone, msg, dst)
	case stage.SkippedExists:
		r.record(StepConfig, StatusSkipped, "config already staged", dst)
	default:
		r.record(StepConfig, StatusSkipped, fmt.Sprintf("%s not found", src), dst)
	}
}

func (r *run) writeScripts(ctx context.Context) {
	for _, s := range []struct {
		path    string
		content string
	}{
		{r.layout.BeforeScript(), beforeScript},
		{r.layout.AfterScript(), afterScript},
	} {
		outcome, err := r.stager.WriteScript(ctx, s.path, s.content)
		if err != nil {
			r.warn(StepScripts, err, s.path)
			continue
		}
		if outcome == stage.SkippedExists {
			r.record(StepScripts, StatusSkipped, fmt.Sprintf("%s already exists", filepath.Base(s.path)), s.path)
			continue
		}
		r.record(StepScripts, StatusDone, fmt.Sprintf("created %s", filepath.Base(s.path)), s.path)
	}
}

func (r *run) stageTool(ctx context.Context) {
	dir := r.layout.ToolDir
	if r.opts.VCS == nil {
		r.warn(StepBootstrap, errors.New(errors.ErrToolMissing, "no source control available"), dir)
		return
	}

	res, err := bootstrap.Stage(ctx, bootstrap.Options{
		Repository:   r.cfg.Bootstrap.Repository,
		Dir:          dir,
		PinLatestTag: r.cfg.Bootstrap.PinLatestTag,
		VCS:          r.opts.VCS,
		FS:           r.opts.FS,
	})
	if err != nil {
		r.warn(StepBootstrap, err, dir)
		return
	}
	r.result.Bootstrap = res

	msg := fmt.Sprintf("zero.sh %s", res.Action)
	switch {
	case res.Tag != "":
		msg += fmt.Sprintf(" at %s", res.Tag)
	case res.Notice != "":
		msg += ", " + res.Notice
	}
	r.record(StepBootstrap, StatusDone, msg, dir)
}
