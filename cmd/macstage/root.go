package macstage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/macstage/internal/version"
	"github.com/arthur-debert/macstage/pkg/config"
	"github.com/arthur-debert/macstage/pkg/core"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/arthur-debert/macstage/pkg/paths"
	"github.com/arthur-debert/macstage/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are shared by every command
type globalOptions struct {
	verbosity  int
	configFile string
	format     string
}

// stageOptions are the root command's own flags
type stageOptions struct {
	path      string
	workspace string
	bootstrap bool
}

// NewRootCmd creates the root command wired to the real system
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(DefaultEnv())
}

// NewRootCmdWithEnv creates the root command with env's collaborators
func NewRootCmdWithEnv(env Env) *cobra.Command {
	initTemplateFormatting()

	var (
		global globalOptions
		opts   stageOptions
	)

	rootCmd := &cobra.Command{
		Use:     "macstage",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(global.verbosity, env.ErrOut)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(cmd, args, env, global, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
	}

	rootCmd.SetOut(env.Out)
	rootCmd.SetErr(env.ErrOut)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().CountVarP(&global.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&global.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&global.format, "format", "auto", MsgFlagFormat)

	rootCmd.Flags().StringVarP(&opts.path, "path", "p", "", MsgFlagPath)
	rootCmd.Flags().StringVarP(&opts.workspace, "workspace", "w", "", MsgFlagWorkspace)
	rootCmd.Flags().BoolVarP(&opts.bootstrap, "bootstrap", "b", false, MsgFlagBootstrap)

	rootCmd.AddCommand(newDomainsCmd(env, &global))
	rootCmd.AddCommand(newGenConfigCmd(env, &global, &opts))
	rootCmd.AddCommand(newVersionCmd(env))

	return rootCmd
}

// Execute runs the command tree on args, warning about flags it ignores
func Execute(cmd *cobra.Command, args []string) error {
	errOut := cmd.ErrOrStderr()
	target, _, err := cmd.Find(args)
	if err != nil || target == nil {
		target = cmd
	}
	reporter := ui.NewReporter(cmd.OutOrStdout(), errOut, ui.FormatText)
	for _, flag := range unknownFlags(target, args) {
		reporter.Warn(fmt.Sprintf(MsgWarnUnknownFlag, flag))
	}

	cmd.SetArgs(args)
	return cmd.Execute()
}

func loadConfig(cmd *cobra.Command, global globalOptions, opts *stageOptions) (*config.Config, error) {
	overrides := map[string]interface{}{}
	flags := cmd.Root().Flags()
	if flags.Changed("path") {
		overrides["staging.base_path"] = opts.path
	}
	if flags.Changed("workspace") {
		overrides["staging.workspace"] = opts.workspace
	}
	if flags.Changed("bootstrap") {
		overrides["staging.bootstrap"] = opts.bootstrap
	}
	return config.Load(config.LoadOptions{ConfigFile: global.configFile, Overrides: overrides})
}

func newReporter(env Env, global globalOptions) (*ui.Reporter, error) {
	format, err := ui.ParseFormat(global.format)
	if err != nil {
		return nil, err
	}
	return ui.NewReporter(env.Out, env.ErrOut, format), nil
}

// requireValue rejects a value that is really the next flag ("-p -w x")
func requireValue(cmd *cobra.Command, name, value string) error {
	if cmd.Flags().Changed(name) && (strings.TrimSpace(value) == "" || strings.HasPrefix(value, "-")) {
		return fmt.Errorf(MsgErrMissingValue, name)
	}
	return nil
}

func runStage(cmd *cobra.Command, args []string, env Env, global globalOptions, opts stageOptions) error {
	logger := logging.GetLogger("cmd.stage")

	if err := requireValue(cmd, "path", opts.path); err != nil {
		return err
	}
	if err := requireValue(cmd, "workspace", opts.workspace); err != nil {
		return err
	}

	reporter, err := newReporter(env, global)
	if err != nil {
		return err
	}
	for _, arg := range strayArgs(cmd, args) {
		reporter.Warn(fmt.Sprintf(MsgWarnStrayArg, arg))
	}

	cfg, err := loadConfig(cmd, global, &opts)
	if err != nil {
		return err
	}
	logger.Debug().Stringer("config", cfg).Msg("Configuration loaded")
	if err := paths.ValidateWorkspace(cfg.Staging.Workspace); err != nil {
		return err
	}

	base := cfg.Staging.BasePath
	if !cmd.Flags().Changed("path") {
		if env.Interactive != nil && env.Interactive() && env.Prompter != nil {
			answer, err := env.Prompter.Ask(MsgPromptBasePath, base)
			if err != nil {
				return fmt.Errorf(MsgErrPromptBasePath, err)
			}
			base = answer
		} else {
			reporter.Notice(fmt.Sprintf(MsgNoticeDefaultBase, base))
		}
	}

	home, err := env.Home()
	if err != nil {
		return fmt.Errorf(MsgErrHomeDir, err)
	}

	sh := env.DetectShell()
	logger.Debug().Str("shell", sh.String()).Str("home", home).Msg("Environment detected")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reporter.Header(fmt.Sprintf(MsgRunHeader, reporter.Path(paths.ExpandHome(base))))
	result, err := core.Run(ctx, core.Options{
		BasePath:  base,
		Workspace: cfg.Staging.Workspace,
		Bootstrap: cfg.Staging.Bootstrap,
		Config:    cfg,
		Home:      home,
		Shell:     sh,
		FS:        env.FS,
		Store:     env.Store,
		Packages:  env.Packages,
		VCS:       env.VCS,
		Progress: func(r core.StepResult) {
			reporter.Step(stepKind(r.Status), string(r.Step), r.Message)
		},
	})
	if err != nil {
		return err
	}

	if reporter.Format() == ui.FormatTerminal {
		reporter.Markdown(result.Summary())
	}
	return nil
}

func stepKind(s core.Status) ui.Kind {
	switch s {
	case core.StatusDone:
		return ui.KindDone
	case core.StatusSkipped:
		return ui.KindSkipped
	case core.StatusWarning:
		return ui.KindWarning
	default:
		return ui.KindInfo
	}
}

func newDomainsCmd(env Env, global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: MsgDomainsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{ConfigFile: global.configFile})
			if err != nil {
				return err
			}
			for _, d := range core.Domains(cmd.Context(), cfg, env.Store, env.FS) {
				_, _ = fmt.Fprintf(env.Out, MsgDomainItem, d.ID, d.Provenance)
			}
			return nil
		},
	}
}

func newGenConfigCmd(env Env, global *globalOptions, opts *stageOptions) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *global, opts)
			if err != nil {
				return err
			}
			data, err := config.GenerateTOML(cfg)
			if err != nil {
				return fmt.Errorf(MsgErrGenerateConfig, err)
			}
			if !write {
				_, err = env.Out.Write(data)
				return err
			}

			path := config.DefaultConfigPath()
			if filesystem.Exists(env.FS, path) {
				return fmt.Errorf(MsgErrConfigExists, path)
			}
			if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf(MsgErrWriteConfigFile, path, err)
			}
			if err := env.FS.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf(MsgErrWriteConfigFile, path, err)
			}
			_, _ = fmt.Fprintf(env.Out, MsgConfigWritten, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(env.Out, version.String())
		},
	}
}
