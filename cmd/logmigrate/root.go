package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/oklog/ulid/v2"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/logmigrate/cmd/logmigrate/commands"
	"github.com/walteh/logmigrate/cmd/logmigrate/opts"
	"github.com/walteh/logmigrate/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// commands carrying this annotation run without loading a config
const skipConfigAnnotation = "logmigrate/skip-config"

type rootFlags struct {
	configFile string
	debug      bool
	projectDir string
	dryRun     bool
	noColor    bool
}

// newRootCmd builds the command tree; running it with no subcommand migrates
func newRootCmd(fs afero.Fs, out io.Writer) *cobra.Command {
	flags := &rootFlags{}
	ro := &opts.RootOpts{Fs: fs, Out: out}

	cmd := &cobra.Command{
		Use:   "logmigrate",
		Short: "Rewrite console calls into structured logger calls",
		Long: `logmigrate rewrites console.log/error/warn calls in a fixed list of
TypeScript service modules into logger.debug/info/warn/error calls.
It will:
1. Add the logger import after the last import line when it is missing
2. Apply the rewrite rules in order (see "logmigrate rules")
3. Keep a backup of every changed file next to it`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.noColor {
				color.NoColor = true
				pterm.DisableColor()
			}

			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), flags.debug)
			cmd.SetContext(ctx)

			if cmd.Annotations[skipConfigAnnotation] != "" {
				return nil
			}
			return flags.resolve(ctx, cmd, ro)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunMigration(cmd.Context(), ro)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(commands.NewRunCmd(ro))
	cmd.AddCommand(commands.NewRestoreCmd(ro))
	cmd.AddCommand(withoutConfig(commands.NewRulesCmd(ro)))
	cmd.AddCommand(withoutConfig(newVersionCmd(ro)))

	return cmd
}

func withoutConfig(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[skipConfigAnnotation] = "true"
	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (.yaml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVarP(&flags.projectDir, "project", "p", "", "project directory (default: current directory)")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "show what would change without writing")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
}

// resolve layers defaults, the config file and explicitly set flags
func (f *rootFlags) resolve(ctx context.Context, cmd *cobra.Command, ro *opts.RootOpts) error {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.Load(ctx, ro.Fs, f.configFile)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("project") {
		cfg.ProjectDir = f.projectDir
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}

	abs, err := filepath.Abs(cfg.ProjectDir)
	if err != nil {
		return errors.Errorf("getting absolute project path: %w", err)
	}
	cfg.ProjectDir = abs

	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration resolved")
	ro.Config = cfg
	return nil
}

// setupLogging configures zerolog based on flags and tags the run with an id
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	// status lines already go to stdout, so only failures reach stderr by default
	level := zerolog.ErrorLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", ulid.Make().String()).
		Logger()

	return logger.WithContext(ctx)
}

func newVersionCmd(ro *opts.RootOpts) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information and the bundled rewrite rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := WriteVersion(ro.Out, GetVersionInfo(), asJSON); err != nil {
				return errors.Errorf("writing version: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
