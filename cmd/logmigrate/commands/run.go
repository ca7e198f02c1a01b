package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/logmigrate/cmd/logmigrate/opts"
	"github.com/walteh/logmigrate/pkg/log"
	"github.com/walteh/logmigrate/pkg/operation"
	"github.com/walteh/logmigrate/pkg/status"
	"github.com/walteh/logmigrate/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Migrate console calls to the logger",
		Long: `Run migrates every file of the target list.
For each file it will:
1. Skip it when it matches an exclude pattern
2. Report it when it does not exist
3. Insert the logger import and apply the rewrite rules
4. Write a backup and the rewritten file when anything changed

Errors on one file never stop the others.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMigration(cmd.Context(), opts)
		},
	}

	return cmd
}

// RunMigration executes the migration pass configured by opts
func RunMigration(ctx context.Context, opts *opts.RootOpts) error {
	cfg := opts.Config

	reporter := log.New(ctx, opts.Out, log.Options{
		VerifyCommand: cfg.VerifyCommand,
		DryRun:        cfg.DryRun,
	})

	op, err := operation.NewMigrateOperation(operation.Options{
		Files:    cfg.Files,
		Exclude:  cfg.Exclude,
		Manager:  status.New(opts.Fs, cfg.ProjectDir, cfg.BackupSuffix),
		Reporter: reporter,
		Inserter: text.NewImportInserter(cfg.ImportLine),
		Rewriter: text.NewDefaultRewriter(),
		DryRun:   cfg.DryRun,
	})
	if err != nil {
		return errors.Errorf("creating migrate operation: %w", err)
	}

	if _, err := operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op); err != nil {
		return errors.Errorf("running migration: %w", err)
	}

	return nil
}
