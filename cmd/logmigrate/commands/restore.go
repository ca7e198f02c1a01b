package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/logmigrate/cmd/logmigrate/opts"
	"github.com/walteh/logmigrate/pkg/log"
	"github.com/walteh/logmigrate/pkg/operation"
	"github.com/walteh/logmigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Undo a migration from its backups",
		Long: `Restore puts the backup of every target file back in place and removes
the backup. Files without a backup are left alone. --dry-run is ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := opts.Config

			op, err := operation.NewRestoreOperation(operation.Options{
				Files:    cfg.Files,
				Manager:  status.New(opts.Fs, cfg.ProjectDir, cfg.BackupSuffix),
				Reporter: log.New(ctx, opts.Out, log.Options{}),
			})
			if err != nil {
				return errors.Errorf("creating restore operation: %w", err)
			}

			if _, err := operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op); err != nil {
				return errors.Errorf("running restore: %w", err)
			}

			return nil
		},
	}

	return cmd
}
