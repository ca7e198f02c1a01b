/*
Package operation implements the migration and restore passes over the target file list.

	+-------------+
	|  Operation  |
	| (file list) |
	+------+------+
	       |
	+------+------+
	|  Processor  |
	| (one file)  |
	+------+------+

🔄 Migrate flow, per file and strictly in list order:
1. Skip files matching an exclude pattern
2. Report files that do not exist
3. Read, insert the logger import, apply the rewrite rules
4. Unchanged content ends there, with no backup
5. Otherwise write the backup, then replace the file atomically

⟳ Restore flow: copy each backup over its file and remove the backup.

⚡ Errors on one file are reported on its result and never stop the pass.
File I/O goes through status.Manager, text rules through the text package,
and output through a Reporter.

🔍 Example:

	op, err := operation.NewMigrateOperation(operation.Options{
		Files:    cfg.Files,
		Exclude:  cfg.Exclude,
		Manager:  status.New(afero.NewOsFs(), cfg.ProjectDir, cfg.BackupSuffix),
		Reporter: log.New(ctx, os.Stdout, log.Options{}),
	})
	summary, err := operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op)
*/
package operation
