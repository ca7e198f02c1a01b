/*
Package status owns file access and per-file outcomes for a migration.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|  Manager  |           | Formatter|
	| (afero)   |           | (lines)  |
	+-----------+           +----------+

🎯 Purpose:
- Reads and writes target files through an afero.Fs rooted at the project dir
- Writes the backup of a file before the file itself is replaced
- Restores files from their backups
- Describes each outcome (changed, unchanged, not found, error) as a status line

🔄 Flow:
1. operation resolves a relative path through the Manager
2. Manager reads, backs up and atomically writes
3. the resulting FileResult is formatted for the console by the log package

💾 Backup naming: the last extension of the file is replaced by the backup
suffix, so src/lib/task-service.ts becomes src/lib/task-service.ts.backup
with the default ".ts.backup" suffix.
*/
package status
