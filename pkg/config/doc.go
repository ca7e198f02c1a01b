/*
Package config loads and validates logmigrate settings.

	            +-------------+
	            |   Config    |
	            | (Defaults)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+-----+  +---+------+
	|   YAML   |  |   JSON   |  |   HCL    |
	|  Parser  |  |  Parser  |  |  Parser  |
	+----------+  +----------+  +----------+

🎯 Purpose:
- Provides the built-in migration defaults (target files, import line, backup suffix)
- Reads an optional config file that narrows or adjusts those defaults
- Validates the merged result before any file is touched

🔄 Flow:
1. Pick a parser by file extension (Register / GetParser)
2. Decode with unknown keys rejected
3. Fill unset fields from the defaults
4. Validate

⚠️ The target file list is compiled in. Config files can exclude entries
with doublestar globs but can never add new ones; a "files" key is rejected
as an unknown field by every parser.

🔍 Example:

	cfg, err := config.Load(ctx, afero.NewOsFs(), "logmigrate.yaml")
	if err != nil {
		return err
	}
	fmt.Println(cfg)
*/
package config
