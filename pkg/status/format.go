package status

import (
	"fmt"
)

// FileFormatter defines how file outcomes are described on the console
type FileFormatter interface {
	// FormatResult returns the status symbol and the message for a result
	FormatResult(res FileResult) (symbol string, msg string)

	// FormatSummary formats the closing count line
	FormatSummary(processed int, dryRun bool) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatResult formats one result, one line per file
func (f *DefaultFileFormatter) FormatResult(res FileResult) (string, string) {
	switch res.Status {
	case StatusChanged:
		if res.DryRun {
			return "✓", fmt.Sprintf("Would process: %s", res.Path)
		}
		return "✓", fmt.Sprintf("Processed: %s", res.Path)
	case StatusUnchanged:
		return "-", fmt.Sprintf("No changes: %s", res.Path)
	case StatusNotFound:
		return "⚠ ", fmt.Sprintf("File not found: %s", res.Path)
	case StatusError:
		return "✗", fmt.Sprintf("Error processing %s: %v", res.AbsPath, res.Error)
	case StatusSkipped:
		return "-", fmt.Sprintf("Skipped: %s (excluded by %s)", res.Path, res.Pattern)
	case StatusRestored:
		return "⟳", fmt.Sprintf("Restored: %s", res.Path)
	case StatusNoBackup:
		return "-", fmt.Sprintf("No backup: %s", res.Path)
	default:
		return "?", res.Path
	}
}

// FormatSummary formats the processed count
func (f *DefaultFileFormatter) FormatSummary(processed int, dryRun bool) string {
	if dryRun {
		return fmt.Sprintf("Dry run complete! %d files would change", processed)
	}
	return fmt.Sprintf("Migration complete! Processed %d files", processed)
}
