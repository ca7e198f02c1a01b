// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/logmigrate/pkg/status"
)

// 🎨 Display configuration
const (
	patchIndent = 4 // spaces to indent dry-run patch lines
)

// 🔧 Options configures the closing lines of a run
type Options struct {
	// VerifyCommand is suggested once the migration completes
	VerifyCommand string
	// DryRun switches the wording to "would change"
	DryRun bool
}

// 🎯 Logger prints one status line per file and mirrors it to zerolog
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.FileFormatter
	opts      Options
	mu        sync.Mutex
}

// 🏭 New creates a new console logger using the zerolog logger carried by ctx
func New(ctx context.Context, console io.Writer, opts Options) *Logger {
	return &Logger{
		zlog:      *zerolog.Ctx(ctx),
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
		opts:      opts,
	}
}

// 📝 Start prints the migration banner
func (l *Logger) Start(ctx context.Context, projectDir string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, color.New(color.Bold).Sprint("Starting console → logger migration..."))
	fmt.Fprintf(l.console, "Project: %s\n\n", color.New(color.FgCyan).Sprint(projectDir))

	l.zlog.Info().Str("project", projectDir).Bool("dry_run", l.opts.DryRun).Msg("starting migration")
}

// 📝 StartRestore prints the restore banner
func (l *Logger) StartRestore(ctx context.Context, projectDir string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, color.New(color.Bold).Sprint("Restoring migration backups..."))
	fmt.Fprintf(l.console, "Project: %s\n\n", color.New(color.FgCyan).Sprint(projectDir))

	l.zlog.Info().Str("project", projectDir).Msg("starting restore")
}

func symbolColor(s status.FileStatus) *color.Color {
	switch s {
	case status.StatusChanged:
		return color.New(color.FgGreen)
	case status.StatusRestored:
		return color.New(color.FgBlue)
	case status.StatusNotFound:
		return color.New(color.FgYellow)
	case status.StatusError:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

// 📝 LogFileResult prints the status line for one file
func (l *Logger) LogFileResult(ctx context.Context, res status.FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	symbol, msg := l.formatter.FormatResult(res)
	fmt.Fprintf(l.console, "%s %s\n", symbolColor(res.Status).Sprint(symbol), msg)

	if res.Patch != "" {
		l.writePatch(res.Patch)
	}

	var evt *zerolog.Event
	switch res.Status {
	case status.StatusError:
		evt = l.zlog.Error().Err(res.Error)
	case status.StatusNotFound:
		evt = l.zlog.Warn()
	default:
		evt = l.zlog.Info()
	}

	evt.Str("file", res.Path).
		Str("status", res.Status.String()).
		Int("rewrites", res.Rewrites()).
		Bool("import_added", res.ImportAdded).
		Bool("dry_run", res.DryRun).
		Msg("file processed")
}

func (l *Logger) writePatch(patch string) {
	indent := strings.Repeat(" ", patchIndent)
	for _, line := range strings.Split(strings.TrimSuffix(patch, "\n"), "\n") {
		c := color.New(color.Faint)
		switch {
		case strings.HasPrefix(line, "+"):
			c = color.New(color.FgGreen)
		case strings.HasPrefix(line, "-"):
			c = color.New(color.FgRed)
		}
		fmt.Fprintf(l.console, "%s%s\n", indent, c.Sprint(line))
	}
}

func (l *Logger) printer(base pterm.PrefixPrinter, text string, style *pterm.Style) *pterm.PrefixPrinter {
	return base.WithWriter(l.console).WithPrefix(pterm.Prefix{Text: text, Style: style})
}

// 📝 Finish prints the processed count and the follow-up build command
func (l *Logger) Finish(ctx context.Context, processed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := l.formatter.FormatSummary(processed, l.opts.DryRun)

	fmt.Fprintln(l.console)
	l.printer(pterm.Success, "✅", pterm.NewStyle(pterm.FgGreen)).Println(summary)

	switch {
	case l.opts.DryRun:
		l.printer(pterm.Info, "ℹ", pterm.NewStyle(pterm.FgCyan)).Println("Run again without --dry-run to write changes")
	case l.opts.VerifyCommand != "":
		l.printer(pterm.Info, "ℹ", pterm.NewStyle(pterm.FgCyan)).Printfln("Run '%s' to verify changes", l.opts.VerifyCommand)
	}

	l.zlog.Info().Int("processed", processed).Bool("dry_run", l.opts.DryRun).Msg(summary)
}

// 📝 FinishRestore prints the restored count
func (l *Logger) FinishRestore(ctx context.Context, restored int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("Restore complete! Restored %d files", restored)

	fmt.Fprintln(l.console)
	l.printer(pterm.Success, "✅", pterm.NewStyle(pterm.FgGreen)).Println(msg)

	l.zlog.Info().Int("restored", restored).Msg(msg)
}
