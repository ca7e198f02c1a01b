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

package operation

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/logmigrate/pkg/status"
	"github.com/walteh/logmigrate/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📄 Processor migrates a single file: read, insert import, rewrite, back up, write
type Processor struct {
	manager  *status.Manager
	inserter *text.ImportInserter
	rewriter *text.Rewriter
	dryRun   bool
}

// 🏭 NewProcessor creates a processor, falling back to the default import and rules
func NewProcessor(opts Options) *Processor {
	p := &Processor{
		manager:  opts.Manager,
		inserter: opts.Inserter,
		rewriter: opts.Rewriter,
		dryRun:   opts.DryRun,
	}
	if p.inserter == nil {
		p.inserter = text.NewImportInserter(text.DefaultImportLine)
	}
	if p.rewriter == nil {
		p.rewriter = text.NewDefaultRewriter()
	}
	return p
}

// ProcessFile migrates path and never fails: errors end up on the result
func (p *Processor) ProcessFile(ctx context.Context, path string) status.FileResult {
	res := status.FileResult{
		Path:    path,
		AbsPath: p.manager.AbsPath(path),
		DryRun:  p.dryRun,
	}

	if err := p.process(ctx, path, &res); err != nil {
		zerolog.Ctx(ctx).Debug().Str("file", path).Err(err).Msg("processing failed")
		res.Status = status.StatusError
		res.Error = err
	}

	return res
}

func (p *Processor) process(ctx context.Context, path string, res *status.FileResult) error {
	raw, err := p.manager.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	if !utf8.Valid(raw) {
		return errors.Errorf("decoding file: content is not valid UTF-8")
	}

	original := string(raw)

	updated, added := p.inserter.Insert(original)
	rewritten := p.rewriter.Rewrite(ctx, updated)
	updated = rewritten.ModifiedContent

	res.ImportAdded = added
	res.RuleCounts = rewritten.RuleCounts

	if updated == original {
		res.Status = status.StatusUnchanged
		return nil
	}

	if p.dryRun {
		res.Patch = lineDiff(original, updated)
		res.Status = status.StatusChanged
		return nil
	}

	// the backup must exist before the original is replaced
	backup, err := p.manager.BackupFile(ctx, path, raw)
	if err != nil {
		return errors.Errorf("writing backup: %w", err)
	}
	res.BackupPath = backup

	if err := p.manager.WriteFileAtomic(ctx, path, []byte(updated)); err != nil {
		return errors.Errorf("writing file: %w", err)
	}

	res.Status = status.StatusChanged
	return nil
}

// lineDiff renders the changed lines of before and after as -/+ lines
func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(strings.TrimSuffix(line, "\n"))
			buf.WriteString("\n")
		}
	}
	return buf.String()
}
