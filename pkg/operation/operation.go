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
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/logmigrate/pkg/status"
	"github.com/walteh/logmigrate/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single sequential pass over the target file list
type Operation interface {
	// Execute visits every target file once and returns the collected results
	Execute(ctx context.Context) (*Summary, error)
}

// 📢 Reporter receives the banner, one result per file and the closing count
type Reporter interface {
	Start(ctx context.Context, projectDir string)
	StartRestore(ctx context.Context, projectDir string)
	LogFileResult(ctx context.Context, res status.FileResult)
	Finish(ctx context.Context, processed int)
	FinishRestore(ctx context.Context, restored int)
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// Files are target paths relative to the manager's base directory
	Files []string
	// Exclude holds doublestar patterns for files to leave alone
	Exclude []string
	// Manager performs all file access
	Manager *status.Manager
	// Reporter prints progress
	Reporter Reporter
	// Inserter adds the logger import
	Inserter *text.ImportInserter
	// Rewriter converts console calls
	Rewriter *text.Rewriter
	// DryRun computes results without writing
	DryRun bool
}

func (o Options) validate() error {
	if o.Manager == nil {
		return errors.Errorf("manager is required")
	}
	if o.Reporter == nil {
		return errors.Errorf("reporter is required")
	}
	return nil
}

// 📦 BaseOperation holds what every pass needs
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

// 🔍 shouldIgnore checks if a file matches an exclude pattern
func (op *BaseOperation) shouldIgnore(ctx context.Context, path string) (bool, string) {
	logger := zerolog.Ctx(ctx)
	slashed := filepath.ToSlash(path)

	for _, pattern := range op.Exclude {
		matched, err := doublestar.Match(pattern, slashed)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true, pattern
		}
	}

	return false, ""
}

// newResult starts a result for a relative path
func (op *BaseOperation) newResult(path string) status.FileResult {
	return status.FileResult{
		Path:    path,
		AbsPath: op.Manager.AbsPath(path),
		DryRun:  op.DryRun,
	}
}

// 📊 Summary collects the per-file results of one pass, in list order
type Summary struct {
	Results []status.FileResult
}

func (s *Summary) add(res status.FileResult) {
	s.Results = append(s.Results, res)
}

// Count returns how many files ended in st
func (s *Summary) Count(st status.FileStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == st {
			n++
		}
	}
	return n
}

// Changed returns the number of rewritten (or, in a dry run, rewritable) files
func (s *Summary) Changed() int {
	return s.Count(status.StatusChanged)
}

// Failed returns the results that ended in an error
func (s *Summary) Failed() []status.FileResult {
	var out []status.FileResult
	for _, r := range s.Results {
		if r.Status == status.StatusError {
			out = append(out, r)
		}
	}
	return out
}
