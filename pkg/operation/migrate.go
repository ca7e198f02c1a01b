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

	"github.com/rs/zerolog"
	"github.com/walteh/logmigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔄 MigrateOperation rewrites console calls in every listed file
type MigrateOperation struct {
	BaseOperation
	processor *Processor
}

// 🏭 NewMigrateOperation creates a new migrate operation
func NewMigrateOperation(opts Options) (*MigrateOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return &MigrateOperation{
		BaseOperation: NewBaseOperation(opts),
		processor:     NewProcessor(opts),
	}, nil
}

// Execute processes the files strictly in list order, one status line each
func (op *MigrateOperation) Execute(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	summary := &Summary{}

	op.Reporter.Start(ctx, op.Manager.BaseDir())

	var cancelled error
	for _, path := range op.Files {
		if err := ctx.Err(); err != nil {
			cancelled = errors.Errorf("operation cancelled: %w", err)
			break
		}

		res := op.visit(ctx, path)
		summary.add(res)
		op.Reporter.LogFileResult(ctx, res)
	}

	logger.Debug().Int("changed", summary.Changed()).Int("errors", summary.Count(status.StatusError)).Msg("migration pass done")

	// files already written stay written, so the count is printed either way
	op.Reporter.Finish(ctx, summary.Changed())
	return summary, cancelled
}

func (op *MigrateOperation) visit(ctx context.Context, path string) status.FileResult {
	if ignored, pattern := op.shouldIgnore(ctx, path); ignored {
		res := op.newResult(path)
		res.Status = status.StatusSkipped
		res.Pattern = pattern
		return res
	}

	exists, err := op.Manager.FileExists(ctx, path)
	if err != nil {
		res := op.newResult(path)
		res.Status = status.StatusError
		res.Error = err
		return res
	}
	if !exists {
		res := op.newResult(path)
		res.Status = status.StatusNotFound
		return res
	}

	return op.processor.ProcessFile(ctx, path)
}
