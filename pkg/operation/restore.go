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

	"github.com/walteh/logmigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ⟳ RestoreOperation puts backups back over migrated files
type RestoreOperation struct {
	BaseOperation
}

// 🏭 NewRestoreOperation creates a new restore operation
func NewRestoreOperation(opts Options) (*RestoreOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	// restore always writes
	opts.DryRun = false
	return &RestoreOperation{BaseOperation: NewBaseOperation(opts)}, nil
}

// Execute restores every listed file that has a backup. Exclusions are not
// applied so a backup left from an earlier configuration is still recovered.
func (op *RestoreOperation) Execute(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	op.Reporter.StartRestore(ctx, op.Manager.BaseDir())

	var cancelled error
	for _, path := range op.Files {
		if err := ctx.Err(); err != nil {
			cancelled = errors.Errorf("operation cancelled: %w", err)
			break
		}

		res := op.newResult(path)
		backup, err := op.Manager.RestoreFile(ctx, path)
		switch {
		case errors.Is(err, status.ErrBackupNotFound):
			res.Status = status.StatusNoBackup
		case err != nil:
			res.Status = status.StatusError
			res.Error = err
		default:
			res.Status = status.StatusRestored
			res.BackupPath = backup
		}

		summary.add(res)
		op.Reporter.LogFileResult(ctx, res)
	}

	op.Reporter.FinishRestore(ctx, summary.Count(status.StatusRestored))
	return summary, cancelled
}
