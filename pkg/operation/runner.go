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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/logmigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	return &OperationRunner{logger: logger}
}

// 🏃 Run executes an operation on the calling goroutine. Files are never
// processed concurrently, so output order always matches the file list.
func (r *OperationRunner) Run(ctx context.Context, op Operation) (*Summary, error) {
	start := time.Now()

	summary, err := op.Execute(r.logger.WithContext(ctx))
	if err != nil {
		return summary, errors.Errorf("executing operation: %w", err)
	}

	r.logger.Info().
		Dur("elapsed", time.Since(start)).
		Int("files", len(summary.Results)).
		Int("changed", summary.Changed()).
		Int("restored", summary.Count(status.StatusRestored)).
		Int("errors", summary.Count(status.StatusError)).
		Msg("operation finished")

	return summary, nil
}
