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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/logmigrate/pkg/config"
)

const project = "/work/pms"

const taskService = `import { db } from '@/lib/db';

export function save() {
  console.log('Saving...');
  console.error('Failed to save:', error);
}
`

const taskServiceMigrated = `import { db } from '@/lib/db';
import { logger } from '@/lib/logger';

export function save() {
  logger.debug('Saving');
  logger.error('Failed to save', error instanceof Error ? error : new Error(String(error)));
}
`

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newRootCmd(fs, out)
	cmd.SetArgs(append(args, "--no-color"))
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func projectFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(project, "src/lib/task-service.ts"), []byte(taskService), 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(project, "src/lib/email-service.ts"), []byte("const x = 1;\n"), 0o644))
	return fs
}

func read(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, filepath.Join(project, name))
	require.NoError(t, err)
	return string(b)
}

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		config      map[string]string
		wantOut     []string
		wantErr     string
		wantContent string
		wantBackup  bool
	}{
		{
			name: "default_runs_migration",
			args: []string{"-p", project},
			wantOut: []string{
				"Starting console → logger migration...",
				"Project: " + project,
				"✓ Processed: src/lib/task-service.ts",
				"- No changes: src/lib/email-service.ts",
				"⚠  File not found: src/lib/leave-service.ts",
				"Migration complete! Processed 1 files",
				"Run 'npm run build' to verify changes",
			},
			wantContent: taskServiceMigrated,
			wantBackup:  true,
		},
		{
			name:        "run_subcommand",
			args:        []string{"run", "--project", project},
			wantOut:     []string{"✓ Processed: src/lib/task-service.ts"},
			wantContent: taskServiceMigrated,
			wantBackup:  true,
		},
		{
			name: "dry_run_flag",
			args: []string{"run", "-p", project, "--dry-run"},
			wantOut: []string{
				"✓ Would process: src/lib/task-service.ts",
				"-  console.log('Saving...');",
				"+  logger.debug('Saving');",
				"Dry run complete! 1 files would change",
			},
			wantContent: taskService,
		},
		{
			name: "config_file",
			args: []string{"run", "-c", filepath.Join(project, "logmigrate.yaml")},
			config: map[string]string{
				"logmigrate.yaml": "verify_command: make check\nexclude:\n  - src/lib/task-service.ts\n",
			},
			wantOut: []string{
				"- Skipped: src/lib/task-service.ts (excluded by src/lib/task-service.ts)",
				"Migration complete! Processed 0 files",
				"Run 'make check' to verify changes",
			},
			wantContent: taskService,
		},
		{
			name: "flag_overrides_config",
			args: []string{"-c", filepath.Join(project, "logmigrate.json"), "--dry-run"},
			config: map[string]string{
				"logmigrate.json": `{"dry_run": false}`,
			},
			wantOut:     []string{"Would process: src/lib/task-service.ts"},
			wantContent: taskService,
		},
		{
			name: "invalid_config",
			args: []string{"-c", filepath.Join(project, "logmigrate.yaml")},
			config: map[string]string{
				"logmigrate.yaml": "backup_suffix: backup\n",
			},
			wantErr:     "backup_suffix",
			wantContent: taskService,
		},
		{
			name:        "missing_config",
			args:        []string{"-c", filepath.Join(project, "nope.yaml")},
			wantErr:     "loading config",
			wantContent: taskService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := projectFs(t)
			for name, content := range tt.config {
				require.NoError(t, afero.WriteFile(fs, filepath.Join(project, name), []byte(content), 0o644))
			}

			out, err := execute(t, fs, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}

			assert.Equal(t, tt.wantContent, read(t, fs, "src/lib/task-service.ts"))

			hasBackup, err := afero.Exists(fs, filepath.Join(project, "src/lib/task-service.ts.backup"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantBackup, hasBackup)
		})
	}
}

func TestRootCmd_MigrateThenRestore(t *testing.T) {
	fs := projectFs(t)

	_, err := execute(t, fs, "-p", project)
	require.NoError(t, err)
	require.Equal(t, taskServiceMigrated, read(t, fs, "src/lib/task-service.ts"))
	assert.Equal(t, taskService, read(t, fs, "src/lib/task-service.ts.backup"))

	// a second run finds nothing left to convert
	out, err := execute(t, fs, "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "- No changes: src/lib/task-service.ts")
	assert.Contains(t, out, "Processed 0 files")

	out, err = execute(t, fs, "restore", "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "⟳ Restored: src/lib/task-service.ts")
	assert.Contains(t, out, "- No backup: src/lib/email-service.ts")
	assert.Contains(t, out, "Restore complete! Restored 1 files")

	assert.Equal(t, taskService, read(t, fs, "src/lib/task-service.ts"))
	exists, err := afero.Exists(fs, filepath.Join(project, "src/lib/task-service.ts.backup"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRulesCmd(t *testing.T) {
	out, err := execute(t, afero.NewMemMapFs(), "rules", "-c", "/does/not/exist.yaml")
	require.NoError(t, err, "rules does not load the config")

	for _, name := range []string{"strip-markers", "error-colon", "info-success", "debug-template", "warn"} {
		assert.Contains(t, out, name)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "🚀 logmigrate version info:")
	assert.Contains(t, out, "Rules:     11 (strip-markers, error-colon,")

	out, err = execute(t, afero.NewMemMapFs(), "version", "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.Len(t, info.Rules, 11)
	assert.Equal(t, "warn", info.Rules[len(info.Rules)-1])
}

func TestResolve_DefaultFiles(t *testing.T) {
	out, err := execute(t, afero.NewMemMapFs(), "-p", project, "--dry-run")
	require.NoError(t, err)
	for _, f := range config.DefaultFiles {
		assert.Contains(t, out, "File not found: "+f)
	}
	assert.Contains(t, out, "Dry run complete! 0 files would change")
}
