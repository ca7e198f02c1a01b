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

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/logmigrate/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

const (
	DefaultBackupSuffix  = ".ts.backup"
	DefaultVerifyCommand = "npm run build"
)

// DefaultFiles is the migration target list, relative to the project directory.
var DefaultFiles = []string{
	"src/lib/leave-service.ts",
	"src/lib/pwa-cache.ts",
	"src/lib/notification-queue.ts",
	"src/lib/dashboard-data.ts",
	"src/lib/disciplinary-service.ts",
	"src/lib/backup-service.ts",
	"src/lib/optimistic-updates.ts",
	"src/lib/pagination-utils.ts",
	"src/lib/audit-log-service.ts",
	"src/lib/task-service.ts",
	"src/lib/email-service.ts",
}

// DefaultExclude keeps the logger itself and test fixtures out of the migration.
var DefaultExclude = []string{
	"src/lib/logger.ts",
	"**/__tests__/**",
}

// 📚 Config represents the complete configuration
type Config struct {
	ProjectDir    string   `json:"project_dir,omitempty" yaml:"project_dir,omitempty"`
	ImportLine    string   `json:"import_line,omitempty" yaml:"import_line,omitempty"`
	BackupSuffix  string   `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty"`
	VerifyCommand string   `json:"verify_command,omitempty" yaml:"verify_command,omitempty"`
	Exclude       []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	DryRun        bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`

	// Files is fixed at build time and cannot be set from a config file
	Files []string `json:"-" yaml:"-"`
}

// 🏭 Default returns the built-in configuration rooted at the current directory
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = "."
	}
	if cfg.ImportLine == "" {
		cfg.ImportLine = text.DefaultImportLine
	}
	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = DefaultBackupSuffix
	}
	if cfg.VerifyCommand == "" {
		cfg.VerifyCommand = DefaultVerifyCommand
	}
	if cfg.Exclude == nil {
		cfg.Exclude = append([]string(nil), DefaultExclude...)
	}
	cfg.Files = append([]string(nil), DefaultFiles...)
}

// 🎯 Load reads a config file from fs, fills defaults and validates the result
func Load(ctx context.Context, fs afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// a relative or missing project dir is relative to the config file, not the caller
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = "."
	}
	if !filepath.IsAbs(cfg.ProjectDir) {
		cfg.ProjectDir = filepath.Join(filepath.Dir(path), cfg.ProjectDir)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.ProjectDir) == "" {
		return errors.Errorf("project_dir is required")
	}
	if strings.TrimSpace(cfg.ImportLine) == "" {
		return errors.Errorf("import_line is required")
	}
	if !strings.HasPrefix(strings.TrimSpace(cfg.ImportLine), text.DefaultImportMarker) {
		return errors.Errorf("import_line must start with %q", text.DefaultImportMarker)
	}
	if !strings.HasPrefix(cfg.BackupSuffix, ".") || len(cfg.BackupSuffix) < 2 {
		return errors.Errorf("backup_suffix must start with '.': %q", cfg.BackupSuffix)
	}
	for i, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("exclude %d: invalid pattern %q", i, pattern)
		}
	}

	cfg.ProjectDir = filepath.Clean(cfg.ProjectDir)
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := "write"
	if cfg.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s (%d files, %s) -> %s", cfg.ProjectDir, len(cfg.Files), mode, cfg.BackupSuffix)
}
