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

package status

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// ErrBackupNotFound is returned by RestoreFile when no backup exists
var ErrBackupNotFound = errors.Base("backup file does not exist")

// 📊 FileStatus represents the outcome for one target file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusChanged              // File content was rewritten
	StatusUnchanged            // No rule or import applied
	StatusNotFound             // File is in the list but missing on disk
	StatusError                // Reading, rewriting or writing failed
	StatusSkipped              // File matched an exclude pattern
	StatusRestored             // File was put back from its backup
	StatusNoBackup             // Restore found nothing to put back
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusChanged:
		return "changed"
	case StatusUnchanged:
		return "unchanged"
	case StatusNotFound:
		return "not-found"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	case StatusRestored:
		return "restored"
	case StatusNoBackup:
		return "no-backup"
	default:
		return "unknown"
	}
}

// 📄 FileResult describes what happened to one target file
type FileResult struct {
	Path        string         // Path relative to the project directory
	AbsPath     string         // Resolved path
	Status      FileStatus     // Terminal outcome
	RuleCounts  map[string]int // Matches per rewrite rule
	ImportAdded bool           // Whether the logger import was inserted
	BackupPath  string         // Backup written (or restored from)
	DryRun      bool           // Nothing was written
	Patch       string         // Line diff, only computed for dry runs
	Pattern     string         // Exclude pattern for skipped files
	Error       error          // Failure for StatusError
}

// Rewrites returns the total number of rule matches
func (r FileResult) Rewrites() int {
	n := 0
	for _, c := range r.RuleCounts {
		n += c
	}
	return n
}

// 💾 Manager performs file operations relative to a project directory
type Manager struct {
	fs           afero.Fs
	baseDir      string
	backupSuffix string
}

// 🏭 New creates a new status manager
func New(fs afero.Fs, baseDir, backupSuffix string) *Manager {
	return &Manager{
		fs:           fs,
		baseDir:      filepath.Clean(baseDir),
		backupSuffix: backupSuffix,
	}
}

// BaseDir returns the project directory
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 AbsPath returns the absolute path for a given relative path
func (m *Manager) AbsPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

// BackupPath returns the backup location for a relative path
func (m *Manager) BackupPath(path string) string {
	abs := m.AbsPath(path)
	return strings.TrimSuffix(abs, filepath.Ext(abs)) + m.backupSuffix
}

// ErrIsDirectory is returned by ReadFile when a listed path is a directory
var ErrIsDirectory = errors.Base("is a directory")

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	// not every afero backend fails when reading a directory
	if info, err := m.fs.Stat(m.AbsPath(path)); err == nil && info.IsDir() {
		return nil, errors.Errorf("reading file: %w", errors.WithStack(ErrIsDirectory))
	}

	content, err := afero.ReadFile(m.fs, m.AbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// FileExists reports whether anything exists at path. A directory counts,
// so reading it fails later and it is reported as an error, not as missing.
func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := m.fs.Stat(m.AbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// WriteFileAtomic replaces path with content through a temp file and rename,
// keeping the permissions of the file it replaces.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.AbsPath(path)
	dir := filepath.Dir(absPath)

	mode := os.FileMode(0o644)
	if info, err := m.fs.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(m.fs, dir, "."+filepath.Base(absPath)+".tmp-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		_ = m.fs.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = m.fs.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := m.fs.Chmod(tmpPath, mode); err != nil {
		_ = m.fs.Remove(tmpPath)
		return errors.Errorf("setting file mode: %w", err)
	}
	if err := m.fs.Rename(tmpPath, absPath); err != nil {
		_ = m.fs.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Int("bytes", len(content)).Msg("file written")
	return nil
}

// BackupFile writes original next to path under the backup name and returns that name
func (m *Manager) BackupFile(ctx context.Context, path string, original []byte) (string, error) {
	backupPath := m.BackupPath(path)

	mode := os.FileMode(0o644)
	if info, err := m.fs.Stat(m.AbsPath(path)); err == nil {
		mode = info.Mode().Perm()
	}

	if err := afero.WriteFile(m.fs, backupPath, original, mode); err != nil {
		return "", errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", m.AbsPath(path)).Str("backup", backupPath).Msg("backup written")
	return backupPath, nil
}

// RestoreFile copies the backup of path back over it and removes the backup
func (m *Manager) RestoreFile(ctx context.Context, path string) (string, error) {
	backupPath := m.BackupPath(path)

	content, err := afero.ReadFile(m.fs, backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.WithStack(ErrBackupNotFound)
		}
		return "", errors.Errorf("reading backup: %w", err)
	}

	if err := m.WriteFileAtomic(ctx, path, content); err != nil {
		return "", errors.Errorf("restoring from backup: %w", err)
	}

	if err := m.fs.Remove(backupPath); err != nil {
		return "", errors.Errorf("removing backup: %w", err)
	}

	return backupPath, nil
}
