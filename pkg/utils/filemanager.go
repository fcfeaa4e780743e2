// =============================================================================
// Ledger Export - File Manager Utility
// =============================================================================
//
// This module handles the filesystem concerns around the export engine:
//   - Output directory management
//   - Export file naming (scope + generation timestamp)
//   - Archival of written artifacts for long-term storage
//
// ARCHIVAL STRATEGY:
//   - Artifacts are copied (not moved) into the archive directory after a
//     successful write, so the output directory always holds the latest
//     export and the archive accumulates history.
//   - Archival failures never undo a completed export.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
)

// timestampLayout is the generation timestamp embedded in export file names.
const timestampLayout = "20060102_150405"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles output placement and archival for export artifacts.
type FileManager struct {
	// OutputDir is the directory where artifacts are written.
	OutputDir string

	// ArchiveDir is the directory receiving archived copies. Empty disables
	// archival.
	ArchiveDir string
}

// NewFileManager creates a FileManager over the given directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates the output and archive directories if they don't
// exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.OutputDir}
	if fm.ArchiveDir != "" {
		dirs = append(dirs, fm.ArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// EXPORT NAMING
// =============================================================================

// ExportFileName returns the artifact file name for a period generated at
// the given time: EXPORT_<year>_<month-or-ALL>_<timestamp>.xlsx.
//
// Examples:
//   EXPORT_2025_03_20250830_153000.xlsx
//   EXPORT_2025_ALL_20250830_153000.xlsx
func ExportFileName(period ledger.Period, now time.Time) string {
	return fmt.Sprintf("EXPORT_%s_%s.xlsx", period.Label(), now.Format(timestampLayout))
}

// ExportPath returns the full output path for a period's artifact.
func (fm *FileManager) ExportPath(period ledger.Period, now time.Time) string {
	return filepath.Join(fm.OutputDir, ExportFileName(period, now))
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveArtifact copies a written artifact into the archive directory and
// returns the archived path. With archival disabled it returns "" and no
// error.
func (fm *FileManager) ArchiveArtifact(path string) (string, error) {
	if fm.ArchiveDir == "" {
		return "", nil
	}

	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(path))
	if err := copyFile(path, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", filepath.Base(path), err)
	}

	return archivePath, nil
}

// copyFile copies src to dst, truncating any existing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Sync()
}
