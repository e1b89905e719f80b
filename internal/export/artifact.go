package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/logger"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/utils"
)

// clipboardWrite is swapped out in tests; headless machines have no clipboard.
var clipboardWrite = clipboard.WriteAll

// FileName returns the download name for a report generated on now's date.
func FileName(kind models.ReportKind, now time.Time) string {
	return fmt.Sprintf("%s%s-%s%s", constants.ExportFilePrefix, kind, utils.DateKey(now), constants.ExportFileSuffix)
}

// Write saves text under dir and returns the written path. A leading "~" in
// dir is expanded and missing directories are created.
func Write(dir string, kind models.ReportKind, text string, now time.Time) (string, error) {
	dir, err := utils.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(kind, now))
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Report written", "kind", kind, "path", path)
	return path, nil
}

// Copy places text on the system clipboard.
func Copy(text string) error {
	if err := clipboardWrite(text); err != nil {
		logger.Warn("Clipboard copy failed", "error", err)
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
