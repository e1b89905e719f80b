// Package backup snapshots the local journal store (SQLite or JSON file)
// into a sibling backups/ directory and restores from those snapshots.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/logger"
	"github.com/julianstephens/flowplanr/internal/storage"
)

const timestampLayout = "20060102-150405"

// ErrUnsupportedStore is returned for stores that are not local files.
var ErrUnsupportedStore = errors.New("backups are only supported for local SQLite and JSON stores")

// BackupInfo describes one backup file.
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
	Entries   int // journal entries in the snapshot, -1 if unreadable
}

type Manager struct {
	dbPath    string
	backupDir string
	suffix    string
	json      bool
	now       func() time.Time
}

// NewManager returns a manager for the store at dbPath. JSON stores are
// copied as files; anything else is treated as SQLite.
func NewManager(dbPath string) *Manager {
	m := &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		suffix:    constants.BackupFileSuffix,
		now:       time.Now,
	}
	if strings.EqualFold(filepath.Ext(dbPath), ".json") {
		m.json = true
		m.suffix = ".json"
	}
	return m
}

// Supported reports whether configPath names a store that can be backed up.
func Supported(configPath string) bool {
	return configPath != "" && !strings.Contains(configPath, "://") && configPath != "postgresql"
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the store and prunes all but the newest MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.createBackup()
	if err != nil {
		return "", err
	}
	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	logger.Info("Backup created", "path", path)
	return path, nil
}

func (m *Manager) createBackup() (string, error) {
	if !Supported(m.dbPath) {
		return "", ErrUnsupportedStore
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := m.now().Format(timestampLayout)
	path := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+m.suffix)
	for n := 1; fileExists(path); n++ {
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, n, m.suffix))
	}

	if err := m.snapshot(path); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	return path, nil
}

func (m *Manager) snapshot(dest string) error {
	if m.json {
		if _, err := storage.ReadDocument(m.dbPath); err != nil {
			return fmt.Errorf("source store is not valid: %w", err)
		}
		return copyFile(m.dbPath, dest)
	}

	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	// VACUUM INTO writes a consistent, compacted copy
	if _, err := src.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Warn("VACUUM INTO failed, falling back to file copy", "error", err)
		src.Close()
		return copyFile(m.dbPath, dest)
	}
	return nil
}

// parseName extracts the timestamp from flowplanr-YYYYMMDD-HHMMSS[-N]<suffix>.
func (m *Manager) parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.suffix)
	if len(stamp) > len(timestampLayout) {
		counter, ok := strings.CutPrefix(stamp[len(timestampLayout):], "-")
		if !ok {
			return time.Time{}, false
		}
		if _, err := strconv.Atoi(counter); err != nil {
			return time.Time{}, false
		}
		stamp = stamp[:len(timestampLayout)]
	}
	t, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
	return t, err == nil
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	dirEntries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, d := range dirEntries {
		if d.IsDir() {
			continue
		}
		ts, ok := m.parseName(d.Name())
		if !ok {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, d.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].Path > backups[j].Path
	})
	return backups, nil
}

// WithEntryCounts fills in BackupInfo.Entries for each backup.
func (m *Manager) WithEntryCounts(backups []BackupInfo) []BackupInfo {
	for i := range backups {
		n, err := m.countEntries(backups[i].Path)
		if err != nil {
			n = -1
		}
		backups[i].Entries = n
	}
	return backups
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the store with backupPath. The current store is
// snapshotted first; that snapshot's path is returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if !fileExists(backupPath) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if _, err := m.countEntries(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or not a flowplanr backup: %w", err)
	}

	var preRestore string
	if fileExists(m.dbPath) {
		// no rotation here: the pre-restore snapshot must survive
		p, err := m.createBackup()
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		preRestore = p
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tempPath, "error", removeErr)
		}
		return "", fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Backup restored", "from", backupPath, "pre_restore", preRestore)
	return preRestore, nil
}

// countEntries opens a snapshot and counts its journal entries, failing for
// anything that is not a flowplanr store.
func (m *Manager) countEntries(path string) (int, error) {
	if m.json {
		doc, err := storage.ReadDocument(path)
		if err != nil {
			return 0, err
		}
		return len(doc.Entries), nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
