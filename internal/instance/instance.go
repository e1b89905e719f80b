// Package instance keeps a lockfile next to the store while the TUI runs,
// so commands that replace the store (backup restore) can refuse to run
// underneath it.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	currentPID      = os.Getpid
)

// ErrAlreadyRunning is returned by Acquire when a live TUI holds the lock.
var ErrAlreadyRunning = errors.New("flowplanr TUI is already running")

// Owner describes the process recorded in a lockfile.
type Owner struct {
	PID       int
	StartedAt time.Time
}

// Lock is a held instance lock.
type Lock struct {
	path string
}

// LockfilePath returns the lockfile location for a store in configDir.
func LockfilePath(configDir string) string {
	return filepath.Join(configDir, constants.InstanceLockfileName)
}

// parse reads "pid|startedAt" from a lockfile.
func parse(content string) (Owner, error) {
	pidStr, started, ok := strings.Cut(strings.TrimSpace(content), "|")
	if !ok {
		return Owner{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return Owner{}, errors.New("invalid process ID in lockfile")
	}
	ts, err := time.Parse(time.RFC3339, started)
	if err != nil {
		return Owner{}, errors.New("invalid start time in lockfile")
	}
	return Owner{PID: pid, StartedAt: ts}, nil
}

// alive reports whether pid is a running flowplanr process.
func alive(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

// Running returns the owner of a live lock in configDir. Missing, malformed
// and stale lockfiles all report false.
func Running(configDir string) (Owner, bool) {
	content, err := os.ReadFile(LockfilePath(configDir))
	if err != nil {
		return Owner{}, false
	}
	owner, err := parse(string(content))
	if err != nil {
		logger.Debug("Ignoring lockfile", "error", err)
		return Owner{}, false
	}
	if owner.PID == currentPID() || !alive(owner.PID) {
		return Owner{}, false
	}
	return owner, true
}

// Acquire takes the instance lock in configDir, replacing a stale one.
func Acquire(configDir string) (*Lock, error) {
	if owner, ok := Running(configDir); ok {
		return nil, fmt.Errorf("%w (pid %d, started %s)", ErrAlreadyRunning, owner.PID, owner.StartedAt.Local().Format(time.Kitchen))
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	path := LockfilePath(configDir)
	content := fmt.Sprintf("%d|%s", currentPID(), time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner, err := parse(string(content)); err == nil && owner.PID != currentPID() {
		return nil
	}
	return os.Remove(l.path)
}
