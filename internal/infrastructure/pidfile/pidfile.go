package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrAlreadyRunning is returned by Acquire when a live process owns the file
var ErrAlreadyRunning = errors.New("server is already running")

// PIDFile enforces a single running planner server per pid file path
type PIDFile struct {
	path string
}

// New creates a new PIDFile manager
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the managed file path
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current pid, replacing stale or unreadable files
func (p *PIDFile) Acquire() error {
	pid, err := p.ReadPID()
	switch {
	case err == nil && isProcessRunning(pid):
		return fmt.Errorf("%w (PID %d)", ErrAlreadyRunning, pid)
	case err == nil, !errors.Is(err, os.ErrNotExist):
		// Stale or corrupt file
		_ = os.Remove(p.path)
	}

	pidData := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(pidData), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	return nil
}

// ReadPID returns the pid recorded in the file
func (p *PIDFile) ReadPID() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file %s: %w", p.path, err)
	}
	return pid, nil
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// KillExisting terminates the process recorded in the file, escalating from
// SIGTERM to SIGKILL after timeout, and removes the file
func (p *PIDFile) KillExisting(timeout time.Duration) error {
	pid, err := p.ReadPID()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return p.Release()
	}

	if pid == os.Getpid() {
		return fmt.Errorf("refusing to kill the current process (PID %d)", pid)
	}

	if isProcessRunning(pid) {
		process, err := os.FindProcess(pid)
		if err != nil {
			return fmt.Errorf("failed to find process %d: %w", pid, err)
		}
		if err := process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("failed to signal process %d: %w", pid, err)
		}

		deadline := time.Now().Add(timeout)
		for isProcessRunning(pid) && time.Now().Before(deadline) {
			time.Sleep(100 * time.Millisecond)
		}
		if isProcessRunning(pid) {
			_ = process.Kill()
		}
	}

	return p.Release()
}

// isProcessRunning checks the pid with signal 0
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix FindProcess always succeeds; signal 0 checks existence
	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		// Exists but owned by someone else
		return true
	default:
		return false
	}
}
