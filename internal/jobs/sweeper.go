package jobs

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/services"
)

const sweepInterval = 15 * time.Minute

// Sweeper periodically removes expired staged registration requests. Only
// one process may sweep at a time; a lock file keeps overlapping deployments
// from doubling up.
type Sweeper struct {
	log      *logger.Logger
	requests services.RequestRegistrationService
	lockPath string
}

func NewSweeper(baseLog *logger.Logger, requests services.RequestRegistrationService, lockPath string) *Sweeper {
	return &Sweeper{
		log:      baseLog.With("job", "Sweeper"),
		requests: requests,
		lockPath: lockPath,
	}
}

// Run blocks until the context is cancelled, sweeping once immediately and
// then every interval.
func (s *Sweeper) Run(ctx context.Context) {
	unlock, err := s.acquireLock()
	if err != nil {
		s.log.Warn("Sweeper lock held elsewhere, standing down", "error", err)
		return
	}
	defer unlock()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	removed, err := s.requests.SweepExpired(ctx)
	if err != nil {
		s.log.Error("Sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.log.Info("Expired registration requests removed", "count", removed)
	}
}

// acquireLock creates the lock file exclusively. A stale lock left by a dead
// process is taken over.
func (s *Sweeper) acquireLock() (func(), error) {
	f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if os.IsExist(err) {
		raw, readErr := os.ReadFile(s.lockPath)
		if readErr != nil {
			return nil, fmt.Errorf("lock file unreadable: %w", readErr)
		}
		pid, convErr := strconv.Atoi(string(raw))
		if convErr == nil && processAlive(pid) {
			return nil, fmt.Errorf("locked by pid %d", pid)
		}
		if rmErr := os.Remove(s.lockPath); rmErr != nil {
			return nil, fmt.Errorf("remove stale lock: %w", rmErr)
		}
		f, err = os.OpenFile(s.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	}
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	return func() {
		if rmErr := os.Remove(s.lockPath); rmErr != nil {
			s.log.Warn("Failed to remove sweeper lock", "path", s.lockPath, "error", rmErr)
		}
	}, nil
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
