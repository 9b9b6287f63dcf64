package launcher

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"

	mcperrors "mcpup/internal/errors"
)

// State describes the lifecycle of the managed server process.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
	StateCrashed State = "crashed"
)

// Launcher owns at most one server process at a time. Start, Wait and
// Stop are safe for concurrent use.
type Launcher struct {
	logger *slog.Logger
	grace  time.Duration

	mu       sync.Mutex
	cmd      *exec.Cmd
	done     chan error
	exited   chan struct{}
	state    State
	stopping bool
	tempDirs []string
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithStopGrace overrides the interrupt-to-kill grace window.
func WithStopGrace(d time.Duration) Option {
	return func(l *Launcher) {
		if d > 0 {
			l.grace = d
		}
	}
}

// New creates a Launcher in the idle state.
func New(logger *slog.Logger, opts ...Option) *Launcher {
	l := &Launcher{
		logger: logger,
		grace:  DefaultStopGrace,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State reports the current lifecycle state.
func (l *Launcher) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// PID returns the child's process ID, or 0 when no process is running.
func (l *Launcher) PID() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateRunning || l.cmd == nil || l.cmd.Process == nil {
		return 0
	}
	return l.cmd.Process.Pid
}

// Start spawns the server with the given argv. The child inherits the
// parent environment with cfg.Env merged on top, and its stdio is wired
// to the parent's so MCP stdio transport flows through untouched.
func (l *Launcher) Start(ctx context.Context, argv []string, cfg Config) error {
	if len(argv) == 0 {
		return errors.New("launch: empty command")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateRunning {
		return errors.Newf("launch: process already running (pid %d)", l.cmd.Process.Pid)
	}

	dir := cfg.Dir
	if dir == "" && cfg.Ephemeral {
		tmp, err := os.MkdirTemp("", "mcpup-run-*")
		if err != nil {
			return errors.Wrap(err, "creating ephemeral work dir")
		}
		l.tempDirs = append(l.tempDirs, tmp)
		dir = tmp
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), cfg.Env...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		l.cleanupLocked()
		return errors.Wrapf(mcperrors.ErrStrategyFailed, "starting %s: %v", argv[0], err)
	}

	l.logger.Info("server started", "pid", cmd.Process.Pid, "command", argv[0])

	l.cmd = cmd
	l.state = StateRunning
	l.stopping = false
	l.done = make(chan error, 1)
	l.exited = make(chan struct{})
	go func(done chan error) {
		done <- cmd.Wait()
	}(l.done)

	return nil
}

// Wait blocks until the child exits or ctx is canceled. Cancellation
// triggers a graceful Stop before returning ctx's error.
func (l *Launcher) Wait(ctx context.Context) error {
	l.mu.Lock()
	if l.state != StateRunning {
		l.mu.Unlock()
		return mcperrors.ErrProcessNotRunning
	}
	done := l.done
	exited := l.exited
	l.mu.Unlock()

	select {
	case err := <-done:
		l.finish(err)
		if err != nil {
			return errors.Wrap(err, "server exited")
		}
		return nil
	case <-exited:
		// A concurrent Stop received the exit and ran finish.
		return nil
	case <-ctx.Done():
		l.stop(done)
		return ctx.Err()
	}
}

// Stop asks the child to exit, escalating to a kill after the grace
// window. It is a no-op when nothing is running.
func (l *Launcher) Stop() error {
	l.mu.Lock()
	if l.state != StateRunning {
		l.mu.Unlock()
		return nil
	}
	done := l.done
	l.mu.Unlock()

	l.stop(done)
	return nil
}

// Detach relinquishes ownership of the running child and returns its
// PID. The process keeps running; the launcher returns to idle without
// removing any ephemeral directories the child may still be using.
func (l *Launcher) Detach() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateRunning {
		return 0, mcperrors.ErrProcessNotRunning
	}

	pid := l.cmd.Process.Pid
	if err := l.cmd.Process.Release(); err != nil {
		return 0, errors.Wrap(err, "releasing process")
	}

	l.logger.Info("server detached", "pid", pid)
	l.cmd = nil
	l.done = nil
	l.tempDirs = nil
	l.state = StateIdle
	return pid, nil
}

// stop drives one shutdown. The exit value on done can only be received
// once, so concurrent stoppers do not race for it: the first caller owns
// the interrupt-then-kill sequence and everyone else waits for finish to
// close the exited channel.
func (l *Launcher) stop(done chan error) {
	l.mu.Lock()
	if l.state != StateRunning || l.cmd == nil || l.cmd.Process == nil {
		l.mu.Unlock()
		return
	}
	exited := l.exited
	if l.stopping {
		l.mu.Unlock()
		<-exited
		return
	}
	l.stopping = true
	cmd := l.cmd
	l.mu.Unlock()

	pid := cmd.Process.Pid
	l.logger.Debug("stopping server", "pid", pid, "grace", l.grace)

	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		_ = cmd.Process.Kill()
	}

	select {
	case err := <-done:
		l.finish(err)
		return
	case <-exited:
		// A concurrent Wait received the exit and ran finish.
		return
	case <-time.After(l.grace):
	}

	l.logger.Warn("server ignored interrupt, killing", "pid", pid)
	_ = cmd.Process.Kill()

	select {
	case err := <-done:
		l.finish(err)
	case <-exited:
	}
}

// finish records the child's exit and releases run-scoped resources.
func (l *Launcher) finish(waitErr error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateRunning {
		return
	}
	switch {
	case waitErr == nil:
		l.state = StateStopped
		l.logger.Debug("server exited cleanly")
	case l.stopping:
		// Exit caused by our own interrupt counts as a clean stop.
		l.state = StateStopped
	default:
		l.state = StateCrashed
		l.logger.Warn("server exited abnormally", "error", waitErr)
	}
	l.cmd = nil
	l.done = nil
	l.stopping = false
	close(l.exited)
	l.exited = nil
	l.cleanupLocked()
}

func (l *Launcher) cleanupLocked() {
	for _, dir := range l.tempDirs {
		if err := os.RemoveAll(dir); err != nil {
			l.logger.Debug("removing ephemeral dir", "dir", dir, "error", err)
		}
	}
	l.tempDirs = nil
}
