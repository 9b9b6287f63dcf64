package installer

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"

	"mcpup/internal/capability"
	"mcpup/internal/executor"
	"mcpup/internal/plan"
)

// Packages names what gets installed on each side of the server.
type Packages struct {
	// Runtime is the Node-side package installed by node-family managers.
	Runtime string

	// Bridge is the Python-side package or source spec installed by
	// python-family managers.
	Bridge string

	// Command is the console entry point the bridge package exposes.
	// uvx needs it to resolve the executable inside the ephemeral env.
	Command string
}

// Installer turns a candidate package manager into a concrete install
// invocation. Commands run through an injectable runner so tests never
// spawn real installers.
type Installer struct {
	logger *slog.Logger
	runner func(ctx context.Context, argv []string) ([]byte, error)
}

// Option configures an Installer.
type Option func(*Installer)

// WithRunner overrides subprocess execution; used in tests.
func WithRunner(fn func(ctx context.Context, argv []string) ([]byte, error)) Option {
	return func(i *Installer) {
		i.runner = fn
	}
}

// New creates an Installer.
func New(logger *slog.Logger, opts ...Option) *Installer {
	inst := &Installer{
		logger: logger,
		runner: runCommand,
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// Attempt adapts this installer into an executor attempt for the given
// packages and mode. Extra args are appended verbatim to every
// invocation.
func (i *Installer) Attempt(pkgs Packages, mode plan.Mode, extraArgs []string) executor.Attempt {
	return func(ctx context.Context, c capability.Candidate) error {
		return i.install(ctx, c, pkgs, mode, extraArgs)
	}
}

func (i *Installer) install(ctx context.Context, c capability.Candidate, pkgs Packages, mode plan.Mode, extraArgs []string) error {
	argv, err := InstallCommand(c, pkgs, mode)
	if err != nil {
		return err
	}
	argv = append(argv, extraArgs...)

	i.logger.Info("installing", "candidate", c.Name, "command", strings.Join(argv, " "))

	out, err := i.runner(ctx, argv)
	if err != nil {
		return errors.Wrapf(err, "%s install failed: %s", c.Name, tail(out, 400))
	}

	i.logger.Debug("install output", "candidate", c.Name, "output", tail(out, 400))
	return nil
}

// InstallCommand builds the argv that installs the server through the
// given candidate. For uvx an install is a one-shot run that warms the
// ephemeral environment; there is nothing persistent to install.
func InstallCommand(c capability.Candidate, pkgs Packages, mode plan.Mode) ([]string, error) {
	switch c.Name {
	case "uvx":
		return []string{c.Path, "--from", pkgs.Bridge, pkgs.Command, "--version"}, nil

	case "uv":
		if mode == plan.ModeGlobal {
			return []string{c.Path, "tool", "install", pkgs.Bridge}, nil
		}
		return []string{c.Path, "add", pkgs.Bridge}, nil
	}

	argv := append([]string{c.Path}, c.InstallArgs...)
	switch c.Family {
	case capability.FamilyBridge:
		return append(argv, pkgs.Bridge), nil
	case capability.FamilyRuntime:
		if mode == plan.ModeGlobal && c.GlobalFlag != "" {
			argv = append(argv, c.GlobalFlag)
		}
		return append(argv, pkgs.Runtime), nil
	default:
		return nil, errors.Newf("no install recipe for %s", c.Name)
	}
}

func runCommand(ctx context.Context, argv []string) ([]byte, error) {
	return exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput()
}

// tail returns the last n bytes of output, trimmed, so failure messages
// stay readable without dumping a full installer transcript.
func tail(out []byte, n int) string {
	s := strings.TrimSpace(string(out))
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
