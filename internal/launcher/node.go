package launcher

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	mcperrors "mcpup/internal/errors"
	"mcpup/internal/paths"
)

// DefaultMinNodeVersion is the lowest Node.js version the server supports.
const DefaultMinNodeVersion = "18.0.0"

// nodeProbeTimeout bounds the node/npm version subprocesses.
const nodeProbeTimeout = 10 * time.Second

// NodeInfo describes a detected Node.js installation.
type NodeInfo struct {
	// Path is the resolved node executable.
	Path string

	// Version is the detected version, without the leading "v".
	Version string

	// NPMPath is the resolved npm executable, empty when npm is missing.
	NPMPath string

	// GlobalRoot is npm's global node_modules directory, empty when
	// it could not be determined.
	GlobalRoot string
}

// NodeDetector probes for a usable Node.js runtime.
type NodeDetector struct {
	logger     *slog.Logger
	minVersion string
	lookPath   func(string) (string, error)
	run        func(ctx context.Context, path string, args ...string) (string, error)
}

// NodeOption configures a NodeDetector.
type NodeOption func(*NodeDetector)

// WithMinVersion overrides the minimum accepted Node.js version.
func WithMinVersion(v string) NodeOption {
	return func(d *NodeDetector) {
		if v != "" {
			d.minVersion = v
		}
	}
}

// WithNodeLookPath overrides executable resolution; used in tests.
func WithNodeLookPath(fn func(string) (string, error)) NodeOption {
	return func(d *NodeDetector) {
		d.lookPath = fn
	}
}

// WithNodeRunner overrides subprocess execution; used in tests.
func WithNodeRunner(fn func(ctx context.Context, path string, args ...string) (string, error)) NodeOption {
	return func(d *NodeDetector) {
		d.run = fn
	}
}

// NewNodeDetector creates a NodeDetector.
func NewNodeDetector(logger *slog.Logger, opts ...NodeOption) *NodeDetector {
	d := &NodeDetector{
		logger:     logger,
		minVersion: DefaultMinNodeVersion,
		lookPath:   exec.LookPath,
	}
	d.run = d.runProbe
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect locates Node.js, validates its version against the minimum,
// and gathers npm metadata. Returns an error wrapping ErrNodeNotFound
// when node is missing, too old, or unresponsive.
func (d *NodeDetector) Detect(ctx context.Context) (*NodeInfo, error) {
	nodePath := ""
	for _, name := range nodeNames() {
		if p, err := d.lookPath(name); err == nil {
			nodePath = p
			break
		}
	}
	if nodePath == "" {
		return nil, errors.Wrap(mcperrors.ErrNodeNotFound, "not in PATH")
	}

	out, err := d.run(ctx, nodePath, "--version")
	if err != nil {
		return nil, errors.Wrapf(mcperrors.ErrNodeNotFound, "version probe: %v", err)
	}
	versionStr := strings.TrimPrefix(strings.TrimSpace(out), "v")

	detected, err := semver.NewVersion(versionStr)
	if err != nil {
		return nil, errors.Wrapf(mcperrors.ErrNodeNotFound, "unparseable version %q", versionStr)
	}
	minimum := semver.MustParse(d.minVersion)
	if detected.LessThan(minimum) {
		return nil, errors.Wrapf(mcperrors.ErrNodeNotFound,
			"version %s is below minimum %s", versionStr, d.minVersion)
	}

	info := &NodeInfo{
		Path:    nodePath,
		Version: versionStr,
	}

	// npm metadata is best-effort; node alone is enough to launch.
	if npmPath, err := d.lookPath(npmName()); err == nil {
		info.NPMPath = npmPath
		if root, err := d.run(ctx, npmPath, "root", "-g"); err == nil {
			info.GlobalRoot = strings.TrimSpace(root)
		} else {
			d.logger.Debug("npm global root probe failed", "error", err)
		}
	}

	return info, nil
}

func (d *NodeDetector) runProbe(ctx context.Context, path string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, nodeProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func nodeNames() []string {
	if runtime.GOOS == "windows" {
		return []string{"node.exe", "nodejs.exe", "node"}
	}
	return []string{"node", "nodejs"}
}

func npmName() string {
	if runtime.GOOS == "windows" {
		return "npm.exe"
	}
	return "npm"
}

// FindPackageDir locates an installed runtime-side package by checking
// npm's global root followed by the platform's well-known node_modules
// roots. Returns an empty string when the package is not installed.
func FindPackageDir(pkg string, info *NodeInfo) string {
	return findPackageDir(pkg, info, runtime.GOOS, paths.Home(), paths.AppData())
}

func findPackageDir(pkg string, info *NodeInfo, goos, home, appData string) string {
	var roots []string
	if info != nil && info.GlobalRoot != "" {
		roots = append(roots, info.GlobalRoot)
	}

	switch goos {
	case "windows":
		if appData != "" {
			roots = append(roots, filepath.Join(appData, "npm", "node_modules"))
		}
	case "darwin":
		roots = append(roots,
			"/usr/local/lib/node_modules",
			"/opt/homebrew/lib/node_modules",
			filepath.Join(home, ".npm-global", "lib", "node_modules"),
		)
	default:
		roots = append(roots,
			"/usr/lib/node_modules",
			"/usr/local/lib/node_modules",
			filepath.Join(home, ".npm-global", "lib", "node_modules"),
			filepath.Join(home, ".local", "lib", "node_modules"),
		)
	}

	for _, root := range roots {
		dir := filepath.Join(root, pkg)
		if fileExists(filepath.Join(dir, "package.json")) {
			return dir
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
