package launcher

import (
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"mcpup/internal/capability"
	mcperrors "mcpup/internal/errors"
)

// DefaultStopGrace is how long Stop waits after the interrupt signal
// before force-killing the child.
const DefaultStopGrace = 5 * time.Second

// Config carries everything needed to assemble and run the server
// process. Env entries apply to the child only, never to mcpup itself.
type Config struct {
	// Command is the console entry point of the server, e.g. "mcpup-server".
	Command string

	// RuntimePackage is the Node-side package name.
	RuntimePackage string

	// BridgePackage is the Python-side package name or source spec.
	BridgePackage string

	// Args are passed through to the server verbatim.
	Args []string

	// Env holds KEY=VALUE pairs merged over the inherited environment.
	Env []string

	// Dir is the child's working directory. Empty means inherit,
	// except for ephemeral runs which get a private temp directory.
	Dir string

	// Ephemeral marks runs whose working state should not outlive the
	// process. Temp directories created for such runs are removed once
	// the process finishes.
	Ephemeral bool
}

// CommandFor builds the argv that launches the server through the given
// candidate's strategy. node may be nil for non-node strategies.
func CommandFor(c capability.Candidate, cfg Config, node *NodeInfo) ([]string, error) {
	switch capability.StrategyForCandidate(c) {
	case capability.StrategyUvxEphemeral:
		argv := []string{c.Path, "--from", cfg.BridgePackage, cfg.Command}
		return append(argv, cfg.Args...), nil

	case capability.StrategyUvProject:
		argv := []string{c.Path, "run", cfg.Command}
		return append(argv, cfg.Args...), nil

	case capability.StrategyNodeDirect:
		if node == nil {
			return nil, errors.Wrap(mcperrors.ErrNodeNotFound, "node-direct launch")
		}
		dir := FindPackageDir(cfg.RuntimePackage, node)
		if dir == "" {
			return nil, errors.Wrapf(mcperrors.ErrStrategyFailed,
				"package %s is not installed", cfg.RuntimePackage)
		}
		argv := []string{node.Path, filepath.Join(dir, "dist", "index.js")}
		return append(argv, cfg.Args...), nil

	default:
		argv := []string{cfg.Command}
		return append(argv, cfg.Args...), nil
	}
}
