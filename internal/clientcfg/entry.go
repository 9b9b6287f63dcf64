package clientcfg

import (
	"github.com/cockroachdb/errors"

	"mcpup/internal/capability"
	"mcpup/internal/paths"
)

// ServerEntry is the JSON fragment registered under the server's name
// in a client config file.
type ServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Cwd     string            `json:"cwd,omitempty"`
}

// Options describe the server being registered. Fields the chosen
// strategy does not need are ignored.
type Options struct {
	// Command is the console entry point of the server.
	Command string

	// RuntimePackage is the Node-side package name.
	RuntimePackage string

	// BridgePackage is the Python-side package or source spec.
	BridgePackage string

	// Args are extra server arguments appended to every entry.
	Args []string

	// Env entries are merged over the strategy's defaults.
	Env map[string]string

	// Cwd sets the entry's working directory. Required for the
	// uv-project strategy, optional otherwise.
	Cwd string

	// NodePath and ScriptPath pin the node-direct entry to a resolved
	// runtime. When ScriptPath is empty, node-direct falls back to npx.
	NodePath   string
	ScriptPath string
}

// EntryFor renders the config entry that launches the server through
// the given strategy. Candidate paths are used when the tool was
// detected, bare names otherwise so the entry stays portable.
func EntryFor(strategy capability.Strategy, cands []capability.Candidate, opts Options) (ServerEntry, error) {
	switch strategy {
	case capability.StrategyUvxEphemeral:
		args := append([]string{"--from", opts.BridgePackage, opts.Command}, opts.Args...)
		return ServerEntry{
			Command: candidatePath(cands, "uvx"),
			Args:    args,
			Env:     mergeEnv(map[string]string{"UV_CACHE_DIR": paths.UvCacheDir()}, opts.Env),
			Cwd:     opts.Cwd,
		}, nil

	case capability.StrategyUvProject:
		return ServerEntry{
			Command: candidatePath(cands, "uv"),
			Args:    append([]string{"run", opts.Command}, opts.Args...),
			Env:     opts.Env,
			Cwd:     opts.Cwd,
		}, nil

	case capability.StrategyNodeDirect:
		env := mergeEnv(map[string]string{"NODE_ENV": "production"}, opts.Env)
		if opts.ScriptPath != "" {
			nodePath := opts.NodePath
			if nodePath == "" {
				nodePath = "node"
			}
			return ServerEntry{
				Command: nodePath,
				Args:    append([]string{opts.ScriptPath}, opts.Args...),
				Env:     env,
				Cwd:     opts.Cwd,
			}, nil
		}
		return ServerEntry{
			Command: "npx",
			Args:    append([]string{opts.RuntimePackage}, opts.Args...),
			Env:     env,
			Cwd:     opts.Cwd,
		}, nil

	case capability.StrategyBridgeRun:
		return ServerEntry{
			Command: opts.Command,
			Args:    opts.Args,
			Env:     opts.Env,
			Cwd:     opts.Cwd,
		}, nil

	default:
		return ServerEntry{}, errors.Newf("no config entry for strategy %q", strategy)
	}
}

func candidatePath(cands []capability.Candidate, name string) string {
	for _, c := range cands {
		if c.Name == name && c.Path != "" {
			return c.Path
		}
	}
	return name
}

func mergeEnv(defaults, overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return defaults
	}
	merged := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
