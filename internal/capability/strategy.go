package capability

// Strategy identifies a way of launching the server: a candidate kind
// combined with an execution mode.
type Strategy string

const (
	// StrategyUvxEphemeral runs the bridge package through uvx without a
	// persistent installation.
	StrategyUvxEphemeral Strategy = "uvx-ephemeral"

	// StrategyUvProject runs the bridge package through uv in project mode.
	StrategyUvProject Strategy = "uv-project"

	// StrategyNodeDirect executes the installed runtime-side package with
	// Node.js directly.
	StrategyNodeDirect Strategy = "node-direct"

	// StrategyBridgeRun invokes the pip-installed console command. This is
	// the last-resort strategy and is always considered available.
	StrategyBridgeRun Strategy = "bridge-run"
)

// strategyPreference is the global fallback order when choosing a
// strategy for a client that has no stronger preference.
var strategyPreference = []Strategy{
	StrategyUvxEphemeral,
	StrategyUvProject,
	StrategyNodeDirect,
	StrategyBridgeRun,
}

// AvailableStrategies derives which launch strategies the detected
// candidates support, in preference order. StrategyBridgeRun is always
// included: a pip-installed console script needs no detected manager to
// be invoked. StrategyNodeDirect is available when any runtime-side
// manager was detected, since those ship with (or require) Node.js.
func AvailableStrategies(cands []Candidate) []Strategy {
	byName := make(map[string]bool, len(cands))
	runtimeSide := false
	for _, c := range cands {
		byName[c.Name] = true
		if c.Family == FamilyRuntime {
			runtimeSide = true
		}
	}

	available := make([]Strategy, 0, len(strategyPreference))
	for _, s := range strategyPreference {
		switch s {
		case StrategyUvxEphemeral:
			if byName["uvx"] {
				available = append(available, s)
			}
		case StrategyUvProject:
			if byName["uv"] {
				available = append(available, s)
			}
		case StrategyNodeDirect:
			if runtimeSide {
				available = append(available, s)
			}
		case StrategyBridgeRun:
			available = append(available, s)
		}
	}
	return available
}

// PickStrategy returns the first strategy from preferred that is in the
// available set, falling back through the global preference order.
// available must be non-empty (AvailableStrategies always is).
func PickStrategy(available []Strategy, preferred ...Strategy) Strategy {
	has := make(map[Strategy]bool, len(available))
	for _, s := range available {
		has[s] = true
	}
	for _, s := range preferred {
		if has[s] {
			return s
		}
	}
	for _, s := range strategyPreference {
		if has[s] {
			return s
		}
	}
	return StrategyBridgeRun
}

// StrategyForCandidate maps a candidate to the strategy its launch would
// use. The mapping is total: every candidate resolves to exactly one
// strategy.
func StrategyForCandidate(c Candidate) Strategy {
	switch c.Name {
	case "uvx":
		return StrategyUvxEphemeral
	case "uv":
		return StrategyUvProject
	case "pip":
		return StrategyBridgeRun
	default:
		return StrategyNodeDirect
	}
}
