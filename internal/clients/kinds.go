package clients

import "mcpup/internal/capability"

// Kind identifies a supported client integration.
type Kind string

const (
	// KindClaudeDesktop is the Claude Desktop application.
	KindClaudeDesktop Kind = "claude-desktop"

	// KindStandardMCP is a generic MCP client reading ~/.mcp/config.json.
	KindStandardMCP Kind = "standard-mcp"

	// KindCline is the Cline VS Code extension.
	KindCline Kind = "cline"

	// KindCursor is the Cursor IDE.
	KindCursor Kind = "cursor"

	// KindContinue is the Continue VS Code extension.
	KindContinue Kind = "continue"
)

// Kinds returns all supported client kinds in priority order.
func Kinds() []Kind {
	return []Kind{
		KindClaudeDesktop,
		KindStandardMCP,
		KindCline,
		KindCursor,
		KindContinue,
	}
}

// Valid reports whether kind names a supported client.
func Valid(kind Kind) bool {
	_, ok := kindProfiles[kind]
	return ok
}

// profile holds the fixed per-kind detection heuristics.
type kindProfile struct {
	priority      int
	compatibility float64
	// preferred lists strategies in the order this client likes them;
	// the recommendation falls back through the global order when none
	// of these are available.
	preferred []capability.Strategy
	notes     []string
}

var kindProfiles = map[Kind]kindProfile{
	KindClaudeDesktop: {
		priority:      100,
		compatibility: 1.0,
		preferred:     []capability.Strategy{capability.StrategyUvxEphemeral, capability.StrategyNodeDirect},
		notes:         []string{"Primary MCP client", "Supports all launch methods"},
	},
	KindStandardMCP: {
		priority:      90,
		compatibility: 0.9,
		preferred:     []capability.Strategy{capability.StrategyNodeDirect},
		notes:         []string{"Standard MCP protocol", "Widely compatible"},
	},
	KindCline: {
		priority:      85,
		compatibility: 0.85,
		preferred:     []capability.Strategy{capability.StrategyUvxEphemeral},
		notes:         []string{"VS Code extension", "Prefers ephemeral execution"},
	},
	KindCursor: {
		priority:      80,
		compatibility: 0.8,
		preferred:     []capability.Strategy{capability.StrategyUvProject},
		notes:         []string{"Modern IDE", "Good uv integration"},
	},
	KindContinue: {
		priority:      75,
		compatibility: 0.75,
		preferred:     []capability.Strategy{capability.StrategyBridgeRun},
		notes:         []string{"VS Code extension", "Basic MCP support"},
	},
}
