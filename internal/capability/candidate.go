package capability

// Family partitions candidates by which side of the bridge they manage.
type Family string

const (
	// FamilyRuntime covers Node.js package managers that install or run
	// the runtime-side server package (pnpm, yarn, npm, bun).
	FamilyRuntime Family = "runtime"

	// FamilyBridge covers Python-side runners that install or run the
	// bridge package (uvx, uv, pip).
	FamilyBridge Family = "bridge"
)

// Candidate describes a detected package manager or runner usable to
// install or launch the server. Candidates are immutable once detected
// and rebuilt on every detection pass.
type Candidate struct {
	// Name is the tool's canonical name (pnpm, yarn, npm, bun, uvx, uv, pip).
	Name string

	// Family indicates whether the tool is runtime-side or bridge-side.
	Family Family

	// Path is the resolved executable path.
	Path string

	// Version is the raw output of the tool's version probe.
	Version string

	// Priority ranks candidates; higher is preferred.
	Priority int

	// Features are freeform capability tags (fast, ephemeral, lockfile, ...).
	Features []string

	// Reliability is a fixed heuristic in [0,1] feeding success estimates.
	Reliability float64

	// Performance is a fixed heuristic in [0,1] used as a sort tiebreaker.
	Performance float64

	// InstallArgs are the subcommand tokens preceding the package
	// identifier in an install invocation.
	InstallArgs []string

	// RunArgs are the subcommand tokens preceding the package identifier
	// when the tool runs the server directly (empty when not supported).
	RunArgs []string

	// GlobalFlag is appended for global installs; empty when the tool
	// expresses global installs through InstallArgs instead.
	GlobalFlag string
}

// spec is the static description of a known candidate before detection
// fills in path and version.
type spec struct {
	name        string
	aliases     []string
	family      Family
	priority    int
	features    []string
	reliability float64
	performance float64
	installArgs []string
	runArgs     []string
	globalFlag  string
}

// knownSpecs is the fixed candidate catalog, bridge-side first.
// Priorities and scores match the preference order the planner relies on.
var knownSpecs = []spec{
	{
		name:        "uvx",
		family:      FamilyBridge,
		priority:    100,
		features:    []string{"ephemeral", "isolated", "fast", "no-install"},
		reliability: 0.95,
		performance: 1.0,
		installArgs: []string{"--from"},
		runArgs:     []string{"--from"},
	},
	{
		name:        "uv",
		family:      FamilyBridge,
		priority:    90,
		features:    []string{"fast", "reliable", "modern", "lockfile"},
		reliability: 0.95,
		performance: 1.0,
		installArgs: []string{"add"},
		runArgs:     []string{"run"},
	},
	{
		name: "pip",
		// Many Linux distributions ship only the versioned executable.
		aliases:     []string{"pip3"},
		family:      FamilyBridge,
		priority:    70,
		features:    []string{"universal", "stable", "fallback"},
		reliability: 0.9,
		performance: 0.6,
		installArgs: []string{"install"},
	},
	{
		name:        "pnpm",
		family:      FamilyRuntime,
		priority:    95,
		features:    []string{"fast", "efficient", "workspace", "lockfile"},
		reliability: 0.95,
		performance: 1.0,
		installArgs: []string{"add"},
		globalFlag:  "-g",
	},
	{
		name:        "bun",
		family:      FamilyRuntime,
		priority:    90,
		features:    []string{"ultra-fast", "all-in-one", "modern"},
		reliability: 0.85,
		performance: 1.0,
		installArgs: []string{"add"},
		globalFlag:  "-g",
	},
	{
		name:        "yarn",
		family:      FamilyRuntime,
		priority:    85,
		features:    []string{"workspace", "offline", "deterministic"},
		reliability: 0.9,
		performance: 0.9,
		// yarn expresses global installs as a subcommand, not a flag.
		installArgs: []string{"global", "add"},
	},
	{
		name:        "npm",
		family:      FamilyRuntime,
		priority:    80,
		features:    []string{"universal", "stable", "registry"},
		reliability: 1.0,
		performance: 0.8,
		installArgs: []string{"install"},
		globalFlag:  "-g",
	},
}
