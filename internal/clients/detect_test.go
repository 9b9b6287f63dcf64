package clients

import (
	"os"
	"path/filepath"
	"testing"

	"mcpup/internal/capability"
	"mcpup/internal/logging"
)

var allStrategies = []capability.Strategy{
	capability.StrategyUvxEphemeral,
	capability.StrategyUvProject,
	capability.StrategyNodeDirect,
	capability.StrategyBridgeRun,
}

func newTestDetector(t *testing.T, home string) *Detector {
	t.Helper()
	return NewDetector(logging.ForTest(t), WithRoot("linux", home, ""))
}

func TestDetectAllEmptyHome(t *testing.T) {
	home := t.TempDir()
	d := newTestDetector(t, home)

	got := d.DetectAll(allStrategies)

	if len(got) != len(Kinds()) {
		t.Fatalf("DetectAll() returned %d integrations, want %d", len(got), len(Kinds()))
	}

	// Priority ordering: claude-desktop first, continue last.
	if got[0].Kind != KindClaudeDesktop {
		t.Errorf("first integration = %s, want claude-desktop", got[0].Kind)
	}
	if got[len(got)-1].Kind != KindContinue {
		t.Errorf("last integration = %s, want continue", got[len(got)-1].Kind)
	}

	for _, integ := range got {
		if integ.Detected {
			t.Errorf("%s detected on empty home", integ.Kind)
		}
		// Missing files in a writable home: every location is writable
		// because the parent directories could be created.
		for _, loc := range integ.Locations {
			if loc.Exists {
				t.Errorf("%s location %s should not exist", integ.Kind, loc.Path)
			}
			if !loc.Writable {
				t.Errorf("%s location %s should be writable", integ.Kind, loc.Path)
			}
		}
	}
}

func TestDetectAllCreatesParentDirs(t *testing.T) {
	home := t.TempDir()
	d := newTestDetector(t, home)

	d.DetectAll(allStrategies)

	// The probe creates parent directories as a documented side effect.
	if _, err := os.Stat(filepath.Join(home, ".mcp")); err != nil {
		t.Errorf(".mcp parent directory not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "claude")); err != nil {
		t.Errorf(".config/claude parent directory not created: %v", err)
	}
}

func TestDetectExistingConfig(t *testing.T) {
	home := t.TempDir()
	cfgPath := filepath.Join(home, ".config", "claude", "claude_desktop_config.json")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := newTestDetector(t, home)
	integ, ok := d.Detect(KindClaudeDesktop, allStrategies)
	if !ok {
		t.Fatal("Detect() reported unknown kind")
	}

	if !integ.Detected {
		t.Error("claude-desktop should be detected")
	}
	var found bool
	for _, loc := range integ.Locations {
		if loc.Path == cfgPath {
			found = true
			if !loc.Exists || !loc.Writable {
				t.Errorf("location %+v, want exists and writable", loc)
			}
		}
	}
	if !found {
		t.Errorf("expected location %s in %+v", cfgPath, integ.Locations)
	}
}

func TestDetectUnwritableLocation(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are meaningless as root")
	}

	home := t.TempDir()
	cfgPath := filepath.Join(home, ".mcp", "config.json")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte("{}"), 0o400); err != nil {
		t.Fatal(err)
	}

	d := newTestDetector(t, home)
	integ, _ := d.Detect(KindStandardMCP, allStrategies)

	if !integ.Detected {
		t.Fatal("standard-mcp should be detected")
	}
	if integ.Locations[0].Writable {
		t.Error("read-only config file should not be writable")
	}
	// The second location remains usable.
	if loc := integ.FirstWritable(); loc == nil || loc.Path == cfgPath {
		t.Errorf("FirstWritable() = %v, want the XDG fallback", loc)
	}
}

func TestRecommendedStrategyPerKind(t *testing.T) {
	home := t.TempDir()
	d := newTestDetector(t, home)

	tests := []struct {
		kind      Kind
		available []capability.Strategy
		want      capability.Strategy
	}{
		{KindClaudeDesktop, allStrategies, capability.StrategyUvxEphemeral},
		{KindClaudeDesktop, []capability.Strategy{capability.StrategyNodeDirect, capability.StrategyBridgeRun}, capability.StrategyNodeDirect},
		{KindCursor, allStrategies, capability.StrategyUvProject},
		{KindContinue, allStrategies, capability.StrategyBridgeRun},
		// Nothing but the always-available fallback.
		{KindCline, []capability.Strategy{capability.StrategyBridgeRun}, capability.StrategyBridgeRun},
	}

	for _, tt := range tests {
		integ, _ := d.Detect(tt.kind, tt.available)
		if integ.Recommended != tt.want {
			t.Errorf("%s recommended = %s, want %s", tt.kind, integ.Recommended, tt.want)
		}
	}
}

func TestDetectUnknownKind(t *testing.T) {
	d := newTestDetector(t, t.TempDir())
	if _, ok := d.Detect(Kind("zed"), allStrategies); ok {
		t.Error("unknown kind should not be detected")
	}
}

func TestWindowsPathsRequireAppData(t *testing.T) {
	if got := candidatePaths(KindClaudeDesktop, "windows", `C:\Users\u`, ""); got != nil {
		t.Errorf("windows paths without APPDATA = %v, want nil", got)
	}

	got := candidatePaths(KindClaudeDesktop, "windows", `C:\Users\u`, `C:\Users\u\AppData\Roaming`)
	if len(got) != 1 {
		t.Fatalf("windows claude paths = %v, want one entry", got)
	}
}
