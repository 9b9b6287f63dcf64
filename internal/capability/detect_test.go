package capability

import (
	"context"
	"os/exec"
	"testing"

	"github.com/cockroachdb/errors"

	"mcpup/internal/logging"
)

// fakeHost builds lookPath/probe funcs simulating a host where only the
// named tools exist, each reporting the given version.
func fakeHost(versions map[string]string) (func(string) (string, error), func(context.Context, string) (string, error)) {
	lookPath := func(name string) (string, error) {
		if _, ok := versions[name]; ok {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
	probe := func(_ context.Context, path string) (string, error) {
		for name, v := range versions {
			if path == "/usr/bin/"+name {
				return v + "\n", nil
			}
		}
		return "", errors.New("unknown executable")
	}
	return lookPath, probe
}

func TestDetectOrdering(t *testing.T) {
	lookPath, probe := fakeHost(map[string]string{
		"npm":  "10.2.0",
		"pnpm": "9.1.0",
		"uvx":  "uvx 0.4.18",
	})
	d := NewDetector(logging.ForTest(t), WithLookPath(lookPath), WithProbe(probe))

	got := d.Detect(context.Background())

	wantOrder := []string{"uvx", "pnpm", "npm"}
	if len(got) != len(wantOrder) {
		t.Fatalf("detected %d candidates, want %d", len(got), len(wantOrder))
	}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Errorf("position %d = %s, want %s", i, got[i].Name, name)
		}
	}
	if got[0].Version != "uvx 0.4.18" {
		t.Errorf("version not trimmed and captured: %q", got[0].Version)
	}
}

func TestDetectEmptyHost(t *testing.T) {
	lookPath, probe := fakeHost(nil)
	d := NewDetector(logging.ForTest(t), WithLookPath(lookPath), WithProbe(probe))

	if got := d.Detect(context.Background()); len(got) != 0 {
		t.Errorf("Detect() on empty host = %v, want empty", got)
	}
}

func TestDetectPip3AliasResolvesAsPip(t *testing.T) {
	// Hosts that only ship the versioned executable still get the pip
	// fallback candidate under its canonical name.
	lookPath, probe := fakeHost(map[string]string{"pip3": "pip 24.0"})
	d := NewDetector(logging.ForTest(t), WithLookPath(lookPath), WithProbe(probe))

	got := d.Detect(context.Background())
	if len(got) != 1 {
		t.Fatalf("detected %d candidates, want 1", len(got))
	}
	if got[0].Name != "pip" {
		t.Errorf("Name = %q, want pip", got[0].Name)
	}
	if got[0].Path != "/usr/bin/pip3" {
		t.Errorf("Path = %q, want /usr/bin/pip3", got[0].Path)
	}
	if StrategyForCandidate(got[0]) != StrategyBridgeRun {
		t.Errorf("strategy = %s, want %s", StrategyForCandidate(got[0]), StrategyBridgeRun)
	}
}

func TestDetectProbeFailureExcludesCandidate(t *testing.T) {
	lookPath, _ := fakeHost(map[string]string{"yarn": "", "npm": ""})
	probe := func(_ context.Context, path string) (string, error) {
		if path == "/usr/bin/yarn" {
			return "", errors.New("exit status 1")
		}
		return "10.2.0", nil
	}
	d := NewDetector(logging.ForTest(t), WithLookPath(lookPath), WithProbe(probe))

	got := d.Detect(context.Background())
	if len(got) != 1 || got[0].Name != "npm" {
		t.Errorf("Detect() = %v, want only npm", got)
	}
}

func TestDetectProbeTimeoutExcludesCandidate(t *testing.T) {
	lookPath, _ := fakeHost(map[string]string{"pip": ""})
	// Simulate a probe that hit its deadline, the way a killed
	// subprocess surfaces it.
	probe := func(ctx context.Context, _ string) (string, error) {
		return "", context.DeadlineExceeded
	}
	d := NewDetector(logging.ForTest(t), WithLookPath(lookPath), WithProbe(probe))

	if got := d.Detect(context.Background()); len(got) != 0 {
		t.Errorf("timed-out candidate should be excluded, got %v", got)
	}
}

func TestDetectFamily(t *testing.T) {
	lookPath, probe := fakeHost(map[string]string{
		"uv":  "uv 0.4.18",
		"npm": "10.2.0",
	})
	d := NewDetector(logging.ForTest(t), WithLookPath(lookPath), WithProbe(probe))

	bridge := d.DetectFamily(context.Background(), FamilyBridge)
	if len(bridge) != 1 || bridge[0].Name != "uv" {
		t.Errorf("DetectFamily(bridge) = %v, want uv", bridge)
	}

	runtimeSide := d.DetectFamily(context.Background(), FamilyRuntime)
	if len(runtimeSide) != 1 || runtimeSide[0].Name != "npm" {
		t.Errorf("DetectFamily(runtime) = %v, want npm", runtimeSide)
	}
}

func TestAvailableStrategies(t *testing.T) {
	tests := []struct {
		name  string
		tools map[string]string
		want  []Strategy
	}{
		{
			name:  "everything installed",
			tools: map[string]string{"uvx": "1", "uv": "1", "npm": "1"},
			want:  []Strategy{StrategyUvxEphemeral, StrategyUvProject, StrategyNodeDirect, StrategyBridgeRun},
		},
		{
			name:  "bare host still has bridge-run",
			tools: nil,
			want:  []Strategy{StrategyBridgeRun},
		},
		{
			name:  "runtime managers imply node-direct",
			tools: map[string]string{"yarn": "1"},
			want:  []Strategy{StrategyNodeDirect, StrategyBridgeRun},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookPath, probe := fakeHost(tt.tools)
			d := NewDetector(logging.ForTest(t), WithLookPath(lookPath), WithProbe(probe))
			cands := d.Detect(context.Background())

			got := AvailableStrategies(cands)
			if len(got) != len(tt.want) {
				t.Fatalf("AvailableStrategies() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("strategy %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPickStrategy(t *testing.T) {
	available := []Strategy{StrategyUvProject, StrategyNodeDirect, StrategyBridgeRun}

	if got := PickStrategy(available, StrategyUvxEphemeral, StrategyNodeDirect); got != StrategyNodeDirect {
		t.Errorf("PickStrategy() = %s, want node-direct (first available preference)", got)
	}
	if got := PickStrategy(available); got != StrategyUvProject {
		t.Errorf("PickStrategy() with no preference = %s, want uv-project", got)
	}
}

func TestStrategyForCandidateIsTotal(t *testing.T) {
	for _, s := range knownSpecs {
		c := Candidate{Name: s.name, Family: s.family}
		if got := StrategyForCandidate(c); got == "" {
			t.Errorf("StrategyForCandidate(%s) returned empty strategy", s.name)
		}
	}

	// Unknown candidates still resolve deterministically.
	if got := StrategyForCandidate(Candidate{Name: "mystery"}); got != StrategyNodeDirect {
		t.Errorf("unknown candidate = %s, want node-direct", got)
	}
}
