package capability

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds each version-probe subprocess.
const DefaultProbeTimeout = 10 * time.Second

// Detector probes the host for known package managers and runners.
// Each call re-probes from scratch; nothing is cached between calls.
type Detector struct {
	logger   *slog.Logger
	timeout  time.Duration
	lookPath func(string) (string, error)
	probe    func(ctx context.Context, path string) (string, error)
}

// Option configures a Detector.
type Option func(*Detector)

// WithProbeTimeout overrides the per-candidate version probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(det *Detector) {
		if d > 0 {
			det.timeout = d
		}
	}
}

// WithLookPath overrides executable resolution; used in tests.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(det *Detector) {
		det.lookPath = fn
	}
}

// WithProbe overrides the version probe; used in tests.
func WithProbe(fn func(ctx context.Context, path string) (string, error)) Option {
	return func(det *Detector) {
		det.probe = fn
	}
}

// NewDetector creates a Detector. The logger is required; components
// receive their output sink explicitly rather than sharing a global one.
func NewDetector(logger *slog.Logger, opts ...Option) *Detector {
	d := &Detector{
		logger:   logger,
		timeout:  DefaultProbeTimeout,
		lookPath: exec.LookPath,
	}
	d.probe = d.runVersionProbe
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect probes for all known candidates across both families.
// It never fails; candidates whose executable is missing, whose version
// probe exits nonzero, or whose probe times out are simply excluded.
// Results are sorted by (priority desc, performance desc).
func (d *Detector) Detect(ctx context.Context) []Candidate {
	detected := make([]Candidate, 0, len(knownSpecs))

	for _, s := range knownSpecs {
		c, ok := d.detectOne(ctx, s)
		if !ok {
			continue
		}
		detected = append(detected, c)
	}

	sortCandidates(detected)
	return detected
}

// DetectFamily probes only the candidates of one family.
func (d *Detector) DetectFamily(ctx context.Context, family Family) []Candidate {
	all := d.Detect(ctx)
	out := make([]Candidate, 0, len(all))
	for _, c := range all {
		if c.Family == family {
			out = append(out, c)
		}
	}
	return out
}

// detectOne resolves and probes a single known candidate.
func (d *Detector) detectOne(ctx context.Context, s spec) (Candidate, bool) {
	path, ok := d.resolve(s)
	if !ok {
		d.logger.Debug("candidate not on PATH", "candidate", s.name)
		return Candidate{}, false
	}

	version, err := d.probe(ctx, path)
	if err != nil {
		// A failing probe excludes the candidate, never the whole pass.
		d.logger.Debug("version probe failed", "candidate", s.name, "error", err)
		return Candidate{}, false
	}

	return Candidate{
		Name:        s.name,
		Family:      s.family,
		Path:        path,
		Version:     strings.TrimSpace(version),
		Priority:    s.priority,
		Features:    s.features,
		Reliability: s.reliability,
		Performance: s.performance,
		InstallArgs: s.installArgs,
		RunArgs:     s.runArgs,
		GlobalFlag:  s.globalFlag,
	}, true
}

// resolve looks up the candidate's executable on PATH. The canonical
// name is tried first, then each alias (pip3 for pip); every name gets
// the Windows suffix retry.
func (d *Detector) resolve(s spec) (string, bool) {
	for _, name := range append([]string{s.name}, s.aliases...) {
		if path, err := d.lookPath(name); err == nil {
			return path, true
		}
		if runtime.GOOS == "windows" {
			if path, err := d.lookPath(name + ".exe"); err == nil {
				return path, true
			}
		}
	}
	return "", false
}

// runVersionProbe invokes `<path> --version` with a bounded timeout.
func (d *Detector) runVersionProbe(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func sortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Priority != cands[j].Priority {
			return cands[i].Priority > cands[j].Priority
		}
		return cands[i].Performance > cands[j].Performance
	})
}
