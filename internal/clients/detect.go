package clients

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"mcpup/internal/capability"
	"mcpup/internal/paths"
)

// Location is a read-only snapshot of one candidate config file path.
// It is re-probed on every detection call and never cached across calls
// that mutate the filesystem.
type Location struct {
	// Label is a human-readable name for the location.
	Label string

	// Path is the config file path.
	Path string

	// Exists reports whether the file exists.
	Exists bool

	// Writable reports whether the file (or its parent directory, when
	// the file does not exist) can be written.
	Writable bool
}

// Integration describes one detected client integration.
type Integration struct {
	// Kind identifies the client.
	Kind Kind

	// Detected is true when any candidate location exists.
	Detected bool

	// Locations are the candidate config paths in preference order.
	Locations []Location

	// Priority ranks clients; higher is preferred.
	Priority int

	// Compatibility is a fixed heuristic per kind in [0,1].
	Compatibility float64

	// Recommended is the launch strategy suggested for this client,
	// chosen from what the host actually supports.
	Recommended capability.Strategy

	// Notes are freeform hints surfaced in summaries.
	Notes []string
}

// FirstWritable returns the first writable location, or nil when none is.
func (i *Integration) FirstWritable() *Location {
	for idx := range i.Locations {
		if i.Locations[idx].Writable {
			return &i.Locations[idx]
		}
	}
	return nil
}

// Detector probes the host for client integrations. Construct a fresh
// detection per call; results are never cached.
type Detector struct {
	logger  *slog.Logger
	goos    string
	home    string
	appData string
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithRoot overrides the OS, home, and AppData roots; used in tests to
// probe a scratch tree.
func WithRoot(goos, home, appData string) DetectorOption {
	return func(d *Detector) {
		d.goos = goos
		d.home = home
		d.appData = appData
	}
}

// NewDetector creates a Detector rooted at the current user's home.
func NewDetector(logger *slog.Logger, opts ...DetectorOption) *Detector {
	d := &Detector{
		logger:  logger,
		goos:    runtime.GOOS,
		home:    paths.Home(),
		appData: paths.AppData(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectAll probes every supported client kind and returns integrations
// sorted by (priority desc, compatibility desc). available is the set
// of launch strategies the host supports (see
// capability.AvailableStrategies); it drives the per-client
// recommendation.
//
// Note: the writability probe creates missing parent directories as a
// side effect, so repeated detection calls are not filesystem-neutral.
// This is deliberate detection-time setup — the directories are exactly
// the ones a later Write would have to create anyway.
func (d *Detector) DetectAll(available []capability.Strategy) []Integration {
	integrations := make([]Integration, 0, len(Kinds()))
	for _, kind := range Kinds() {
		integrations = append(integrations, d.detect(kind, available))
	}

	sort.SliceStable(integrations, func(i, j int) bool {
		if integrations[i].Priority != integrations[j].Priority {
			return integrations[i].Priority > integrations[j].Priority
		}
		return integrations[i].Compatibility > integrations[j].Compatibility
	})
	return integrations
}

// Detect probes a single client kind.
func (d *Detector) Detect(kind Kind, available []capability.Strategy) (Integration, bool) {
	if !Valid(kind) {
		return Integration{}, false
	}
	return d.detect(kind, available), true
}

func (d *Detector) detect(kind Kind, available []capability.Strategy) Integration {
	profile := kindProfiles[kind]

	cands := candidatePaths(kind, d.goos, d.home, d.appData)
	locations := make([]Location, 0, len(cands))
	detected := false
	for _, c := range cands {
		loc := checkLocation(c.label, c.path)
		if loc.Exists {
			detected = true
		}
		locations = append(locations, loc)
	}

	d.logger.Debug("client probed",
		"client", string(kind),
		"detected", detected,
		"locations", len(locations))

	return Integration{
		Kind:          kind,
		Detected:      detected,
		Locations:     locations,
		Priority:      profile.priority,
		Compatibility: profile.compatibility,
		Recommended:   capability.PickStrategy(available, profile.preferred...),
		Notes:         profile.notes,
	}
}

// checkLocation probes one path for existence and writability.
// For an existing file, writability is tested with an append-mode open.
// For a missing file, the parent directory is created (and kept) and
// writability reflects whether that creation succeeded.
func checkLocation(label, path string) Location {
	loc := Location{Label: label, Path: path}

	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		loc.Exists = true
		f, openErr := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
		if openErr == nil {
			f.Close()
			loc.Writable = true
		}
		return loc
	}

	parent := filepath.Dir(path)
	if mkErr := os.MkdirAll(parent, paths.DefaultDirPerm); mkErr == nil {
		loc.Writable = true
	}
	return loc
}
