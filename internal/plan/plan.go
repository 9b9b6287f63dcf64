package plan

import (
	"time"

	"github.com/cockroachdb/errors"

	"mcpup/internal/capability"
	mcperrors "mcpup/internal/errors"
)

// Mode is the requested or resolved installation mode.
type Mode string

const (
	// ModeAuto lets the planner pick the best detected candidate.
	ModeAuto Mode = "auto"

	// ModeEphemeral runs without a persistent installation (uvx).
	ModeEphemeral Mode = "ephemeral"

	// ModeProject installs into the current project (uv).
	ModeProject Mode = "project-local"

	// ModeGlobal installs globally through a runtime-side manager or pip.
	ModeGlobal Mode = "global"
)

// Modes returns the valid request modes.
func Modes() []Mode {
	return []Mode{ModeAuto, ModeEphemeral, ModeProject, ModeGlobal}
}

// ValidMode reports whether m is a recognized request mode.
func ValidMode(m Mode) bool {
	switch m {
	case ModeAuto, ModeEphemeral, ModeProject, ModeGlobal:
		return true
	}
	return false
}

// Plan is an ordered installation or launch strategy: a primary
// candidate plus ranked fallbacks, with rough cost estimates. A plan is
// built once per request, consumed immediately, and never mutated.
type Plan struct {
	// Primary is the candidate tried first.
	Primary capability.Candidate

	// Fallbacks are the remaining candidates in pool order.
	Fallbacks []capability.Candidate

	// Mode is the resolved mode; never ModeAuto.
	Mode Mode

	// EstimatedTime is the rough duration of the primary attempt.
	EstimatedTime time.Duration

	// EstimatedDisk is the rough persistent disk usage in bytes.
	EstimatedDisk int64

	// SuccessProbability estimates the chance any strategy in the plan
	// succeeds, in [0, 0.99].
	SuccessProbability float64
}

// New builds a plan from the merged candidate pool.
//
// The pool must already be ranked (bridge-side and runtime-side
// candidates merged, as returned by capability.Detector.Detect). A
// mode-specific request restricts the primary to candidates resolving
// to that mode; preferred, when present in the pool, overrides the
// automatic choice. The resolved mode always derives from the primary
// candidate's identity, regardless of what was requested.
func New(pool []capability.Candidate, mode Mode, preferred string) (*Plan, error) {
	if len(pool) == 0 {
		return nil, errors.Wrap(mcperrors.ErrNoCandidates, "cannot build plan")
	}
	if !ValidMode(mode) {
		return nil, errors.Wrapf(mcperrors.ErrInvalidMode, "%q", mode)
	}

	primary := selectPrimary(pool, mode, preferred)

	fallbacks := make([]capability.Candidate, 0, len(pool)-1)
	for _, c := range pool {
		if c.Name != primary.Name {
			fallbacks = append(fallbacks, c)
		}
	}

	resolved := ModeFor(primary)

	return &Plan{
		Primary:            primary,
		Fallbacks:          fallbacks,
		Mode:               resolved,
		EstimatedTime:      estimateTime(primary),
		EstimatedDisk:      estimateDisk(resolved),
		SuccessProbability: successProbability(primary, len(fallbacks)),
	}, nil
}

// selectPrimary picks the primary candidate. The pool is ranked, so the
// first match wins within each rule.
func selectPrimary(pool []capability.Candidate, mode Mode, preferred string) capability.Candidate {
	if preferred != "" {
		for _, c := range pool {
			if c.Name == preferred {
				return c
			}
		}
	}

	if mode != ModeAuto {
		for _, c := range pool {
			if ModeFor(c) == mode {
				return c
			}
		}
	}

	// Auto, or the requested mode has no matching candidate: take the
	// highest-ranked candidate overall.
	return pool[0]
}

// ModeFor resolves the installation mode a candidate implies. The
// mapping is deterministic and total: every candidate maps to exactly
// one mode, and an ephemeral-capable candidate forces ephemeral mode
// regardless of what was requested.
func ModeFor(c capability.Candidate) Mode {
	switch c.Name {
	case "uvx":
		return ModeEphemeral
	case "uv":
		return ModeProject
	default:
		return ModeGlobal
	}
}
