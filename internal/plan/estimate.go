package plan

import (
	"time"

	"mcpup/internal/capability"
)

// Per-candidate installation time estimates. Unknown names fall back to
// defaultInstallTime.
var installTimes = map[string]time.Duration{
	"uvx":  5 * time.Second,
	"uv":   15 * time.Second,
	"pnpm": 20 * time.Second,
	"yarn": 25 * time.Second,
	"npm":  35 * time.Second,
}

const defaultInstallTime = 30 * time.Second

// Per-mode persistent disk usage estimates.
var diskUsage = map[Mode]int64{
	ModeEphemeral: 0,
	ModeProject:   50 * 1024 * 1024,
	ModeGlobal:    100 * 1024 * 1024,
}

// maxSuccessProbability caps the estimate; nothing is ever certain.
const maxSuccessProbability = 0.99

// trustedBase is the base probability for the two most-trusted
// bridge-side candidates, which have no per-candidate reliability worth
// distinguishing.
const trustedBase = 0.95

func estimateTime(c capability.Candidate) time.Duration {
	if t, ok := installTimes[c.Name]; ok {
		return t
	}
	return defaultInstallTime
}

func estimateDisk(mode Mode) int64 {
	return diskUsage[mode]
}

// successProbability starts from the candidate's reliability (or the
// trusted base for uvx/uv) and adds 2% per available fallback, capped
// at 8% of bonus and 0.99 overall.
func successProbability(primary capability.Candidate, fallbacks int) float64 {
	base := primary.Reliability
	if primary.Name == "uvx" || primary.Name == "uv" {
		base = trustedBase
	}

	bonus := float64(fallbacks) * 0.02
	if bonus > 0.08 {
		bonus = 0.08
	}

	p := base + bonus
	if p > maxSuccessProbability {
		p = maxSuccessProbability
	}
	if p < 0 {
		p = 0
	}
	return p
}
