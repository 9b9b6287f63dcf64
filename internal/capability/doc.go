// Package capability detects which package managers and runners are
// installed on the host.
//
// Detection resolves each known tool on PATH (with platform-aware
// suffix handling), runs a bounded version probe, and builds a ranked
// [Candidate] list split into two families: runtime-side Node.js
// package managers and bridge-side Python runners. A tool that cannot
// be resolved or whose probe fails is excluded silently; detection
// itself never returns an error and an empty result is a valid outcome
// that callers must treat as "no strategy available".
//
// Results are never cached: every call re-probes the host, so detection
// after an install reflects the new state.
package capability
