// Package clients detects MCP client integrations on the host.
//
// A client integration is an external application (Claude Desktop,
// Cursor, Cline, Continue, or a generic MCP client) that reads a JSON
// configuration file to learn how to start the server. For each
// supported kind, detection computes the platform-specific candidate
// config paths, probes existence and writability, and recommends a
// launch strategy from what the host's detected capabilities support.
//
// The writability probe for a missing file creates the parent directory
// and leaves it in place; see [Detector.DetectAll] for why repeated
// detection is therefore not free of filesystem side effects.
package clients
