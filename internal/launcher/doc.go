// Package launcher runs the MCP server as a child process. It resolves
// the launch command for a capability candidate, validates the Node.js
// runtime when the node-direct path is taken, and manages the child's
// lifecycle including graceful shutdown and ephemeral directory cleanup.
package launcher
