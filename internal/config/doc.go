// Package config provides configuration management for the mcpup CLI.
//
// This package handles loading, saving, and validating the tool's own
// configuration file. It is distinct from MCP client configurations,
// which are managed by the clientcfg package.
//
// The default configuration file location is ~/.config/mcpup/config.yaml.
// Every value can also be supplied through MCPUP_* environment variables,
// e.g. MCPUP_INSTALL_MODE=global.
package config
