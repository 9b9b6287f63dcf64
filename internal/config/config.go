// Package config provides configuration management for mcpup using Viper.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"mcpup/internal/launcher"
	"mcpup/internal/paths"
	"mcpup/internal/plan"
	"mcpup/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = "mcpup"

// Config represents the top-level configuration structure.
type Config struct {
	Version int           `mapstructure:"version" yaml:"version"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Install InstallConfig `mapstructure:"install" yaml:"install"`
	Launch  LaunchConfig  `mapstructure:"launch" yaml:"launch"`
	Clients ClientsConfig `mapstructure:"clients" yaml:"clients"`
}

// ServerConfig names the server and its packages.
type ServerConfig struct {
	Name           string `mapstructure:"name" yaml:"name"`
	Command        string `mapstructure:"command" yaml:"command"`
	RuntimePackage string `mapstructure:"runtime_package" yaml:"runtime_package"`
	BridgePackage  string `mapstructure:"bridge_package" yaml:"bridge_package"`
}

// InstallConfig tunes the install flow.
type InstallConfig struct {
	Mode           string   `mapstructure:"mode" yaml:"mode"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	ExtraArgs      []string `mapstructure:"extra_args" yaml:"extra_args"`
}

// LaunchConfig tunes the launch flow.
type LaunchConfig struct {
	GraceSeconds   int               `mapstructure:"grace_seconds" yaml:"grace_seconds"`
	MinNodeVersion string            `mapstructure:"min_node_version" yaml:"min_node_version"`
	Args           []string          `mapstructure:"args" yaml:"args"`
	Env            map[string]string `mapstructure:"env" yaml:"env"`
}

// ClientsConfig tunes client config registration.
type ClientsConfig struct {
	Backup bool     `mapstructure:"backup" yaml:"backup"`
	Only   []string `mapstructure:"only" yaml:"only"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support, e.g. MCPUP_INSTALL_MODE
	viper.SetEnvPrefix("MCPUP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("server.name", AppName)
	viper.SetDefault("server.command", "mcpup-server")
	viper.SetDefault("server.runtime_package", "@mcpup/server")
	viper.SetDefault("server.bridge_package", "mcpup-mcp")
	viper.SetDefault("install.mode", string(plan.ModeAuto))
	viper.SetDefault("install.timeout_seconds", 300)
	viper.SetDefault("launch.grace_seconds", 5)
	viper.SetDefault("launch.min_node_version", launcher.DefaultMinNodeVersion)
	viper.SetDefault("clients.backup", true)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Name:           AppName,
			Command:        "mcpup-server",
			RuntimePackage: "@mcpup/server",
			BridgePackage:  "mcpup-mcp",
		},
		Install: InstallConfig{
			Mode:           string(plan.ModeAuto),
			TimeoutSeconds: 300,
		},
		Launch: LaunchConfig{
			GraceSeconds:   5,
			MinNodeVersion: launcher.DefaultMinNodeVersion,
		},
		Clients: ClientsConfig{
			Backup: true,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(paths.ToolConfigDir(), "config.yaml")
}

// Save writes cfg to path atomically as YAML.
func Save(cfg *Config, path string) error {
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return err
	}
	return fileutil.AtomicWriteYAML(path, cfg)
}
