package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mcpup/internal/capability"
	"mcpup/internal/clients"
	"mcpup/internal/config"
	"mcpup/internal/launcher"
)

// CapabilityCheck verifies that at least one package manager usable for
// installation was detected on the host.
type CapabilityCheck struct {
	Detector *capability.Detector
}

func (c *CapabilityCheck) Name() string     { return "package-managers" }
func (c *CapabilityCheck) Category() string { return "capability" }

func (c *CapabilityCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	cands := c.Detector.Detect(ctx)
	if len(cands) == 0 {
		result.Status = SeverityError
		result.Message = "no package managers detected"
		result.FixHint = "install uv (https://docs.astral.sh/uv/) or Node.js with npm"
		return result
	}

	names := make([]string, 0, len(cands))
	for _, cand := range cands {
		names = append(names, cand.Name)
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d package manager(s) detected", len(cands))
	result.Details = map[string]any{"detected": strings.Join(names, ", ")}

	if cands[0].Name != "uvx" {
		result.Status = SeverityInfo
		result.Message += "; uvx not available, installs will use a slower path"
		result.FixHint = "install uv to enable ephemeral execution"
	}
	return result
}

// NodeCheck verifies the Node.js runtime meets the minimum version.
type NodeCheck struct {
	Detector *launcher.NodeDetector
}

func (c *NodeCheck) Name() string     { return "node-runtime" }
func (c *NodeCheck) Category() string { return "node" }

func (c *NodeCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	info, err := c.Detector.Detect(ctx)
	if err != nil {
		// Node is only required for the node-direct launch path.
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("Node.js unusable: %v", err)
		result.FixHint = "install Node.js 18 or newer to enable direct launches"
		return result
	}

	result.Status = SeverityPass
	result.Message = "Node.js " + info.Version
	result.Details = map[string]any{"path": info.Path}
	if info.GlobalRoot != "" {
		result.Details["global_root"] = info.GlobalRoot
	}
	return result
}

// ClientCheck reports which MCP clients are present and whether any of
// their config locations can be written.
type ClientCheck struct {
	Clients      *clients.Detector
	Capabilities *capability.Detector
}

func (c *ClientCheck) Name() string     { return "client-configs" }
func (c *ClientCheck) Category() string { return "clients" }

func (c *ClientCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	available := capability.AvailableStrategies(c.Capabilities.Detect(ctx))
	integrations := c.Clients.DetectAll(available)

	detected := 0
	writable := 0
	names := make([]string, 0, len(integrations))
	for _, integration := range integrations {
		if !integration.Detected {
			continue
		}
		detected++
		names = append(names, string(integration.Kind))
		if integration.FirstWritable() != nil {
			writable++
		}
	}

	switch {
	case detected == 0:
		result.Status = SeverityWarning
		result.Message = "no MCP clients detected"
		result.FixHint = "install an MCP client, or pass --client to configure one anyway"
	case writable == 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d client(s) detected but none writable", detected)
		result.FixHint = "check config file permissions"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d client(s) detected, %d writable", detected, writable)
	}
	if len(names) > 0 {
		result.Details = map[string]any{"clients": strings.Join(names, ", ")}
	}
	return result
}

// ConfigCheck validates the tool's own configuration file.
type ConfigCheck struct {
	Config *config.Config
}

func (c *ConfigCheck) Name() string     { return "tool-config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	errs := config.Validate(c.Config)
	if len(errs) == 0 {
		result.Status = SeverityPass
		result.Message = "configuration is valid"
		return result
	}

	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	result.Status = SeverityError
	result.Message = fmt.Sprintf("%d configuration problem(s)", len(errs))
	result.Details = map[string]any{"problems": strings.Join(msgs, "; ")}
	result.FixHint = "edit " + config.DefaultPath()
	return result
}

// DefaultChecks builds the standard check set.
func DefaultChecks(logger *slog.Logger, cfg *config.Config) []Check {
	capDetector := capability.NewDetector(logger)
	return []Check{
		&ConfigCheck{Config: cfg},
		&CapabilityCheck{Detector: capDetector},
		&NodeCheck{Detector: launcher.NewNodeDetector(logger, launcher.WithMinVersion(cfg.Launch.MinNodeVersion))},
		&ClientCheck{Clients: clients.NewDetector(logger), Capabilities: capDetector},
	}
}
