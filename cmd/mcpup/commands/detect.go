package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"mcpup/internal/capability"
	"mcpup/internal/clients"
)

var detectJSON bool

func init() {
	detectCmd.Flags().BoolVar(&detectJSON, "json", false,
		"output results as JSON")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show detected package managers and MCP clients",
	Long: `Probe the host for usable package managers and installed MCP clients.

Package managers are found by PATH lookup and confirmed with a version
probe. Clients are found by checking each one's well-known config file
locations for this platform. Nothing is cached; every run reflects the
host as it is right now.`,
	RunE: runDetect,
}

// detectReport is the JSON shape of a detection run.
type detectReport struct {
	Environment  capability.Environment `json:"environment"`
	Capabilities []capability.Candidate `json:"capabilities"`
	Strategies   []capability.Strategy  `json:"strategies"`
	Clients      []clients.Integration  `json:"clients"`
}

func runDetect(cmd *cobra.Command, _ []string) error {
	log := logger(cmd)
	ctx := cmd.Context()

	env := capability.CurrentEnvironment()
	cands := capability.NewDetector(log).Detect(ctx)
	strategies := capability.AvailableStrategies(cands)
	integrations := clients.NewDetector(log).DetectAll(strategies)

	if detectJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(detectReport{
			Environment:  env,
			Capabilities: cands,
			Strategies:   strategies,
			Clients:      integrations,
		})
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Platform: %s/%s\n", env.Platform.OS, env.Platform.Arch)
	for _, name := range []string{"NODE_PATH", "NPM_CONFIG_PREFIX", "UV_CACHE_DIR", "UV_CONFIG_FILE"} {
		if v := env.Vars[name]; v != "" {
			fmt.Fprintf(out, "%s: %s\n", name, v)
		}
	}
	fmt.Fprintln(out)

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetTitle("Package Managers")
	tw.AppendHeader(table.Row{"Name", "Family", "Version", "Priority", "Path"})
	for _, c := range cands {
		tw.AppendRow(table.Row{c.Name, c.Family, c.Version, c.Priority, c.Path})
	}
	if len(cands) == 0 {
		tw.AppendRow(table.Row{text.FgYellow.Sprint("none detected"), "", "", "", ""})
	}
	tw.Render()

	fmt.Fprintf(out, "\nLaunch strategies: %s\n\n", joinStrategies(strategies))

	tw = table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetTitle("MCP Clients")
	tw.AppendHeader(table.Row{"Client", "Detected", "Config Path", "Recommended"})
	for _, integration := range integrations {
		loc := integration.FirstWritable()
		path := text.FgRed.Sprint("no writable location")
		if loc != nil {
			path = loc.Path
		}
		detected := text.FgGreen.Sprint("yes")
		if !integration.Detected {
			detected = "no"
		}
		tw.AppendRow(table.Row{integration.Kind, detected, path, integration.Recommended})
	}
	tw.Render()

	return nil
}

func joinStrategies(strategies []capability.Strategy) string {
	parts := make([]string, 0, len(strategies))
	for _, s := range strategies {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}
