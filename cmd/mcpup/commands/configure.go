package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"mcpup/internal/capability"
	"mcpup/internal/clientcfg"
	"mcpup/internal/clients"
	"mcpup/internal/errors"
	"mcpup/internal/launcher"
)

var (
	configureClients  []string
	configureName     string
	configureStrategy string
	configureBackup   bool
	configureRemove   bool
)

func init() {
	configureCmd.Flags().StringSliceVarP(&configureClients, "client", "c", nil,
		"client(s) to configure (default: all detected)")
	configureCmd.Flags().StringVar(&configureName, "server-name", "",
		"name to register the server under (default from config)")
	configureCmd.Flags().StringVar(&configureStrategy, "strategy", "",
		"force the launch strategy written to client configs")
	configureCmd.Flags().BoolVar(&configureBackup, "backup", true,
		"back up existing config files before writing")
	configureCmd.Flags().BoolVar(&configureRemove, "remove", false,
		"remove the server entry instead of adding it")
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Register the MCP server with detected clients",
	Long: `Write the server's launch entry into each client's config file.

Writes are merges: only this server's entry is added or replaced, every
other key in the file is preserved. Existing files are backed up with a
.backup suffix unless --backup=false. A client that cannot be written
is reported and skipped; the rest are still configured.`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	log := logger(cmd)
	ctx := cmd.Context()

	serverName := configureName
	if serverName == "" {
		serverName = cfg.Server.Name
	}

	cands := capability.NewDetector(log).Detect(ctx)
	available := capability.AvailableStrategies(cands)
	integrations, err := targetIntegrations(log, available)
	if err != nil {
		return err
	}

	backup := configureBackup && cfg.Clients.Backup
	writer := clientcfg.NewWriter(log, clientcfg.WithBackup(backup))

	var results []clientcfg.Result
	if configureRemove {
		for _, integration := range integrations {
			results = append(results, writer.Remove(integration, serverName))
		}
	} else {
		entry, err := buildEntry(cmd, cands, available)
		if err != nil {
			return err
		}
		results = writer.Configure(integrations, serverName, entry)

		// Read each successful write back, confirming what the client
		// will actually see.
		for i := range results {
			if results[i].Err != nil {
				continue
			}
			if _, err := writer.Verify(integrations[i], serverName); err != nil {
				results[i].Err = err
			}
		}
	}

	printConfigureResults(cmd, results)

	for _, res := range results {
		if res.Err != nil {
			return errors.NewSystemError(
				errors.Newf("%d of %d client(s) could not be configured", countErrs(results), len(results)),
				"check config file permissions, or pass --client to pick writable clients")
		}
	}
	return nil
}

// targetIntegrations resolves --client names, or every detected client
// when none are named. Explicitly named clients are configured even if
// not detected, so a fresh install gets its config created.
func targetIntegrations(log *slog.Logger, available []capability.Strategy) ([]clients.Integration, error) {
	detector := clients.NewDetector(log)

	if len(configureClients) == 0 {
		names := cfg.Clients.Only
		if len(names) == 0 {
			all := detector.DetectAll(available)
			detected := make([]clients.Integration, 0, len(all))
			for _, integration := range all {
				if integration.Detected {
					detected = append(detected, integration)
				}
			}
			if len(detected) == 0 {
				return nil, errors.NewUserError(
					errors.Newf("no MCP clients detected"),
					"pass --client to configure a specific client anyway")
			}
			return detected, nil
		}
		configureClients = names
	}

	integrations := make([]clients.Integration, 0, len(configureClients))
	for _, name := range configureClients {
		kind := clients.Kind(name)
		if !clients.Valid(kind) {
			return nil, errors.NewUserError(
				errors.Newf("unknown client %q", name),
				fmt.Sprintf("valid clients: %s", joinKinds(clients.Kinds())))
		}
		integration, _ := detector.Detect(kind, available)
		integrations = append(integrations, integration)
	}
	return integrations, nil
}

func buildEntry(cmd *cobra.Command, cands []capability.Candidate, available []capability.Strategy) (clientcfg.ServerEntry, error) {
	log := logger(cmd)

	strategy := capability.Strategy(configureStrategy)
	if configureStrategy == "" {
		strategy = capability.PickStrategy(available)
	}

	opts := clientcfg.Options{
		Command:        cfg.Server.Command,
		RuntimePackage: cfg.Server.RuntimePackage,
		BridgePackage:  cfg.Server.BridgePackage,
		Args:           cfg.Launch.Args,
		Env:            cfg.Launch.Env,
	}

	if strategy == capability.StrategyNodeDirect {
		nodeDetector := launcher.NewNodeDetector(log,
			launcher.WithMinVersion(cfg.Launch.MinNodeVersion))
		if info, err := nodeDetector.Detect(cmd.Context()); err == nil {
			opts.NodePath = info.Path
			if dir := launcher.FindPackageDir(cfg.Server.RuntimePackage, info); dir != "" {
				opts.ScriptPath = filepath.Join(dir, "dist", "index.js")
			}
		}
	}

	entry, err := clientcfg.EntryFor(strategy, cands, opts)
	if err != nil {
		return entry, errors.NewUserError(err, "valid strategies: uvx-ephemeral, uv-project, node-direct, bridge-run")
	}
	return entry, nil
}

func printConfigureResults(cmd *cobra.Command, results []clientcfg.Result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"Client", "Config Path", "Result"})
	for _, res := range results {
		outcome := text.FgGreen.Sprint("configured")
		switch {
		case res.Err != nil:
			outcome = text.FgRed.Sprint(truncate(res.Err.Error(), 60))
		case configureRemove && res.Existed:
			outcome = "removed"
		case configureRemove:
			outcome = "not registered"
		case res.Existed:
			outcome = text.FgGreen.Sprint("updated")
		}
		tw.AppendRow(table.Row{res.Kind, res.Path, outcome})
	}
	tw.Render()
}

func countErrs(results []clientcfg.Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

func joinKinds(kinds []clients.Kind) string {
	s := ""
	for i, k := range kinds {
		if i > 0 {
			s += ", "
		}
		s += string(k)
	}
	return s
}
