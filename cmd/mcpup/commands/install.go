package commands

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"mcpup/internal/capability"
	"mcpup/internal/errors"
	"mcpup/internal/executor"
	"mcpup/internal/installer"
	"mcpup/internal/logging"
	"mcpup/internal/plan"
)

var (
	installMode    string
	installWith    string
	installDryRun  bool
	installTimeout time.Duration
)

func init() {
	installCmd.Flags().StringVarP(&installMode, "mode", "m", string(plan.ModeAuto),
		"installation mode: auto, ephemeral, project-local, global")
	installCmd.Flags().StringVar(&installWith, "with", "",
		"prefer a specific package manager (e.g. uvx, npm)")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false,
		"show the plan without executing it")
	installCmd.Flags().DurationVar(&installTimeout, "timeout", 0,
		"per-attempt timeout (default from config)")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the MCP server using the best available route",
	Long: `Build an installation plan from the detected package managers and
execute it. The plan has a primary route and ordered fallbacks; each
failed attempt moves on to the next until one succeeds or all are
exhausted. Partial progress is reported per attempt.`,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, _ []string) error {
	log := logger(cmd)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	pool := capability.NewDetector(log).Detect(ctx)
	p, err := plan.New(pool, plan.Mode(installMode), installWith)
	if err != nil {
		if errors.Is(err, errors.ErrNoCandidates) {
			return errors.NewSystemError(err, "install uv (https://docs.astral.sh/uv/) or Node.js with npm")
		}
		return errors.NewUserError(err, "valid modes: auto, ephemeral, project-local, global")
	}

	printPlan(cmd, p)
	if installDryRun {
		return nil
	}

	timeout := installTimeout
	if timeout == 0 {
		timeout = time.Duration(cfg.Install.TimeoutSeconds) * time.Second
	}

	pkgs := installer.Packages{
		Runtime: cfg.Server.RuntimePackage,
		Bridge:  cfg.Server.BridgePackage,
		Command: cfg.Server.Command,
	}
	inst := installer.New(log)
	exec := executor.New(log, executor.WithAttemptTimeout(timeout))

	var spin *spinner.Spinner
	if !quiet && logging.IsTTY(cmd.ErrOrStderr()) {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithWriter(cmd.ErrOrStderr()))
		spin.Suffix = fmt.Sprintf(" installing %s...", cfg.Server.Name)
		spin.Start()
	}

	outcomes, execErr := exec.Execute(ctx, p, inst.Attempt(pkgs, p.Mode, cfg.Install.ExtraArgs))

	if spin != nil {
		spin.Stop()
	}

	printOutcomes(cmd, outcomes)

	if execErr != nil {
		return errors.NewSystemError(execErr, "run 'mcpup doctor' to diagnose the environment")
	}
	fmt.Fprintf(out, "\n%s installed via %s\n",
		cfg.Server.Name, text.FgGreen.Sprint(outcomes[len(outcomes)-1].Candidate))
	return nil
}

func printPlan(cmd *cobra.Command, p *plan.Plan) {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetTitle("Installation Plan")
	tw.AppendHeader(table.Row{"Order", "Candidate", "Family"})
	tw.AppendRow(table.Row{"primary", p.Primary.Name, p.Primary.Family})
	for i, c := range p.Fallbacks {
		tw.AppendRow(table.Row{fmt.Sprintf("fallback %d", i+1), c.Name, c.Family})
	}
	tw.AppendFooter(table.Row{"", "", fmt.Sprintf("mode %s, ~%s, ~%s, %.0f%% likely",
		p.Mode, p.EstimatedTime, formatDisk(p.EstimatedDisk), p.SuccessProbability*100)})
	tw.Render()
}

func printOutcomes(cmd *cobra.Command, outcomes []executor.Outcome) {
	if len(outcomes) == 0 {
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"Candidate", "Result", "Duration"})
	for _, o := range outcomes {
		result := text.FgGreen.Sprint("ok")
		if o.Err != nil {
			result = text.FgRed.Sprint(truncate(o.Err.Error(), 60))
		}
		tw.AppendRow(table.Row{o.Candidate, result, o.Duration.Round(time.Millisecond)})
	}
	tw.Render()
}

func formatDisk(bytes int64) string {
	const mib = 1 << 20
	if bytes == 0 {
		return "no disk"
	}
	return fmt.Sprintf("%dMiB", bytes/mib)
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
