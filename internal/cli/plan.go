// internal/cli/plan.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/rocjpeg-setup/pkg/runner"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the package-manager commands without running them",
	Long: `Detect the platform, resolve the package tiers and print every command
the installer would run, in order.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	mgr, _, err := newManager(cmd, &runner.DryRun{Out: out})
	if err != nil {
		return err
	}

	prep, err := mgr.Prepare()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Platform: %s (%s)\n", prep.Platform.Name(), prep.Profile.Name)
	fmt.Fprintf(out, "Runtime packages: %t\n\n", prep.Config.Runtime)

	stage := ""
	for _, step := range prep.Steps {
		if s := step.State.String(); s != stage {
			stage = s
			fmt.Fprintln(out, titleStyle.Render(stage))
		}
		fmt.Fprintf(out, "  %s\n", step.Command)
	}

	return nil
}
