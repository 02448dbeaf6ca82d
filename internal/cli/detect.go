// internal/cli/detect.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/rocjpeg-setup/pkg/backend"
	"github.com/arc-language/rocjpeg-setup/pkg/runner"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the detected platform and package manager",
	Long:  `Classify /etc/os-release and print the package-manager profile that would be used.`,
	Args:  cobra.NoArgs,
	RunE:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	mgr, _, err := newManager(cmd, &runner.DryRun{Out: out})
	if err != nil {
		return err
	}

	info, profile, err := mgr.Detect()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Platform: %s\n", info.Name())
	fmt.Fprintf(out, "Distribution: %s\n", info.Distro)
	fmt.Fprintf(out, "Family: %s\n", info.Family)
	if info.VersionID != "" {
		fmt.Fprintf(out, "Version: %s\n", info.VersionID)
	}
	fmt.Fprintf(out, "Package manager: %s\n", profile.Executable)
	fmt.Fprintf(out, "Available: %s\n", strings.Join(info.Available, ", "))
	if mgr.HelperFound() {
		fmt.Fprintf(out, "Privilege helper: %s\n", backend.SudoExecutable)
	} else {
		fmt.Fprintln(out, warnStyle.Render("Privilege helper: "+backend.SudoExecutable+" not found"))
	}
	if profile.ForceRuntimeOff {
		fmt.Fprintln(out, warnStyle.Render("Runtime packages are not installed on this platform"))
	}

	return nil
}
