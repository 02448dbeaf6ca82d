// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	rocjpegsetup "github.com/arc-language/rocjpeg-setup"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rocjpeg-setup version %s\n", rocjpegsetup.Version)
		fmt.Fprintln(cmd.OutOrStdout(), "rocJPEG dependency installer")
	},
}
