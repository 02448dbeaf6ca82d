// internal/cli/install.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	rocjpegsetup "github.com/arc-language/rocjpeg-setup"
)

func runInstall(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	mgr, closeTranscript, err := newManager(cmd, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeTranscript(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("rocJPEG Dependencies Installation with rocjpeg-setup V-%s", rocjpegsetup.Version)))

	if err := mgr.Install(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("rocJPEG Dependencies Installed with rocjpeg-setup V-%s", rocjpegsetup.Version)))
	return nil
}
