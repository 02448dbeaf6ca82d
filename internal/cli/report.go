// internal/cli/report.go
package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/arc-language/rocjpeg-setup/pkg/core"
)

// Report prints err and returns the process exit code for it. Failed
// commands are printed with their status and the call stack.
func Report(w io.Writer, err error) int {
	if err == nil {
		return core.ExitOK
	}

	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

	var cmdErr *core.CommandError
	if errors.As(err, &cmdErr) {
		fmt.Fprintf(w, "Command failed with status: %d\n", cmdErr.Status)
		fmt.Fprintf(w, "%+v\n", err)
	} else if errors.Is(err, core.ErrInvalidArgument) {
		fmt.Fprintln(w, "Run 'rocjpeg-setup --help' for usage.")
	}

	return core.ExitCode(err)
}
