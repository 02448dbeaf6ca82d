// pkg/runner/dryrun.go
package runner

import (
	"context"
	"fmt"
	"io"
)

// DryRun prints commands instead of running them. Every command succeeds.
type DryRun struct {
	Out io.Writer
}

// Run prints cmd and reports success
func (d *DryRun) Run(ctx context.Context, cmd Command) (Status, error) {
	fmt.Fprintf(d.Out, "[dry-run] %s\n", cmd)
	return 0, nil
}
