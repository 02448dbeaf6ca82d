// cmd/rocjpeg-setup/main.go
package main

import (
	"os"

	"github.com/arc-language/rocjpeg-setup/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.Report(os.Stderr, err))
	}
}
