// pkg/rocm/check.go
package rocm

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/arc-language/rocjpeg-setup/pkg/core"
	"github.com/arc-language/rocjpeg-setup/pkg/runner"
)

// InfoCommand returns the ROCm discovery tool invocation under path
func InfoCommand(path string) runner.Command {
	return runner.Command{Executable: filepath.Join(path, "bin", "rocminfo")}
}

// Check verifies that a ROCm installation exists at path. When it does,
// rocminfo is run as a diagnostic; its failure is logged and ignored.
func Check(ctx context.Context, path string, r runner.Runner, log logrus.FieldLogger) error {
	if _, err := os.Stat(path); err != nil {
		log.Warnf("If ROCm is installed, set the ROCm path with the --rocm_path option [default: %s]", core.DefaultRocmPath)
		return &core.Error{
			Op:      "rocm check",
			Package: path,
			Err:     errors.Wrap(core.ErrRuntimeMissing, "rocJPEG setup requires a ROCm install"),
		}
	}

	log.WithField("path", path).Info("ROCm installation found")

	cmd := InfoCommand(path)
	st, err := r.Run(ctx, cmd)
	if err != nil || !cmd.Succeeded(st) {
		log.WithError(err).WithField("status", st.String()).Warn("rocminfo diagnostic failed")
	}

	return nil
}
