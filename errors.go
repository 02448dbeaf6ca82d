// errors.go
package rocjpegsetup

import "github.com/arc-language/rocjpeg-setup/pkg/core"

// Re-export the error taxonomy for convenience
var (
	// ErrInvalidArgument indicates a bad option or configuration value
	ErrInvalidArgument = core.ErrInvalidArgument

	// ErrRuntimeMissing indicates the ROCm installation was not found
	ErrRuntimeMissing = core.ErrRuntimeMissing

	// ErrPlatformNotSupported indicates the platform is not supported
	ErrPlatformNotSupported = core.ErrPlatformNotSupported

	// ErrCommandFailed indicates a package-manager command failed
	ErrCommandFailed = core.ErrCommandFailed
)

type (
	// Error wraps an error with additional context
	Error = core.Error
	// CommandError reports a failed external command
	CommandError = core.CommandError
)

// ExitCode maps an error from Manager to a process exit code
func ExitCode(err error) int {
	return core.ExitCode(err)
}
