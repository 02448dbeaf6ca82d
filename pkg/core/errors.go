// pkg/core/errors.go
package core

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument indicates a bad option or configuration value
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRuntimeMissing indicates the ROCm installation was not found
	ErrRuntimeMissing = errors.New("ROCm installation not found")

	// ErrPlatformNotSupported indicates the host OS has no package profile
	ErrPlatformNotSupported = errors.New("platform not supported")

	// ErrCommandFailed indicates an external command exited non-zero
	ErrCommandFailed = errors.New("command failed")
)

// Process exit codes
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitUnsupported = 255 // exit(-1) as seen by the parent shell
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package or path if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CommandError reports an external command that did not succeed
type CommandError struct {
	Command string // Rendered command line
	Stage   string // Installer stage the command belonged to
	Status  uint32 // Raw wait status
	Code    uint8  // Decoded exit byte
	Err     error  // Runner error, if any
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %q failed with status %d (exit code %d)", e.Stage, e.Command, e.Status, e.Code)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCommandFailed) match any CommandError
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// ExitCode maps an error returned by the setup pipeline to a process exit
// code. It is the only place exit codes are decided.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == 0 {
			return ExitFailure
		}
		return int(cmdErr.Code)
	}

	switch {
	case errors.Is(err, ErrInvalidArgument):
		return ExitUsage
	case errors.Is(err, ErrRuntimeMissing), errors.Is(err, ErrPlatformNotSupported):
		return ExitUnsupported
	default:
		return ExitFailure
	}
}
