// pkg/runner/status.go
package runner

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Status is a raw POSIX wait status: exit code in bits 8-15, terminating
// signal and core-dump flag in bits 0-7.
type Status uint32

// StatusNotFound is reported for commands that could not be started, the
// same status a shell gives for "command not found".
const StatusNotFound Status = 127 << 8

// OK reports whether the status is zero
func (s Status) OK() bool {
	return s == 0
}

// Code folds the exit code and signal byte into a single exit byte:
// ((status >> 8) | status) & 0xff. A non-zero status always yields a
// non-zero code; bits outside the 16-bit encoding fall back to 1.
func (s Status) Code() uint8 {
	if s == 0 {
		return 0
	}
	code := uint8(((s >> 8) | s) & 0xff)
	if code == 0 {
		return 1
	}
	return code
}

// Wait returns the status as a unix.WaitStatus
func (s Status) Wait() unix.WaitStatus {
	return unix.WaitStatus(s)
}

func (s Status) String() string {
	ws := s.Wait()
	switch {
	case s == 0:
		return "exit 0"
	case ws.Exited():
		return fmt.Sprintf("exit %d", ws.ExitStatus())
	case ws.Signaled() && ws.CoreDump():
		return fmt.Sprintf("signal %v (core dumped)", ws.Signal())
	case ws.Signaled():
		return fmt.Sprintf("signal %v", ws.Signal())
	default:
		return fmt.Sprintf("status %#x", uint32(s))
	}
}

// ExitStatus builds the wait status of a process that exited with code
func ExitStatus(code uint8) Status {
	return Status(code) << 8
}
