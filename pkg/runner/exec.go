// pkg/runner/exec.go
package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/lxc/incus/v6/shared/subprocess"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Exec runs commands on the host. Stdout and stderr are streamed to the
// terminal and, when set, to the transcript. Stderr is also kept for the
// error of a failed command.
type Exec struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	transcript *Transcript
	log        logrus.FieldLogger
}

// NewExec creates a host runner. transcript may be nil.
func NewExec(log logrus.FieldLogger, transcript *Transcript) *Exec {
	return &Exec{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		transcript: transcript,
		log:        log,
	}
}

// Run executes cmd and returns its wait status. The returned error is a
// subprocess.RunError carrying the captured stderr when the command failed.
//
// The child stays in our session so sudo can prompt on the controlling
// terminal, and its stderr is passed through so the prompt is visible.
func (e *Exec) Run(ctx context.Context, cmd Command) (Status, error) {
	e.log.WithField("command", cmd.String()).Debug("Running command")
	e.transcript.Record(cmd)

	var stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Executable, cmd.Args...)
	c.Stdin = e.stdin
	c.Stdout = e.tee(e.stdout)
	c.Stderr = io.MultiWriter(e.tee(e.stderr), &stderr)

	var err error
	if runErr := c.Run(); runErr != nil {
		err = subprocess.NewRunError(cmd.Executable, cmd.Args, runErr, nil, &stderr)
	}

	st := StatusFromError(err)
	e.transcript.RecordStatus(st)

	return st, err
}

func (e *Exec) tee(w io.Writer) io.Writer {
	if e.transcript == nil {
		return w
	}
	return io.MultiWriter(w, e.transcript)
}

// StatusFromError recovers the wait status from a process error. Errors
// that do not come from a finished process map to StatusNotFound.
func StatusFromError(err error) Status {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			return Status(ws)
		}
		return ExitStatus(uint8(exitErr.ExitCode()))
	}

	return StatusNotFound
}
