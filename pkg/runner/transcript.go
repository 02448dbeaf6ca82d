// pkg/runner/transcript.go
package runner

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// Transcript is an xz-compressed record of every command and its stdout.
// A nil *Transcript is valid and records nothing. It is safe for use by the
// stdout and stderr copiers of one command at a time.
type Transcript struct {
	RunID string

	mu   sync.Mutex
	file *os.File
	xz   *xz.Writer
}

// OpenTranscript creates the transcript file at path
func OpenTranscript(path string) (*Transcript, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating transcript")
	}

	w, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "creating xz writer")
	}

	t := &Transcript{
		RunID: uuid.NewString(),
		file:  f,
		xz:    w,
	}
	fmt.Fprintf(w, "# rocjpeg-setup run %s started %s\n", t.RunID, time.Now().UTC().Format(time.RFC3339))

	return t, nil
}

// Write appends raw command output
func (t *Transcript) Write(p []byte) (int, error) {
	if t == nil {
		return len(p), nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.xz.Write(p)
}

// Record writes a command line
func (t *Transcript) Record(cmd Command) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.xz, "$ %s\n", cmd)
}

// RecordStatus writes the status of the last command
func (t *Transcript) RecordStatus(st Status) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.xz, "# %s\n", st)
}

// Close flushes the compressed stream and closes the file
func (t *Transcript) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.xz.Close(); err != nil {
		t.file.Close()
		return errors.Wrap(err, "flushing transcript")
	}
	return t.file.Close()
}
