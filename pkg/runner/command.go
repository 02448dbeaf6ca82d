// pkg/runner/command.go
package runner

import (
	"context"
	"strconv"
	"strings"
)

// Command is a structured external command. Arguments are passed to the
// process as-is and never through a shell.
type Command struct {
	Executable string
	Args       []string

	// Success decides whether a status counts as success. Nil means the
	// status must be zero.
	Success func(Status) bool
}

// Runner executes commands, blocking until they exit
type Runner interface {
	Run(ctx context.Context, cmd Command) (Status, error)
}

// Succeeded applies the command's success predicate to a status
func (c Command) Succeeded(st Status) bool {
	if c.Success != nil {
		return c.Success(st)
	}
	return st.OK()
}

// String renders the command for logs and transcripts
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Executable))
	for _, arg := range c.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n'\"\\$`") {
		return strconv.Quote(s)
	}
	return s
}
