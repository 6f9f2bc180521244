package commandmanager

import (
	"context"
	"strings"
	"time"
)

// CommandConfig describes a single external program invocation.
type CommandConfig struct {
	Command string
	Args    []string
	// Env entries are appended to the current process environment.
	Env []string
}

// String returns the invocation as a space-joined command line, for logs.
func (c CommandConfig) String() string {
	return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
}

// CommandResult encapsulates the results from a command execution.
type CommandResult struct {
	Command   string
	STDOUT    string
	STDERR    string
	ExitCode  int
	Duration  time.Duration
	Timestamp time.Time
}

// Failed reports whether the command exited non-zero and wrote diagnostics.
// Several package managers exit non-zero for benign reasons with an empty
// stderr, which is not treated as a failure.
func (r CommandResult) Failed() bool {
	return r.ExitCode != 0 && r.STDERR != ""
}

// CommandManager executes external programs. A non-zero exit status is not an
// error: it is reported in CommandResult.ExitCode. Run only fails when the
// program could not be started or ctx expired.
type CommandManager interface {
	Run(ctx context.Context, config CommandConfig) (CommandResult, error)
}
