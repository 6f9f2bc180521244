package packagemanager

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/steelcutops/metapkg/metapkg/action"
	cm "github.com/steelcutops/metapkg/metapkg/commandmanager"
	fm "github.com/steelcutops/metapkg/metapkg/filemanager"
)

// base holds what every adapter shares: identity, executable, collaborators
// and the per-sync state.
type base struct {
	id   string
	name string
	cli  string
	self     string
	selfArgs []string

	commandManager cm.CommandManager
	fileManager    fm.FileManager
	logger         logrus.FieldLogger

	updates   []Update
	lastError string
}

func newBase(id, name string, locations []string, options ...Option) base {
	b := base{id: id, name: name}
	for _, option := range options {
		option(&b)
	}

	if b.fileManager == nil {
		b.fileManager = fm.NewUnixFileManager()
	}
	if b.logger == nil {
		b.logger = logrus.StandardLogger()
	}
	b.logger = b.logger.WithField("manager", id)
	if b.commandManager == nil {
		b.commandManager = &cm.UnixCommandManager{Logger: b.logger}
	}
	if b.cli == "" {
		b.cli = b.fileManager.Locate(locations...)
	}

	return b
}

func (b *base) ID() string        { return b.id }
func (b *base) Name() string      { return b.name }
func (b *base) CLI() string       { return b.cli }
func (b *base) LastError() string { return b.lastError }

func (b *base) Updates() []Update {
	return append([]Update(nil), b.updates...)
}

func (b *base) Active(ctx context.Context) bool {
	return b.fileManager.IsExecutable(b.cli)
}

// reset starts a new sync: records are rebuilt, never merged.
func (b *base) reset() {
	b.updates = nil
	b.lastError = ""
}

func (b *base) add(update Update) {
	if update.Name == "" {
		b.logger.WithField("update", update).Debug("Dropping update without a name")
		return
	}
	b.updates = append(b.updates, update)
}

// run invokes the manager with args and returns its standard output. The
// previous error is cleared first; a non-zero exit with diagnostics, or a
// runner failure, becomes the new one.
func (b *base) run(ctx context.Context, args ...string) string {
	b.lastError = ""

	result, err := b.commandManager.Run(ctx, cm.CommandConfig{Command: b.cli, Args: args})
	if err != nil {
		b.lastError = err.Error()
		b.logger.WithError(err).WithField("args", args).Warn("Command could not run")
		return result.STDOUT
	}
	if result.Failed() {
		b.lastError = result.STDERR
		b.logger.WithFields(logrus.Fields{
			"args":     args,
			"exitCode": result.ExitCode,
		}).Warn("Command failed")
	}

	return result.STDOUT
}

// fail records an adapter-level error that did not come from the tool.
func (b *base) fail(err error) {
	b.lastError = err.Error()
	b.logger.WithError(err).Warn("Sync failed")
}

// command builds an invocation of the manager's executable. A nil result
// means args cannot be expressed as a whitespace-separated command line.
func (b *base) command(args ...string) *action.Command {
	return b.build(b.cli, args...)
}

func (b *base) build(program string, args ...string) *action.Command {
	command, err := action.Build(program, args...)
	if err != nil {
		b.logger.WithError(err).WithField("program", program).Warn("Cannot synthesize command, action not offered")
		return nil
	}
	return command
}

// selfUpgrade re-invokes this program's upgrade sub-command for the manager,
// so the package list is fetched again when the action runs.
func (b *base) selfUpgrade() *action.Command {
	if b.self == "" {
		return nil
	}
	args := append(append([]string(nil), b.selfArgs...), "upgrade", b.id)
	return b.build(b.self, args...)
}

// lines splits output into non-empty, trimmed lines.
func lines(output string) []string {
	var result []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return result
}
