package packagemanager

import (
	"github.com/sirupsen/logrus"

	cm "github.com/steelcutops/metapkg/metapkg/commandmanager"
	fm "github.com/steelcutops/metapkg/metapkg/filemanager"
)

type Option func(*base)

// WithCommandManager sets the runner used for every external invocation.
func WithCommandManager(commandManager cm.CommandManager) Option {
	return func(b *base) {
		b.commandManager = commandManager
	}
}

// WithFileManager sets the filesystem probe used to locate the executable.
func WithFileManager(fileManager fm.FileManager) Option {
	return func(b *base) {
		b.fileManager = fileManager
	}
}

// WithLogger sets the logger; entries are tagged with the manager ID.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

// WithCLI overrides the default executable search.
func WithCLI(cli string) Option {
	return func(b *base) {
		b.cli = cli
	}
}

// WithSelf sets the path of the running program and the global flags to
// pass it. Managers without a native upgrade-all primitive re-invoke it with
// the upgrade sub-command; without it they offer no upgrade-all action.
func WithSelf(self string, args ...string) Option {
	return func(b *base) {
		b.self = self
		b.selfArgs = append([]string(nil), args...)
	}
}
