package packagemanager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/steelcutops/metapkg/metapkg/action"
	cm "github.com/steelcutops/metapkg/metapkg/commandmanager"
)

var (
	ErrUnknownManager  = errors.New("unknown package manager")
	ErrNoUpdateCommand = errors.New("no update command for package")
)

// Update is one outdated package as reported by its manager. Versions are
// opaque tokens, never compared beyond equality.
type Update struct {
	Name             string `json:"name" yaml:"name"`
	InstalledVersion string `json:"installed_version" yaml:"installed_version"`
	LatestVersion    string `json:"latest_version" yaml:"latest_version"`
}

// PackageManager is the contract every manager adapter implements.
type PackageManager interface {
	// ID is the stable identifier accepted by the upgrade sub-command.
	ID() string
	// Name is the human readable name shown in reports.
	Name() string
	// CLI is the path of the manager's executable.
	CLI() string

	// Active reports whether the manager can be used on this host.
	Active(ctx context.Context) bool
	// Sync rebuilds the list of outdated packages. Failures are kept in
	// LastError, never returned.
	Sync(ctx context.Context)
	Updates() []Update
	LastError() string

	// UpdateCommand returns the invocation upgrading pkg, or, when pkg is
	// empty, the manager's native upgrade-everything invocation. It returns
	// nil when no such invocation exists.
	UpdateCommand(pkg string) *action.Command
	// UpdateAllCommand returns an invocation upgrading every outdated
	// package, or nil when the manager cannot offer one.
	UpdateAllCommand() *action.Command
}

// UpgradeAll syncs m, then runs the update command of every outdated package
// one after the other. A failed package does not stop the others; all
// failures are returned together.
func UpgradeAll(ctx context.Context, m PackageManager, commandManager cm.CommandManager) error {
	m.Sync(ctx)

	var result *multierror.Error
	if lastError := m.LastError(); lastError != "" {
		result = multierror.Append(result, fmt.Errorf("syncing %s: %s", m.ID(), strings.TrimSpace(lastError)))
	}

	for _, update := range m.Updates() {
		command := m.UpdateCommand(update.Name)
		if command == nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", update.Name, ErrNoUpdateCommand))
			continue
		}

		output, err := commandManager.Run(ctx, command.Config())
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("upgrading %s: %w", update.Name, err))
			continue
		}
		if output.ExitCode != 0 {
			result = multierror.Append(result, fmt.Errorf("upgrading %s: exit status %d: %s",
				update.Name, output.ExitCode, strings.TrimSpace(output.STDERR)))
		}
	}

	return result.ErrorOrNil()
}
