package packagemanager

import (
	"context"
	"strings"

	"github.com/steelcutops/metapkg/metapkg/action"
	cm "github.com/steelcutops/metapkg/metapkg/commandmanager"
)

// HomebrewCaskPackageManager drives the cask sub-command of Homebrew.
type HomebrewCaskPackageManager struct {
	base
}

func NewHomebrewCask(options ...Option) *HomebrewCaskPackageManager {
	return &HomebrewCaskPackageManager{base: newBase("homebrew-cask", "Homebrew Cask", brewLocations, options...)}
}

// Active requires brew itself and a working cask sub-command.
func (c *HomebrewCaskPackageManager) Active(ctx context.Context) bool {
	if !c.base.Active(ctx) {
		return false
	}

	result, err := c.commandManager.Run(ctx, cm.CommandConfig{Command: c.cli, Args: []string{"cask"}})
	if err != nil {
		c.logger.WithError(err).Debug("Probing cask sub-command")
		return false
	}
	return result.ExitCode == 0
}

// Sync lists installed casks, then asks brew about each one, as the listed
// versions are not reliable:
//
//	$ brew cask list --versions
//	aerial 1.2beta5
//	android-file-transfer latest
//
//	$ brew cask info firefox
//	firefox: 50.0.1
//	https://www.mozilla.org/firefox/
func (c *HomebrewCaskPackageManager) Sync(ctx context.Context) {
	c.reset()
	c.run(ctx, "cask", "update")

	output := c.run(ctx, "cask", "list", "--versions")
	for _, line := range lines(output) {
		fields := strings.SplitN(line, " ", 2)
		name := fields[0]

		var versions []string
		if len(fields) > 1 {
			versions = strings.Split(fields[1], ",")
		}
		version := installedVersion(versions)

		latest, ok := caskLatestVersion(c.run(ctx, "cask", "info", name))
		if !ok {
			c.logger.WithField("cask", name).Debug("Cannot read latest version from cask info")
			continue
		}

		if version == latest || (latest == latestMarker && onlyLatest(versions)) {
			continue
		}

		c.add(Update{
			Name:             name,
			InstalledVersion: version,
			LatestVersion:    latest,
		})
	}
}

// caskLatestVersion reads "<name>: <version>" from the first line of
// brew cask info.
func caskLatestVersion(info string) (string, bool) {
	first := strings.SplitN(strings.TrimSpace(info), "\n", 2)[0]
	fields := strings.Split(first, " ")
	if len(fields) < 2 || fields[1] == "" {
		return "", false
	}
	return fields[1], true
}

// UpdateCommand reinstalls pkg. Cask has no upgrade-everything primitive.
func (c *HomebrewCaskPackageManager) UpdateCommand(pkg string) *action.Command {
	if pkg == "" {
		return nil
	}
	return c.command("cask", "reinstall", pkg)
}

func (c *HomebrewCaskPackageManager) UpdateAllCommand() *action.Command {
	return c.selfUpgrade()
}
