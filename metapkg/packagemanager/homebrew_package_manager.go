package packagemanager

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/steelcutops/metapkg/metapkg/action"
)

var brewLocations = []string{
	"/usr/local/bin/brew",
	"/opt/homebrew/bin/brew",
	"/home/linuxbrew/.linuxbrew/bin/brew",
}

type HomebrewPackageManager struct {
	base
}

func NewHomebrew(options ...Option) *HomebrewPackageManager {
	return &HomebrewPackageManager{base: newBase("homebrew", "Homebrew", brewLocations, options...)}
}

type brewOutdated struct {
	Name              string   `json:"name"`
	InstalledVersions []string `json:"installed_versions"`
	CurrentVersion    string   `json:"current_version"`
}

// Sync refreshes the formula index, then lists outdated formulas:
//
//	$ brew outdated --json=v1
//	[{"name": "vim", "installed_versions": ["7.4.1967"], "current_version": "7.4.1993"}]
func (h *HomebrewPackageManager) Sync(ctx context.Context) {
	h.reset()
	h.run(ctx, "update")

	output := strings.TrimSpace(h.run(ctx, "outdated", "--json=v1"))
	if output == "" {
		return
	}

	var outdated []brewOutdated
	if err := json.Unmarshal([]byte(output), &outdated); err != nil {
		h.fail(fmt.Errorf("parsing brew outdated output: %w", err))
		return
	}

	for _, formula := range outdated {
		h.add(Update{
			Name:             formula.Name,
			InstalledVersion: installedVersion(formula.InstalledVersions),
			LatestVersion:    formula.CurrentVersion,
		})
	}
}

func (h *HomebrewPackageManager) UpdateCommand(pkg string) *action.Command {
	if pkg == "" {
		return h.command("upgrade", "--cleanup")
	}
	return h.command("upgrade", "--cleanup", pkg)
}

func (h *HomebrewPackageManager) UpdateAllCommand() *action.Command {
	return h.UpdateCommand("")
}
