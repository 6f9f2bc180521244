package packagemanager

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/steelcutops/metapkg/metapkg/action"
)

// ApmPackageManager handles Atom editor packages.
type ApmPackageManager struct {
	base
}

func NewApm(options ...Option) *ApmPackageManager {
	locations := []string{
		"/usr/local/bin/apm",
		"/opt/local/bin/apm",
		"/usr/bin/apm",
	}
	return &ApmPackageManager{base: newBase("apm", "apm", locations, options...)}
}

type apmOutdated struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	LatestVersion string `json:"latestVersion"`
}

func (a *ApmPackageManager) Sync(ctx context.Context) {
	a.reset()

	output := strings.TrimSpace(a.run(ctx, "outdated", "--compatible", "--json"))
	if output == "" {
		return
	}

	var outdated []apmOutdated
	if err := json.Unmarshal([]byte(output), &outdated); err != nil {
		a.fail(fmt.Errorf("parsing apm outdated output: %w", err))
		return
	}

	for _, pkg := range outdated {
		a.add(Update{
			Name:             pkg.Name,
			InstalledVersion: pkg.Version,
			LatestVersion:    pkg.LatestVersion,
		})
	}
}

func (a *ApmPackageManager) UpdateCommand(pkg string) *action.Command {
	if pkg == "" {
		return a.command("update", "--no-confirm")
	}
	return a.command("update", "--no-confirm", pkg)
}

func (a *ApmPackageManager) UpdateAllCommand() *action.Command {
	return a.UpdateCommand("")
}
