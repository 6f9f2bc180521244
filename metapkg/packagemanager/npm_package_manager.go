package packagemanager

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/steelcutops/metapkg/metapkg/action"
)

type NpmPackageManager struct {
	base
}

func NewNpm(options ...Option) *NpmPackageManager {
	locations := []string{
		"/usr/local/bin/npm",
		"/opt/local/bin/npm",
		"/usr/bin/npm",
	}
	return &NpmPackageManager{base: newBase("npm", "npm", locations, options...)}
}

type npmOutdated struct {
	Current string `json:"current"`
	Wanted  string `json:"wanted"`
	Latest  string `json:"latest"`
}

// Sync lists outdated global packages. The JSON object is decoded key by key
// to keep npm's ordering:
//
//	$ npm -g --progress=false --json outdated
//	{"npm": {"current": "3.10.3", "wanted": "3.10.5", "latest": "3.10.5"}}
//
// Linked packages are skipped.
func (n *NpmPackageManager) Sync(ctx context.Context) {
	n.reset()

	output := strings.TrimSpace(n.run(ctx, "-g", "--progress=false", "--json", "outdated"))
	if output == "" {
		return
	}

	decoder := json.NewDecoder(strings.NewReader(output))
	if token, err := decoder.Token(); err != nil || token != json.Delim('{') {
		n.fail(fmt.Errorf("parsing npm outdated output: expected an object"))
		return
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			n.fail(fmt.Errorf("parsing npm outdated output: %w", err))
			return
		}
		name, _ := token.(string)

		var info npmOutdated
		if err := decoder.Decode(&info); err != nil {
			n.fail(fmt.Errorf("parsing npm outdated entry %q: %w", name, err))
			return
		}
		if info.Wanted == linkedMarker {
			continue
		}

		n.add(Update{
			Name:             name,
			InstalledVersion: info.Current,
			LatestVersion:    info.Latest,
		})
	}
}

func (n *NpmPackageManager) UpdateCommand(pkg string) *action.Command {
	if pkg == "" {
		return n.command("-g", "--progress=false", "update")
	}
	return n.command("-g", "--progress=false", "update", pkg)
}

func (n *NpmPackageManager) UpdateAllCommand() *action.Command {
	return n.UpdateCommand("")
}
