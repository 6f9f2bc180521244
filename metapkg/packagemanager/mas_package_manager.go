package packagemanager

import (
	"context"
	"regexp"
	"strings"

	"github.com/steelcutops/metapkg/metapkg/action"
)

var masOutdatedRegex = regexp.MustCompile(`^(\d+) (.*) \((\S+) -> (\S+)\)$`)

// MasPackageManager drives the Mac App Store CLI, which installs by numeric
// application id rather than by name.
type MasPackageManager struct {
	base
	ids map[string]string
}

func NewMas(options ...Option) *MasPackageManager {
	locations := []string{
		"/usr/local/bin/mas",
		"/opt/homebrew/bin/mas",
		"/usr/bin/mas",
	}
	return &MasPackageManager{
		base: newBase("mas", "Mac AppStore", locations, options...),
		ids:  map[string]string{},
	}
}

// Sync parses mas outdated:
//
//	497799835 Xcode (7.0 -> 7.1)
//	446107677 Screens VNC - Access Your Computer From Anywhere (unknown -> 3.6.7)
func (m *MasPackageManager) Sync(ctx context.Context) {
	m.reset()
	m.ids = map[string]string{}

	output := strings.TrimSpace(m.run(ctx, "outdated"))
	if output == "" {
		return
	}

	for _, line := range lines(output) {
		match := masOutdatedRegex.FindStringSubmatch(line)
		if match == nil {
			m.logger.WithField("line", line).Debug("Skipping unparseable mas line")
			continue
		}
		id, name := match[1], match[2]

		m.ids[name] = id
		m.add(Update{
			Name:             name,
			InstalledVersion: knownVersion(match[3]),
			LatestVersion:    match[4],
		})
	}
}

// UpdateCommand installs the application known under pkg by the last sync.
func (m *MasPackageManager) UpdateCommand(pkg string) *action.Command {
	if pkg == "" {
		return m.command("upgrade")
	}
	id, ok := m.ids[pkg]
	if !ok {
		return nil
	}
	return m.command("install", id)
}

func (m *MasPackageManager) UpdateAllCommand() *action.Command {
	return m.UpdateCommand("")
}
