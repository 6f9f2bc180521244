package packagemanager

import (
	"context"
	"regexp"

	"github.com/steelcutops/metapkg/metapkg/action"
)

const (
	gemHomebrewPath = "/usr/local/bin/gem"
	gemSystemPath   = "/usr/bin/gem"
	sudoPath        = "/usr/bin/sudo"
)

var gemOutdatedRegex = regexp.MustCompile(`^(\S+) \((\S+) < (\S+)\)`)

// GemPackageManager prefers a Homebrew Ruby over the system one. Updating
// system gems requires sudo; listing them does not.
type GemPackageManager struct {
	base
}

func NewGems(options ...Option) *GemPackageManager {
	return &GemPackageManager{base: newBase("gems", "Ruby Gems", []string{gemHomebrewPath, gemSystemPath}, options...)}
}

func (g *GemPackageManager) system() bool {
	return g.cli == gemSystemPath
}

// Sync parses gem outdated:
//
//	did_you_mean (1.0.0 < 1.0.2)
//	json (1.8.3 < 2.0.1)
func (g *GemPackageManager) Sync(ctx context.Context) {
	g.reset()

	output := g.run(ctx, "outdated")
	for _, line := range lines(output) {
		match := gemOutdatedRegex.FindStringSubmatch(line)
		if match == nil {
			g.logger.WithField("line", line).Debug("Skipping unparseable gem line")
			continue
		}
		g.add(Update{
			Name:             match[1],
			InstalledVersion: match[2],
			LatestVersion:    match[3],
		})
	}
}

func (g *GemPackageManager) UpdateCommand(pkg string) *action.Command {
	args := []string{"update"}
	if pkg != "" {
		args = append(args, pkg)
	}
	if g.system() {
		return g.build(sudoPath, append([]string{g.cli}, args...)...)
	}
	return g.command(args...)
}

func (g *GemPackageManager) UpdateAllCommand() *action.Command {
	return g.UpdateCommand("")
}
