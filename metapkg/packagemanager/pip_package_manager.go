package packagemanager

import (
	"context"
	"regexp"
	"strings"

	"github.com/steelcutops/metapkg/metapkg/action"
)

var pipOutdatedRegex = regexp.MustCompile(`^(\S+) \((.*)\) - Latest: (\S+)`)

// PipPackageManager lists outdated distributions of one Python interpreter.
type PipPackageManager struct {
	base
	// packages maps reported names, which may carry an install location,
	// to the distribution name pip expects.
	packages map[string]string
}

func NewPip2(options ...Option) *PipPackageManager {
	return newPip("pip2", "Python 2 pip", options...)
}

func NewPip3(options ...Option) *PipPackageManager {
	return newPip("pip3", "Python 3 pip", options...)
}

func newPip(id, name string, options ...Option) *PipPackageManager {
	locations := []string{
		"/usr/local/bin/" + id,
		"/opt/local/bin/" + id,
		"/usr/bin/" + id,
	}
	return &PipPackageManager{
		base:     newBase(id, name, locations, options...),
		packages: map[string]string{},
	}
}

// Sync parses the legacy listing of pip list --outdated:
//
//	ccm (2.1.8, /Users/kdeldycke/ccm) - Latest: 2.1.11 [sdist]
//	coverage (4.0.3) - Latest: 4.1 [wheel]
//
// A location after the version is kept in the reported name.
func (p *PipPackageManager) Sync(ctx context.Context) {
	p.reset()
	p.packages = map[string]string{}

	output := strings.TrimSpace(p.run(ctx, "list", "--outdated"))
	if output == "" {
		return
	}

	for _, line := range lines(output) {
		match := pipOutdatedRegex.FindStringSubmatch(line)
		if match == nil {
			p.logger.WithField("line", line).Debug("Skipping unparseable pip line")
			continue
		}
		pkg, installed, latest := match[1], match[2], match[3]

		name := pkg
		info := strings.SplitN(installed, ",", 2)
		if len(info) > 1 {
			name += " (" + strings.TrimSpace(info[1]) + ")"
		}

		p.packages[name] = pkg
		p.add(Update{
			Name:             name,
			InstalledVersion: info[0],
			LatestVersion:    latest,
		})
	}
}

// UpdateCommand upgrades pkg. Pip has no upgrade-everything primitive.
func (p *PipPackageManager) UpdateCommand(pkg string) *action.Command {
	if pkg == "" {
		return nil
	}
	if distribution, ok := p.packages[pkg]; ok {
		pkg = distribution
	}
	return p.command("install", "--upgrade", pkg)
}

func (p *PipPackageManager) UpdateAllCommand() *action.Command {
	return p.selfUpgrade()
}
