// Package report renders a managergroup.Summary for a given output surface.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	mg "github.com/steelcutops/metapkg/metapkg/managergroup"
)

const (
	FormatBitBar = "bitbar"
	FormatText   = "text"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the accepted values of New.
var Formats = []string{FormatBitBar, FormatText, FormatJSON, FormatYAML}

type Renderer interface {
	Render(w io.Writer, summary mg.Summary) error
}

// New returns the renderer for format. colored only affects the text format.
func New(format string, colored bool) (Renderer, error) {
	switch format {
	case FormatBitBar:
		return BitBar{}, nil
	case FormatText:
		return Text{Color: colored}, nil
	case FormatJSON:
		return JSON{}, nil
	case FormatYAML:
		return YAML{}, nil
	}
	return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func errorLines(err string) []string {
	if err = strings.TrimSpace(err); err == "" {
		return nil
	}
	return strings.Split(err, "\n")
}

// BitBar prints the menu of a BitBar plugin: the status bar title first,
// then one section per manager.
//
// See: https://github.com/matryer/bitbar#plugin-api
type BitBar struct{}

func (BitBar) Render(w io.Writer, summary mg.Summary) error {
	warning := ""
	if summary.Errors > 0 {
		warning = fmt.Sprintf("⚠️%d", summary.Errors)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "↑%d %s| dropdown=false\n", summary.Total, warning)

	for _, manager := range summary.Managers {
		b.WriteString("---\n")
		for _, line := range errorLines(manager.Error) {
			fmt.Fprintf(&b, "%s | color=red\n", line)
		}

		count := len(manager.Packages)
		fmt.Fprintf(&b, "%d %s package%s\n", count, manager.Name, plural(count))

		if manager.UpgradeAll != nil && count > 0 {
			fmt.Fprintf(&b, "Upgrade all | %s terminal=false refresh=true\n", manager.UpgradeAll.BitBar())
		}

		for _, pkg := range manager.Packages {
			fmt.Fprintf(&b, "%s %s → %s", pkg.Name, pkg.InstalledVersion, pkg.LatestVersion)
			if pkg.Upgrade != nil {
				fmt.Fprintf(&b, " | %s terminal=false refresh=true", pkg.Upgrade.BitBar())
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Text is a human readable listing for terminals.
type Text struct {
	Color bool
}

func (t Text) palette(attributes ...color.Attribute) *color.Color {
	c := color.New(attributes...)
	if t.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (t Text) Render(w io.Writer, summary mg.Summary) error {
	title := t.palette(color.Bold)
	failure := t.palette(color.FgRed)
	outdated := t.palette(color.FgYellow)
	latest := t.palette(color.FgGreen)
	hint := t.palette(color.FgCyan)

	var b strings.Builder
	for _, manager := range summary.Managers {
		count := len(manager.Packages)
		b.WriteString(title.Sprintf("%s: %d package%s", manager.Name, count, plural(count)))
		b.WriteString("\n")

		for _, line := range errorLines(manager.Error) {
			b.WriteString("  " + failure.Sprint(line) + "\n")
		}

		for _, pkg := range manager.Packages {
			fmt.Fprintf(&b, "  %s %s → %s\n", pkg.Name, outdated.Sprint(pkg.InstalledVersion), latest.Sprint(pkg.LatestVersion))
		}

		if manager.UpgradeAll != nil && count > 0 {
			b.WriteString("  " + hint.Sprint("$ "+manager.UpgradeAll.String()) + "\n")
		}
	}

	footer := fmt.Sprintf("%d update%s", summary.Total, plural(summary.Total))
	if summary.Errors > 0 {
		footer += ", " + failure.Sprintf("%d error%s", summary.Errors, plural(summary.Errors))
	}
	b.WriteString(footer + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

type JSON struct{}

func (JSON) Render(w io.Writer, summary mg.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

type YAML struct{}

func (YAML) Render(w io.Writer, summary mg.Summary) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(summary); err != nil {
		return err
	}
	return encoder.Close()
}
