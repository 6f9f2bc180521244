package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/steelcutops/metapkg/metapkg/action"
	mg "github.com/steelcutops/metapkg/metapkg/managergroup"
	pm "github.com/steelcutops/metapkg/metapkg/packagemanager"
)

func command(program string, params ...string) *action.Command {
	return &action.Command{Program: program, Params: params}
}

func gemsSummary() mg.ManagerSummary {
	return mg.ManagerSummary{
		ID:         "gems",
		Name:       "Ruby Gems",
		UpgradeAll: command("/usr/local/bin/gem", "update"),
		Packages: []mg.PackageSummary{{
			Update:  pm.Update{Name: "json", InstalledVersion: "1.8.3", LatestVersion: "2.0.1"},
			Upgrade: command("/usr/local/bin/gem", "update", "json"),
		}},
	}
}

func fixture() mg.Summary {
	return mg.Summary{
		Total:  2,
		Errors: 1,
		Managers: []mg.ManagerSummary{
			gemsSummary(),
			{
				ID:       "apm",
				Name:     "apm",
				Error:    "network down\nretry later\n",
				Packages: []mg.PackageSummary{},
			},
			{
				ID:         "mas",
				Name:       "Mac AppStore",
				UpgradeAll: command("/usr/local/bin/mas", "upgrade"),
				Packages: []mg.PackageSummary{{
					Update: pm.Update{Name: "Keynote", LatestVersion: "7.0"},
				}},
			},
		},
	}
}

func render(t *testing.T, renderer Renderer, summary mg.Summary) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, renderer.Render(&out, summary))
	return out.String()
}

func TestNew(t *testing.T) {
	for _, format := range Formats {
		renderer, err := New(format, false)
		require.NoError(t, err, format)
		assert.NotNil(t, renderer, format)
	}

	_, err := New("xml", false)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestBitBar(t *testing.T) {
	expected := "↑2 ⚠️1| dropdown=false\n" +
		"---\n" +
		"1 Ruby Gems package\n" +
		"Upgrade all | bash=/usr/local/bin/gem param1=update terminal=false refresh=true\n" +
		"json 1.8.3 → 2.0.1 | bash=/usr/local/bin/gem param1=update param2=json terminal=false refresh=true\n" +
		"---\n" +
		"network down | color=red\n" +
		"retry later | color=red\n" +
		"0 apm packages\n" +
		"---\n" +
		"1 Mac AppStore package\n" +
		"Upgrade all | bash=/usr/local/bin/mas param1=upgrade terminal=false refresh=true\n" +
		"Keynote  → 7.0\n"

	assert.Equal(t, expected, render(t, BitBar{}, fixture()))
}

func TestBitBarWithoutErrors(t *testing.T) {
	summary := mg.Summary{Total: 1, Managers: []mg.ManagerSummary{gemsSummary()}}

	out := render(t, BitBar{}, summary)

	assert.Equal(t, "↑1 | dropdown=false\n", out[:len("↑1 | dropdown=false\n")])
	assert.NotContains(t, out, "⚠️")
}

func TestBitBarWithoutManagers(t *testing.T) {
	assert.Equal(t, "↑0 | dropdown=false\n", render(t, BitBar{}, mg.Summary{}))
}

func TestBitBarHidesUpgradeAllWithoutUpdates(t *testing.T) {
	summary := mg.Summary{Managers: []mg.ManagerSummary{{
		ID:         "npm",
		Name:       "npm",
		UpgradeAll: command("/usr/local/bin/npm", "-g", "--progress=false", "update"),
	}}}

	assert.Equal(t, "↑0 | dropdown=false\n---\n0 npm packages\n", render(t, BitBar{}, summary))
}

func TestText(t *testing.T) {
	expected := "Ruby Gems: 1 package\n" +
		"  json 1.8.3 → 2.0.1\n" +
		"  $ /usr/local/bin/gem update\n" +
		"apm: 0 packages\n" +
		"  network down\n" +
		"  retry later\n" +
		"Mac AppStore: 1 package\n" +
		"  Keynote  → 7.0\n" +
		"  $ /usr/local/bin/mas upgrade\n" +
		"2 updates, 1 error\n"

	assert.Equal(t, expected, render(t, Text{}, fixture()))
}

func TestTextColor(t *testing.T) {
	out := render(t, Text{Color: true}, fixture())

	assert.Contains(t, out, "\x1b[31mnetwork down\x1b[0m")
	assert.Contains(t, out, "\x1b[32m2.0.1\x1b[0m")
}

func TestJSON(t *testing.T) {
	summary := mg.Summary{Total: 1, Managers: []mg.ManagerSummary{gemsSummary()}}

	expected := `{
  "total": 1,
  "errors": 0,
  "managers": [
    {
      "id": "gems",
      "name": "Ruby Gems",
      "upgrade_all": {
        "program": "/usr/local/bin/gem",
        "params": [
          "update"
        ]
      },
      "packages": [
        {
          "name": "json",
          "installed_version": "1.8.3",
          "latest_version": "2.0.1",
          "upgrade": {
            "program": "/usr/local/bin/gem",
            "params": [
              "update",
              "json"
            ]
          }
        }
      ]
    }
  ]
}
`
	assert.Equal(t, expected, render(t, JSON{}, summary))
}

func TestYAML(t *testing.T) {
	out := render(t, YAML{}, fixture())

	assert.Contains(t, out, "total: 2\n")
	assert.Contains(t, out, "installed_version: 1.8.3")

	var decoded mg.Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, fixture(), decoded)
}
