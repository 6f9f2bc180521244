package packagemanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGemSync(t *testing.T) {
	runner := &MockCommandManager{}
	runner.On("Run", "/usr/local/bin/gem outdated").Return(stdout(
		"did_you_mean (1.0.0 < 1.0.2)\n"+
			"json (1.8.3 < 2.0.1)\n"+
			"*** LOCAL GEMS ***\n"), nil)

	manager := NewGems(options(t, runner, "/usr/local/bin/gem")...)
	manager.Sync(context.Background())

	assert.Empty(t, manager.LastError())
	assert.Equal(t, []Update{
		{Name: "did_you_mean", InstalledVersion: "1.0.0", LatestVersion: "1.0.2"},
		{Name: "json", InstalledVersion: "1.8.3", LatestVersion: "2.0.1"},
	}, manager.Updates())
}

func TestGemSyncSingleLine(t *testing.T) {
	runner := &MockCommandManager{}
	runner.On("Run", "/usr/local/bin/gem outdated").Return(stdout("json (1.8.3 < 2.0.1)"), nil)

	manager := NewGems(options(t, runner, "/usr/local/bin/gem")...)
	manager.Sync(context.Background())

	assert.Equal(t, []Update{
		{Name: "json", InstalledVersion: "1.8.3", LatestVersion: "2.0.1"},
	}, manager.Updates())
}

func TestGemPrefersHomebrewRuby(t *testing.T) {
	manager := NewGems(options(t, &MockCommandManager{}, "/usr/local/bin/gem", "/usr/bin/gem")...)

	assert.Equal(t, "/usr/local/bin/gem", manager.CLI())
	assert.Equal(t, "/usr/local/bin/gem update json", manager.UpdateCommand("json").String())
	assert.Equal(t, "/usr/local/bin/gem update", manager.UpdateAllCommand().String())
}

func TestGemSystemRubyNeedsSudo(t *testing.T) {
	manager := NewGems(options(t, &MockCommandManager{}, "/usr/bin/gem")...)

	assert.Equal(t, "/usr/bin/gem", manager.CLI())
	assert.Equal(t, "/usr/bin/sudo /usr/bin/gem update json", manager.UpdateCommand("json").String())
	assert.Equal(t,
		"bash=/usr/bin/sudo param1=/usr/bin/gem param2=update",
		manager.UpdateAllCommand().BitBar())
}
