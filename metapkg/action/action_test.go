package action

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	command, err := Parse("  /usr/local/bin/brew upgrade --cleanup vim\n")
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/brew", command.Program)
	assert.Equal(t, []string{"upgrade", "--cleanup", "vim"}, command.Params)
	assert.Equal(t, "/usr/local/bin/brew upgrade --cleanup vim", command.String())
}

func TestParseProgramOnly(t *testing.T) {
	command, err := Parse("/usr/local/bin/mas")
	require.NoError(t, err)

	assert.Empty(t, command.Params)
	assert.Equal(t, "bash=/usr/local/bin/mas", command.BitBar())
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("   ")
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestBitBar(t *testing.T) {
	command, err := Parse("/usr/local/bin/npm -g --progress=false update npm")
	require.NoError(t, err)

	assert.Equal(t,
		"bash=/usr/local/bin/npm param1=-g param2=--progress=false param3=update param4=npm",
		command.BitBar())
}

func TestBuild(t *testing.T) {
	command, err := Build("/usr/bin/sudo", "/usr/bin/gem", "update", "json")
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/sudo", command.Program)
	assert.Equal(t, []string{"/usr/bin/gem", "update", "json"}, command.Params)
}

func TestBuildRejectsWhitespace(t *testing.T) {
	_, err := Build("/usr/local/bin/pip3", "install", "--upgrade", "ccm (/Users/me/ccm)")
	assert.True(t, errors.Is(err, ErrWhitespace))

	_, err = Build("/Applications/My Tool/bin/tool", "upgrade")
	assert.True(t, errors.Is(err, ErrWhitespace))
}

func TestBuildRejectsEmptyTokens(t *testing.T) {
	_, err := Build("/usr/local/bin/brew", "upgrade", "")
	assert.True(t, errors.Is(err, ErrEmptyToken))

	_, err = Build("", "upgrade")
	assert.True(t, errors.Is(err, ErrEmptyToken))
}

func TestConfig(t *testing.T) {
	command, err := Build("/usr/local/bin/mas", "install", "497799835")
	require.NoError(t, err)

	config := command.Config()
	assert.Equal(t, "/usr/local/bin/mas", config.Command)
	assert.Equal(t, []string{"install", "497799835"}, config.Args)

	config.Args[0] = "changed"
	assert.Equal(t, "install", command.Params[0])
}
