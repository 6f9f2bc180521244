// Package action turns shell-style upgrade command lines into runnable
// invocations and into the discrete program/parameter form expected by menu
// bar hosts such as BitBar.
//
// Decomposition splits on whitespace, so no argument may itself contain
// whitespace. Build enforces this for the commands synthesized by package
// managers; Parse assumes it.
package action

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	cm "github.com/steelcutops/metapkg/metapkg/commandmanager"
)

var (
	ErrEmpty      = errors.New("action: empty command line")
	ErrWhitespace = errors.New("action: argument contains whitespace")
	ErrEmptyToken = errors.New("action: empty argument")
)

// Command is a program reference plus its ordered positional parameters.
type Command struct {
	Program string   `json:"program" yaml:"program"`
	Params  []string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Parse decomposes line into a program and its parameters.
func Parse(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmpty
	}
	return &Command{Program: fields[0], Params: fields[1:]}, nil
}

// Build formats program and args into a command line and decomposes it. It
// refuses empty tokens and tokens with embedded whitespace, which Parse could
// not recover.
func Build(program string, args ...string) (*Command, error) {
	tokens := append([]string{program}, args...)
	for _, token := range tokens {
		if token == "" {
			return nil, ErrEmptyToken
		}
		if strings.IndexFunc(token, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrWhitespace, token)
		}
	}
	return Parse(strings.Join(tokens, " "))
}

// String returns the literal, directly runnable command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Program}, c.Params...), " ")
}

// BitBar returns the command in BitBar's "bash=... paramN=..." notation.
func (c *Command) BitBar() string {
	var b strings.Builder
	b.WriteString("bash=")
	b.WriteString(c.Program)
	for i, param := range c.Params {
		fmt.Fprintf(&b, " param%d=%s", i+1, param)
	}
	return b.String()
}

// Config returns the invocation in the form taken by a CommandManager.
func (c *Command) Config() cm.CommandConfig {
	return cm.CommandConfig{
		Command: c.Program,
		Args:    append([]string(nil), c.Params...),
	}
}
