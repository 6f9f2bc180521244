package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	pm "github.com/steelcutops/metapkg/metapkg/packagemanager"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known package managers and whether they are usable",
		Args:  cobra.NoArgs,
		RunE:  a.runList,
	}
}

func (a *app) runList(cmd *cobra.Command, args []string) error {
	common, overrides := a.options()

	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATE\tCLI")
	for _, m := range pm.All(overrides, common...) {
		state := "inactive"
		switch {
		case a.disabled(m.ID()):
			state = "disabled"
		case m.Active(cmd.Context()):
			state = "active"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID(), m.Name(), state, m.CLI())
	}
	return w.Flush()
}
