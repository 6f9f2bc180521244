package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	pm "github.com/steelcutops/metapkg/metapkg/packagemanager"
)

func newUpgradeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <manager>",
		Short: "Upgrade every outdated package of a manager",
		Long: `Sync the manager, then upgrade its outdated packages one after the other.

Known managers: ` + strings.Join(pm.IDs(), ", ") + `.
A missing, unknown, disabled or inactive manager is ignored.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: pm.IDs(),
		RunE:      a.runUpgrade,
	}
}

func (a *app) runUpgrade(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		a.logger.Warn("No manager given, nothing to upgrade")
		return nil
	}
	id := args[0]
	log := a.logger.WithField("manager", id)

	if a.disabled(id) {
		log.Info("Manager disabled by configuration, nothing to upgrade")
		return nil
	}

	common, overrides := a.options()
	manager, err := pm.New(id, append(common, overrides(id)...)...)
	if errors.Is(err, pm.ErrUnknownManager) {
		log.Warn("Unknown manager, nothing to upgrade")
		return nil
	}
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if !manager.Active(ctx) {
		log.Info("Manager not active, nothing to upgrade")
		return nil
	}

	if err := pm.UpgradeAll(ctx, manager, a.commandManager); err != nil {
		return err
	}
	log.Info("Upgraded")
	return nil
}
