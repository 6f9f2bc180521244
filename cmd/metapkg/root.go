package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/steelcutops/metapkg/logger"
	cm "github.com/steelcutops/metapkg/metapkg/commandmanager"
	em "github.com/steelcutops/metapkg/metapkg/environmentmanager"
	fm "github.com/steelcutops/metapkg/metapkg/filemanager"
	mg "github.com/steelcutops/metapkg/metapkg/managergroup"
	pm "github.com/steelcutops/metapkg/metapkg/packagemanager"
	"github.com/steelcutops/metapkg/metapkg/report"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type flags struct {
	ConfigPath  string
	Debug       bool
	LogFileName string
	Format      string
	Timeout     time.Duration
	Concurrency int
	Color       string
}

// app carries the collaborators shared by every sub-command.
type app struct {
	flags flags

	fs             afero.Fs
	environment    em.EnvironmentManager
	commandManager cm.CommandManager
	self           string
	// selfArgs are the global flags repeated on self re-invocations.
	selfArgs []string
	stdout         io.Writer

	config   *Config
	logger   *logrus.Logger
	closeLog func() error
}

func newApp() *app {
	return &app{
		fs:          afero.NewOsFs(),
		environment: em.ProcessEnvironmentManager{},
		self:        selfPath(),
		stdout:      os.Stdout,
	}
}

// selfPath is the program to re-invoke for upgrade-all actions.
func selfPath() string {
	if path, err := os.Executable(); err == nil {
		return path
	}
	return os.Args[0]
}

// Execute runs the command line of the current process.
func Execute() error {
	return newRootCommand(newApp()).Execute()
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "metapkg",
		Short: "List and apply available updates of all package managers",
		Long: `metapkg - meta package manager

Collects outdated packages from Homebrew, Homebrew Cask, pip, apm, npm,
Ruby gems and the Mac App Store, and prints them with the commands
upgrading them. The default output is a BitBar plugin menu.`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE:               a.runMenu,
	}

	f := &a.flags
	root.PersistentFlags().StringVar(&f.ConfigPath, "config", DefaultConfigPath(), "INI configuration file")
	root.PersistentFlags().BoolVar(&f.Debug, "debug", false, "Enable debug log level")
	root.PersistentFlags().StringVar(&f.LogFileName, "log", "", "Append logs to this file instead of stderr")
	root.PersistentFlags().DurationVar(&f.Timeout, "timeout", mg.DefaultTimeout, "Deadline of each manager's sync, 0 for none (overrides config)")
	root.PersistentFlags().IntVar(&f.Concurrency, "concurrency", mg.DefaultConcurrency, "Number of managers synced at once (overrides config)")
	root.Flags().StringVar(&f.Format, "format", report.FormatBitBar, "Output format: bitbar, text, json or yaml")
	root.Flags().StringVar(&f.Color, "color", colorAuto, "Colorize text output: auto, always or never")

	root.AddCommand(newUpgradeCommand(a), newListCommand(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	log, closeLog, err := logger.New(logger.Options{
		Debug: a.flags.Debug,
		File:  a.flags.LogFileName,
		Out:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logger, a.closeLog = log, closeLog

	if a.config, err = LoadConfig(a.fs, a.flags.ConfigPath); err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		a.config.Timeout = a.flags.Timeout
	}
	if cmd.Flags().Changed("concurrency") {
		a.config.Concurrency = a.flags.Concurrency
	}

	if err := em.WidenPath(a.environment, a.config.Path); err != nil {
		a.logger.WithError(err).Warn("Cannot widen PATH")
	}

	a.selfArgs = forwardedFlags(cmd)

	if a.commandManager == nil {
		a.commandManager = &cm.UnixCommandManager{Logger: a.logger}
	}

	a.logger.WithFields(logrus.Fields{
		"config":      a.flags.ConfigPath,
		"timeout":     a.config.Timeout,
		"concurrency": a.config.Concurrency,
	}).Debug("Configured")
	return nil
}

// forwardedFlags returns the global flags given on the command line that an
// upgrade sub-command run later must see too.
func forwardedFlags(cmd *cobra.Command) []string {
	var args []string
	flags := cmd.Flags()
	for _, name := range []string{"config", "log"} {
		if flags.Changed(name) {
			args = append(args, "--"+name+"="+flags.Lookup(name).Value.String())
		}
	}
	if flags.Changed("debug") {
		args = append(args, "--debug="+flags.Lookup("debug").Value.String())
	}
	return args
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

func (a *app) disabled(id string) bool {
	return a.config.Managers[id].Disabled
}

// options returns what every manager is built with; overrides holds the
// per-manager settings of the configuration file.
func (a *app) options() (common []pm.Option, overrides func(id string) []pm.Option) {
	common = []pm.Option{
		pm.WithCommandManager(a.commandManager),
		pm.WithFileManager(&fm.UnixFileManager{Fs: a.fs}),
		pm.WithLogger(a.logger),
		pm.WithSelf(a.self, a.selfArgs...),
	}
	overrides = func(id string) []pm.Option {
		if cli := a.config.Managers[id].CLI; cli != "" {
			return []pm.Option{pm.WithCLI(cli)}
		}
		return nil
	}
	return common, overrides
}

// group builds the enabled managers, in report order.
func (a *app) group() *mg.ManagerGroup {
	common, overrides := a.options()

	group := mg.NewManagerGroup()
	group.Concurrency = a.config.Concurrency
	group.Timeout = a.config.Timeout
	group.Logger = a.logger
	for _, m := range pm.All(overrides, common...) {
		if a.disabled(m.ID()) {
			a.logger.WithField("manager", m.ID()).Debug("Manager disabled by configuration")
			continue
		}
		group.AddManager(m)
	}
	return group
}

func (a *app) runMenu(cmd *cobra.Command, args []string) error {
	colored, err := a.colored()
	if err != nil {
		return err
	}
	renderer, err := report.New(a.flags.Format, colored)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	group := a.group()
	group.Discover(ctx)
	group.Sync(ctx)

	if err := group.Err(); err != nil {
		a.logger.WithError(err).Warn("Some managers failed")
	}

	return renderer.Render(a.stdout, group.Summary())
}

func (a *app) colored() (bool, error) {
	switch a.flags.Color {
	case colorAlways:
		return true, nil
	case colorNever:
		return false, nil
	case colorAuto:
		if f, ok := a.stdout.(*os.File); ok {
			return term.IsTerminal(int(f.Fd())), nil
		}
		return false, nil
	}
	return false, fmt.Errorf("invalid --color %q (expected auto, always or never)", a.flags.Color)
}
