package main

import (
	"github.com/gomantics/qoi/internal/config"
	"github.com/gomantics/qoi/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time using -ldflags.
var Version = "0.0.0-dev"

// app carries the resolved settings from the root command to subcommands.
type app struct {
	configPath string
	debug      bool
	humanLogs  bool

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "qoiinfo",
		Short:         "Inspect QOI image files",
		Long:          `qoiinfo validates the header, size bounds and end marker of QOI files and prints their metadata.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a TOML config file")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&a.humanLogs, "human-logs", false, "write human-friendly logs instead of JSON")

	root.AddCommand(newInspectCmd(a), newKindsCmd(a), newVersionCmd())
	return root
}

// load reads the config file, lets explicitly set flags win, and
// configures logging.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("human-logs") {
		cfg.HumanLogs = a.humanLogs
	}

	logging.Init(cfg.Debug, cfg.HumanLogs)
	logging.L().Debug().Str("config", a.configPath).Int("workers", cfg.Workers).Msg("configuration loaded")

	a.cfg = cfg
	return nil
}
