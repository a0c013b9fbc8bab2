package main

import (
	"github.com/spf13/cobra"

	"github.com/xentee/skinticket/pkg/logger"
)

type rootFlags struct {
	logLevel string
	json     bool
	log      logger.Logger
}

// newRootCmd builds the command tree around log. A nil log discards output.
func newRootCmd(log logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.NewNop()
	}
	flags := &rootFlags{log: log}
	root := &cobra.Command{
		Use:   "ticketctl",
		Short: "Operate the CS2 ticket bot",
		Long: `ticketctl runs the bot's building blocks from a terminal.

Configuration is read the same way as the bot: defaults, .env,
the YAML file named by TICKET_CONFIG, then TICKET_* variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if flags.logLevel == "" {
				return nil
			}
			return logger.SetLevelString(flags.logLevel)
		},
	}
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override the log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "print JSON instead of a table")

	root.AddCommand(
		newResolveCmd(flags),
		newPrettifyCmd(flags),
		newPostPanelCmd(flags),
		newProbeCmd(flags),
		newStatsCmd(flags),
	)
	return root
}
