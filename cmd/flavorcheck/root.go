package main

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag, logLevelFlag, logFormatFlag string
	ctx := newCommandContext(&configFlag, &logLevelFlag, &logFormatFlag)

	rootCmd := &cobra.Command{
		Use:   "flavorcheck",
		Short: "Diagnose Kaltura transcoding results for an entry",
		Long: `flavorcheck explains what happened when an entry was transcoded: which
flavors are ready, skipped, failed or still pending, how they line up with the
conversion profile, and whether the resulting bitrate ladder is sensible.

Run 'flavorcheck config init' once, then 'flavorcheck inspect ENTRY_ID'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.StringVar(&logFormatFlag, "log-format", "", "Log format override (console, json)")

	rootCmd.AddCommand(
		newInspectCommand(ctx),
		newEnumsCommand(),
		newConfigCommand(ctx),
	)
	return rootCmd
}
