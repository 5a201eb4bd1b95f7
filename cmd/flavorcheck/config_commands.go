package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"flavorcheck/internal/config"
	"flavorcheck/internal/fileutil"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if exists, err := fileutil.Exists(target); err != nil {
				return fmt.Errorf("check config path: %w", err)
			} else if exists && !overwrite {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
			}
			if err := config.CreateSample(cmd.Context(), target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintf(out, "Set kaltura.partner_id and kaltura.admin_secret (or export %s and %s) before running inspect.\n",
				config.EnvPartnerID, config.EnvAdminSecret)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func initTarget(flagPath string) (string, error) {
	flagPath = strings.TrimSpace(flagPath)
	if flagPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(flagPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// newConfigValidateCommand loads the configuration through the shared
// context, so --config and the log overrides are honoured. Missing
// credentials are reported but do not fail validation.
func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and report missing credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configFile {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Service URL: %s\n", cfg.Kaltura.ServiceURL)
			credErr := cfg.RequireCredentials()
			fmt.Fprintf(out, "Credentials: %s\n", yesNo(credErr == nil))
			if credErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", credErr)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
