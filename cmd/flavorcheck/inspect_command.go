package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"flavorcheck/internal/config"
	"flavorcheck/internal/fileutil"
	"flavorcheck/internal/kaltura"
	"flavorcheck/internal/logging"
	"flavorcheck/internal/report"
	"flavorcheck/internal/services"
)

type inspectFlags struct {
	entryID     string
	partnerID   int
	adminSecret string
	adminUserID string
	serviceURL  string
	includeURLs bool
	jsonOut     bool
	output      string
	color       string
	threshold   float64
	barWidth    int
	noProgress  bool
	debug       bool
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var flags inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect [ENTRY_ID]",
		Short: "Classify the flavors of an entry and analyze its conversion profile",
		Long: `Fetch an entry, its flavor assets and its conversion profile, then report
how every flavor was classified, which profile targets are missing or
redundant, and how the playable ladder is shaped.

Exit codes: 0 success, 1 failure or bad configuration, 2 authentication
failure, 3 entry not found, 4 API failure, 130 interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := resolveEntryID(args, flags.entryID)
			if err != nil {
				return err
			}
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			applyInspectFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}

			logger, err := ctx.newLogger(cmd.ErrOrStderr(), flags.debug)
			if err != nil {
				return err
			}
			return runInspect(cmd, &cfg, logger, entryID, flags.output)
		},
	}

	cmd.Flags().StringVar(&flags.entryID, "entry-id", "", "Entry to inspect (alternative to the positional argument)")
	cmd.Flags().IntVar(&flags.partnerID, "partner-id", 0, "Partner id (overrides kaltura.partner_id)")
	cmd.Flags().StringVar(&flags.adminSecret, "admin-secret", "", "Admin secret (overrides kaltura.admin_secret)")
	cmd.Flags().StringVar(&flags.adminUserID, "admin-user-id", "", "User id for the admin session")
	cmd.Flags().StringVar(&flags.serviceURL, "service-url", "", "Kaltura service URL")
	cmd.Flags().BoolVar(&flags.includeURLs, "include-urls", false, "Resolve download URLs for playable flavors")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "Emit the report as JSON")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&flags.color, "color", "", "Color mode: auto, always or never")
	cmd.Flags().Float64Var(&flags.threshold, "near-duplicate-threshold", 0, "Relative bitrate gap reported as near duplicate (0-1)")
	cmd.Flags().IntVar(&flags.barWidth, "bar-width", 0, "Width of the widest ladder bar")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "Disable the progress indicator")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	return cmd
}

func resolveEntryID(args []string, flagValue string) (string, error) {
	flagValue = strings.TrimSpace(flagValue)
	var positional string
	if len(args) > 0 {
		positional = strings.TrimSpace(args[0])
	}
	switch {
	case positional != "" && flagValue != "" && positional != flagValue:
		return "", services.Wrap(services.ErrValidation, "cli", "inspect",
			fmt.Sprintf("conflicting entry ids %q and --entry-id %q", positional, flagValue), nil)
	case positional != "":
		return positional, nil
	case flagValue != "":
		return flagValue, nil
	default:
		return "", services.Wrap(services.ErrValidation, "cli", "inspect", "entry id is required (pass ENTRY_ID or --entry-id)", nil)
	}
}

// applyInspectFlags layers explicitly set flags over the loaded config.
func applyInspectFlags(cmd *cobra.Command, cfg *config.Config, flags inspectFlags) {
	changed := cmd.Flags().Changed
	if changed("partner-id") {
		cfg.Kaltura.PartnerID = flags.partnerID
	}
	if changed("admin-secret") {
		cfg.Kaltura.AdminSecret = strings.TrimSpace(flags.adminSecret)
	}
	if changed("admin-user-id") {
		cfg.Kaltura.AdminUserID = strings.TrimSpace(flags.adminUserID)
	}
	if changed("service-url") {
		cfg.Kaltura.ServiceURL = strings.TrimSpace(flags.serviceURL)
	}
	if changed("include-urls") {
		cfg.Output.IncludeURLs = flags.includeURLs
	}
	if changed("json") && flags.jsonOut {
		cfg.Output.Format = "json"
	}
	if changed("color") {
		cfg.Output.Color = strings.ToLower(strings.TrimSpace(flags.color))
	}
	if changed("near-duplicate-threshold") {
		cfg.Analysis.NearDuplicateThreshold = flags.threshold
	}
	if changed("bar-width") {
		cfg.Output.BarWidth = flags.barWidth
	}
	if changed("no-progress") && flags.noProgress {
		cfg.Output.Progress = false
	}
}

func runInspect(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, entryID, output string) error {
	client, err := kaltura.New(kalturaConfig(cfg, logger))
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	progress := newFetchProgress(stderr, cfg.Output.Progress && isTerminal(stderr), shouldColorize(cfg.Output.Color, stderr))
	inspector := report.NewInspector(client, logger, report.Options{
		IncludeURLs:  cfg.Output.IncludeURLs,
		Analysis:     cfg.AnalysisOptions(),
		Ladder:       cfg.LadderOptions(),
		OnFlavorPage: progress.flavorPage,
		OnParams:     progress.params,
	})
	rep, err := inspector.Inspect(cmd.Context(), entryID)
	progress.finish()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		logging.ErrorWithContext(logger, "inspection failed", services.Category(err),
			logging.String(logging.FieldEntryID, entryID),
			logging.Error(err),
		)
		return err
	}

	target := strings.TrimSpace(output)
	if target == "" {
		return writeReport(cmd.OutOrStdout(), rep, cfg, shouldColorize(cfg.Output.Color, cmd.OutOrStdout()))
	}

	path, err := config.ExpandPath(target)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	var buf bytes.Buffer
	if err := writeReport(&buf, rep, cfg, cfg.Output.Color == "always"); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(cmd.Context(), path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", logging.String("path", path))
	return nil
}

func writeReport(w io.Writer, rep *report.Report, cfg *config.Config, colorize bool) error {
	if cfg.Output.Format == "json" {
		return writeJSON(w, rep)
	}
	return renderReport(w, rep, renderOptions{
		Colorize:    colorize,
		IncludeURLs: cfg.Output.IncludeURLs,
	})
}

func kalturaConfig(cfg *config.Config, logger *slog.Logger) kaltura.Config {
	retries := cfg.Kaltura.MaxRetries
	if retries == 0 {
		// the client treats zero as "use the default"
		retries = -1
	}
	return kaltura.Config{
		ServiceURL:        cfg.Kaltura.ServiceURL,
		PartnerID:         cfg.Kaltura.PartnerID,
		AdminSecret:       cfg.Kaltura.AdminSecret,
		AdminUserID:       cfg.Kaltura.AdminUserID,
		SessionExpiry:     cfg.SessionExpiry(),
		PageSize:          cfg.Kaltura.PageSize,
		RequestsPerSecond: cfg.Kaltura.RequestsPerSecond,
		Burst:             cfg.Kaltura.Burst,
		MaxRetries:        retries,
		Timeout:           cfg.RequestTimeout(),
		UserAgent:         cfg.Kaltura.UserAgent,
		Logger:            logger,
	}
}
