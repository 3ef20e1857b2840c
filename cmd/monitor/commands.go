package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Adda-Baaj/notice-watch/internal/app"
	"github.com/Adda-Baaj/notice-watch/internal/config"
	"github.com/Adda-Baaj/notice-watch/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "notice-watch",
		Short: "Watch announcement pages and push new entries",
		Long: `notice-watch checks each configured announcement page once, compares the
links it finds with the stored history and sends one notification per site
that published something new.

Example usage:
  notice-watch                          # Run one check cycle
  notice-watch check --config sites.yaml
  notice-watch history                  # Print the stored history
  notice-watch sites                    # List configured sites`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	root.PersistentFlags().String("config", "", "watchlist file (default ./configs/watchlist.yaml)")
	root.PersistentFlags().String("history", "", "history file (default ./data/announcements.json)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Run one check cycle over all enabled sites",
			Args:  cobra.NoArgs,
			RunE:  runCheck,
		},
		&cobra.Command{
			Use:   "history",
			Short: "Print the stored history as JSON",
			Args:  cobra.NoArgs,
			RunE:  runHistory,
		},
		&cobra.Command{
			Use:     "sites",
			Aliases: []string{"ls"},
			Short:   "List the sites in the watchlist",
			Args:    cobra.NoArgs,
			RunE:    runSites,
		},
	)
	return root
}

// setup loads configuration, starts logging and builds the runtime. Errors here
// are configuration errors and end the process with a non-zero status.
func setup(cmd *cobra.Command) (*app.Monitor, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.InfoObj("notice-watch starting", "config", cfg.Summary())

	m, err := app.NewMonitor(cmd.Context(), cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize monitor", "error", err.Error())
		logger.Close()
		return nil, err
	}
	return m, nil
}

func teardown(m *app.Monitor) {
	_ = m.Close()
	_ = logger.Close()
}

// runCheck runs a single cycle. Site, notification and history save failures are
// logged and do not fail the command.
func runCheck(cmd *cobra.Command, _ []string) error {
	m, err := setup(cmd)
	if err != nil {
		return err
	}
	defer teardown(m)

	if _, err := m.RunOnce(cmd.Context()); err != nil {
		logger.ErrorObj("check cycle ended with error", "error", err.Error())
	}
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	m, err := setup(cmd)
	if err != nil {
		return err
	}
	defer teardown(m)

	h, err := m.History(cmd.Context())
	if err != nil {
		logger.WarnObj("stored history could not be read", "history_error", err.Error())
	}
	return writeJSON(cmd.OutOrStdout(), h)
}

type siteView struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
}

func runSites(cmd *cobra.Command, _ []string) error {
	m, err := setup(cmd)
	if err != nil {
		return err
	}
	defer teardown(m)

	all := m.Sites()
	out := make([]siteView, 0, len(all))
	for _, s := range all {
		out = append(out, siteView{Name: s.Name, URL: s.URL, Type: s.Type, Enabled: s.Enabled})
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
