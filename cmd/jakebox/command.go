package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jakebox/tui/internal/app"
	"github.com/jakebox/tui/internal/client"
	"github.com/jakebox/tui/internal/config"
	"github.com/jakebox/tui/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCmd() *cobra.Command {
	flags := &config.Flags{}

	cmd := &cobra.Command{
		Use:     "jakebox",
		Short:   "Join a JAKEBOX party-game lobby from the terminal.",
		Args:    cobra.NoArgs,
		Version: releaseVersion,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.BindEnv(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Resolve(cmd.Flags(), flags)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags.Register(cmd.Flags())

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("jakebox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func run(cfg *config.Config) error {
	log, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("version", releaseVersion),
		zap.String("base_url", cfg.Server.BaseURL),
		zap.Duration("join_timeout", cfg.Server.JoinTimeout))

	httpClient := client.NewHTTPClient(cfg.Server.BaseURL, cfg.Server.JoinTimeout, log)
	m := app.New(httpClient, log, cfg.UI.Style)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("program exited", zap.Error(err))
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
