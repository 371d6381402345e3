package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/securevault/vault-system/internal/core/service"
	"github.com/securevault/vault-system/internal/infrastructure/config"
	"github.com/securevault/vault-system/internal/infrastructure/vaultclient"
	"github.com/securevault/vault-system/internal/tui"
	"github.com/securevault/vault-system/pkg/logger"
)

func newTerminalCmd() *cobra.Command {
	var endpoint string
	cmd := &cobra.Command{
		Use:   "terminal",
		Short: "Open the login gate and search terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadTerminal(cmd.Context())
			if err != nil {
				return err
			}
			if endpoint != "" {
				cfg.Endpoint = endpoint
			}
			return runTerminal(cfg)
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "secure-search URL (overrides VAULT_ENDPOINT)")
	return cmd
}

func runTerminal(cfg *config.TerminalConfig) error {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open terminal log: %w", err)
	}
	defer f.Close()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Output: f, Service: "vault-terminal"})

	client, err := vaultclient.New(cfg.Endpoint, vaultclient.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info().Str("endpoint", client.Endpoint()).Msg("terminal started")

	p := tea.NewProgram(tui.New(service.NewGate(), client, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}
