package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/coinchat/internal/logger"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat panel with the analysis service.

Type a coin pair and press Enter to ask for a prediction. Several requests
may be in flight at once; each answer lands in its own bubble.
Press Esc or Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, g)
		},
	}
}

func runChat(cmd *cobra.Command, deps *Dependencies, g *globalFlags) error {
	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return err
	}

	analyzer, release, err := deps.newAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer release()

	logger.Info("chat session started", "server", cfg.ServerURL)
	defer logger.Info("chat session ended")

	return deps.TUI.RunChat(analyzer, cfg)
}
