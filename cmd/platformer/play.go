package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const controlsHelp = `Controls:
  Left/Right, A/D   - Run
  Up, W, Space      - Jump (walk up in town)
  Down, S           - Walk down in town
  F, X              - Shoot / use the shop door
  Enter             - Buy
  Esc               - Leave the shop
  P                 - Pause
  R                 - Retry after dying
  Tab               - Level runs of this session
  Q, Ctrl+C         - Quit`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign in the terminal",
	Long: `Start the campaign from the first level (or --level).

` + controlsHelp + `

Examples:
  platformer play
  platformer play --difficulty impossible
  platformer play --level 03-fortress --seed 42
  platformer play --dir ./levels --log-file play.log`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return playTerminal(platformer.CampaignID)
	},
}

var townCmd = &cobra.Command{
	Use:   "town",
	Short: "Start the campaign with a town visit",
	Long: `Start in the town hub. Leaving through the town door starts the first
level (or --level).

` + controlsHelp,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return playTerminal(platformer.TownID)
	},
}

// terminalSize returns the terminal size, falling back to 80x24.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func playTerminal(gameID string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	ledger, err := storage.Open()
	if err != nil {
		// The game still works without a ledger.
		logger.Warn("could not open run ledger", "err", err)
		ledger = nil
	}
	if ledger != nil {
		defer ledger.Close()
	}

	opts, err := gameOptions(logger, ledger)
	if err != nil {
		return err
	}
	width, height := terminalSize()
	return runTerminal(gameID, opts, runtimeConfig(width, height), ledger)
}

// runTerminal plays one game in the terminal and prints the session summary.
func runTerminal(gameID string, opts registry.Options, cfg core.RuntimeConfig, ledger *storage.Ledger) error {
	game, err := registry.Create(gameID, opts)
	if err != nil {
		return err
	}

	if err := tui.Run(game, ledger, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if g, ok := game.(*platformer.Game); ok {
		if g.Err() != nil {
			return g.Err()
		}
		printSummary(os.Stdout, ledger, g.RunID())
	}
	return nil
}
