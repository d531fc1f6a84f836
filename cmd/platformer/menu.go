package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick game, difficulty and level interactively",
	Long: `Start with a menu. Use Up/Down to pick a row, Left/Right to change it
and Enter to start. After the game ends you return to the menu.

Examples:
  platformer menu
  platformer menu --dir ./levels`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	ledger, err := storage.Open()
	if err != nil {
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
	all, err := loadLevels(logger)
	if err != nil {
		return err
	}
	ids := make([]string, len(all))
	for i, l := range all {
		ids[i] = l.ID
	}

	cfg := runtimeConfig(terminalSize())
	for {
		choice, updated, ok, err := tui.RunMenu(ids, cfg)
		if err != nil {
			return err
		}
		cfg = updated
		if !ok {
			return nil
		}

		opts.Difficulty = choice.Difficulty
		if opts.Difficulty == "" {
			opts.Difficulty = config.DifficultyNormal
		}
		opts.StartLevel = choice.StartLevel
		if err := runTerminal(choice.GameID, opts, cfg, ledger); err != nil {
			logger.Error("game stopped", "err", err)
			return err
		}
	}
}
