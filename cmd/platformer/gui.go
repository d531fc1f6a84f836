package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/gui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagCols int
	flagRows int
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play the campaign in a desktop window",
	Long: `Opens a window and plays the campaign there. Keys work as in the
terminal, but held keys are real key state. Q closes the window.

Examples:
  platformer gui
  platformer gui --cols 120 --rows 40 --difficulty god`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	guiCmd.Flags().IntVar(&flagCols, "cols", 100, "Window width in cells")
	guiCmd.Flags().IntVar(&flagRows, "rows", 36, "Window height in cells")
}

func runGUI(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
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
	game, err := registry.Create(platformer.CampaignID, opts)
	if err != nil {
		return err
	}
	if err := gui.Run(game, runtimeConfig(flagCols, flagRows)); err != nil {
		return err
	}

	if g, ok := game.(*platformer.Game); ok {
		if g.Err() != nil {
			return g.Err()
		}
		printSummary(os.Stdout, ledger, g.RunID())
	}
	return nil
}
