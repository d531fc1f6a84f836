// platformer is a 2D tile platformer that runs in the terminal, in a window,
// or headless.
//
// Usage:
//
//	platformer play               - Play the campaign in the terminal
//	platformer town               - Start with a town visit
//	platformer menu               - Pick game, difficulty and level interactively
//	platformer gui                - Play the campaign in a desktop window
//	platformer levels             - List builtin and --dir levels
//	platformer validate <file...> - Check level files for errors
//	platformer simulate           - Run the campaign headless with scripted input
//
// Global flags:
//
//	--fps <rate>          - Simulation steps per second (default: 40)
//	--seed <value>        - RNG seed for reproducible runs
//	--config <path>       - Custom platformer.yaml
//	--difficulty <name>   - normal, impossible or god
//	--level <id>          - Level to start from
//	--dir <path>          - Extra level files appended to the campaign
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Where logs go while the terminal UI is running
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagDir        string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "A tile platformer for your terminal",
	Long: `Run through tile levels, collect keys and coins, shoot orcs and flies,
and spend your coins in town between levels.

Available commands:
  play      - Play the campaign in the terminal
  town      - Start the campaign with a town visit
  menu      - Interactive start menu
  gui       - Play in a desktop window
  levels    - List available levels
  validate  - Check level files
  simulate  - Headless run with scripted input

Examples:
  platformer play
  platformer play --difficulty impossible --level 02-caverns
  platformer levels --dir ./my-levels
  platformer simulate --steps 600 --script "right:200,right+up:1,right:200"`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", core.DefaultTickRate, "Simulation steps per second")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", string(config.DifficultyNormal), "Difficulty: normal, impossible, god")
	pf.StringVar(&flagLevel, "level", "", "Level id to start from")
	pf.StringVar(&flagDir, "dir", "", "Directory of extra level files (.lvl, .txt, .yaml)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (the terminal UI discards logs without one)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(townCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the process logger. Interactive terminal sessions own
// stdout and stderr, so they only log when --log-file is given.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		//nolint:errcheck // Best-effort close on exit
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           level,
	})
	return logger, closeFn, nil
}

// gameOptions resolves the config, difficulty and level flags.
func gameOptions(logger *log.Logger, ledger *storage.Ledger) (registry.Options, error) {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return registry.Options{}, err
	}
	diff, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return registry.Options{}, err
	}
	return registry.Options{
		Config:     &cfg,
		Difficulty: diff,
		StartLevel: flagLevel,
		LevelDir:   flagDir,
		Logger:     logger,
		Ledger:     ledger,
	}, nil
}

// runtimeConfig builds the runtime config for a view of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// printSummary writes the ledger summary of a finished session.
func printSummary(w io.Writer, ledger *storage.Ledger, runID string) {
	if ledger == nil {
		return
	}
	s, err := ledger.Summary(runID)
	if err != nil || s.Runs == 0 {
		return
	}
	fmt.Fprintf(w, "Levels played: %d  cleared: %d  deaths: %d  best coins: %d\n",
		s.Runs, s.Cleared, s.Deaths, s.BestCoins)
}
