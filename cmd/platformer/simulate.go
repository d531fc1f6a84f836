package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagSteps  int
	flagScript string
	flagGame   string
	flagScreen bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the campaign headless with scripted input",
	Long: `Steps the game without a terminal UI and prints the final state and the
level run ledger as YAML.

A script is a comma separated list of actions:steps segments. Actions are
left, right, up (jump), down, fire, confirm, back, pause, restart and none;
join several with "+". Steps past the end of the script get no input.

Examples:
  platformer simulate --steps 400
  platformer simulate --script "right:150,right+up:1,right:100,fire:1"
  platformer simulate --game town --script "right:300" --screen`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSteps, "steps", 400, "Number of steps to run")
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Scripted input, e.g. right:100,up:1")
	simulateCmd.Flags().StringVar(&flagGame, "game", platformer.CampaignID, "Game to run: platformer or town")
	simulateCmd.Flags().BoolVar(&flagScreen, "screen", false, "Also print the final screen")
}

type heroReport struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Hearts int     `yaml:"hearts"`
	Armour int     `yaml:"armour"`
	Coins  int     `yaml:"coins"`
	Keys   int     `yaml:"keys"`
}

type runReport struct {
	Level   string `yaml:"level"`
	Outcome string `yaml:"outcome"`
	Coins   int    `yaml:"coins"`
	Keys    int    `yaml:"keys"`
	Ticks   int64  `yaml:"ticks"`
}

type simReport struct {
	Game       string         `yaml:"game"`
	Difficulty string         `yaml:"difficulty"`
	Seed       int64          `yaml:"seed"`
	Steps      int            `yaml:"steps"`
	Mode       string         `yaml:"mode"`
	Level      string         `yaml:"level,omitempty"`
	Tick       int64          `yaml:"tick"`
	Hash       string         `yaml:"hash,omitempty"`
	Hero       *heroReport    `yaml:"hero,omitempty"`
	Entities   map[string]int `yaml:"entities,omitempty"`
	Runs       []runReport    `yaml:"runs"`
	ElapsedMs  int64          `yaml:"elapsed_ms"`
}

func runSimulate(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	script, err := parseScript(flagScript)
	if err != nil {
		return err
	}

	ledger, err := storage.Open()
	if err != nil {
		return err
	}
	defer ledger.Close()

	opts, err := gameOptions(logger, ledger)
	if err != nil {
		return err
	}
	game, err := registry.Create(flagGame, opts)
	if err != nil {
		return err
	}
	g, ok := game.(*platformer.Game)
	if !ok {
		return fmt.Errorf("game %q cannot run headless", flagGame)
	}

	cfg := runtimeConfig(100, 30)
	g.Reset(cfg)
	if g.Err() != nil {
		return g.Err()
	}

	wall := core.NewWallClock()
	for _, in := range frames(script, flagSteps) {
		g.Step(in)
	}
	elapsed := wall.NowMillis()

	report := simReport{
		Game:       g.ID(),
		Difficulty: string(opts.Difficulty),
		Seed:       cfg.Seed,
		Steps:      flagSteps,
		Mode:       g.Mode().String(),
		Runs:       []runReport{},
		ElapsedMs:  elapsed,
	}
	if w := g.World(); w != nil {
		describeWorld(&report, w)
	}

	runs, err := ledger.Runs(g.RunID())
	if err != nil {
		return err
	}
	for _, r := range runs {
		report.Runs = append(report.Runs, runReport{
			Level:   r.LevelID,
			Outcome: string(r.Outcome),
			Coins:   r.Coins,
			Keys:    r.Keys,
			Ticks:   r.Ticks,
		})
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if flagScreen {
		scr := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		g.Render(scr)
		for y := 0; y < scr.Height(); y++ {
			fmt.Println(strings.TrimRight(scr.Row(y), " "))
		}
	}
	return nil
}

func describeWorld(r *simReport, w *world.World) {
	snap := w.Snapshot()
	r.Level = w.Level().ID
	r.Tick = snap.Tick
	r.Hash = fmt.Sprintf("%016x", snap.Hash())
	r.Hero = &heroReport{
		X: snap.HeroX, Y: snap.HeroY, VX: snap.HeroVX, VY: snap.HeroVY,
		Hearts: snap.Hearts, Armour: snap.Armour, Coins: snap.Coins, Keys: snap.Keys,
	}
	r.Entities = make(map[string]int)
	for _, e := range snap.Entities {
		r.Entities[e.Kind.String()]++
	}
}
