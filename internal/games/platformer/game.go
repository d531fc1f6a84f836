// Package platformer implements the campaign: a sequence of tile levels
// with a town visit between them. The simulation itself lives in the world
// and town subpackages; this package strings them together behind the
// registry.Game interface.
package platformer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/camera"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/town"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Game IDs.
const (
	CampaignID = "platformer"
	TownID     = "town"
)

func init() {
	registry.Register(CampaignID, func(opts registry.Options) registry.Game {
		return New(CampaignID, opts)
	})
	registry.Register(TownID, func(opts registry.Options) registry.Game {
		return New(TownID, opts)
	})
}

// Mode is what the campaign is currently showing.
type Mode int

const (
	ModeLevel Mode = iota
	ModeTown
	ModeDead
	ModeVictory
	ModeError
)

func (m Mode) String() string {
	switch m {
	case ModeLevel:
		return "level"
	case ModeTown:
		return "town"
	case ModeDead:
		return "dead"
	case ModeVictory:
		return "victory"
	default:
		return "error"
	}
}

// Game runs a campaign. The "town" variant starts with a hub visit before
// the first level.
type Game struct {
	id     string
	opts   registry.Options
	cfg    config.PlatformerConfig
	diff   config.Difficulty
	logger *log.Logger
	ledger *storage.Ledger

	runtime core.RuntimeConfig
	clock   *core.TickClock
	cam     *camera.Camera

	levels []*levels.Level
	town   *levels.Town
	index  int
	mode   Mode
	paused bool
	err    error

	// carry is the profile the current level started with; nil on a fresh run.
	carry    *world.HeroProfile
	runID    string
	recorded bool

	world *world.World
	hub   *town.Hub
}

// New creates a campaign. Nothing is loaded until Reset.
func New(id string, opts registry.Options) *Game {
	cfg := config.DefaultPlatformerConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	diff := opts.Difficulty
	if diff == "" {
		diff = config.DifficultyNormal
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		id:     id,
		opts:   opts,
		cfg:    cfg,
		diff:   diff,
		logger: logger,
		ledger: opts.Ledger,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.id == TownID {
		return "Town Visit"
	}
	return "Platformer Campaign"
}

// Reset loads the levels and starts a fresh run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	g.runtime = cfg
	g.clock = core.NewTickClock(cfg.TickRate)
	g.paused = false
	g.err = nil
	g.carry = nil
	g.runID = storage.NewRunID()
	g.world = nil
	g.hub = nil

	start, err := g.load()
	if err != nil {
		g.fail(err)
		return
	}
	g.logger.Info("campaign started", "game", g.id, "run", g.runID, "difficulty", g.diff, "levels", len(g.levels))

	if g.id == TownID {
		g.index = start - 1
		g.enterTown()
		return
	}
	g.startLevel(start)
}

// load reads the builtin campaign, any extra level directory and the town.
// It returns the index of the first level to play.
func (g *Game) load() (int, error) {
	if _, err := g.cfg.Profile(g.diff); err != nil {
		return 0, err
	}
	if g.levels == nil {
		lvls, err := levels.Builtin()
		if err != nil {
			return 0, err
		}
		if g.opts.LevelDir != "" {
			extra, err := levels.NewLoader(g.opts.LevelDir).LoadAll()
			if err != nil {
				g.logger.Warn("some level files were rejected", "dir", g.opts.LevelDir, "err", err)
			}
			lvls = append(lvls, extra...)
		}
		if len(lvls) == 0 {
			return 0, fmt.Errorf("%w: no levels to play", levels.ErrMalformedLevel)
		}
		g.levels = lvls
	}
	if g.town == nil {
		t, err := levels.BuiltinTown()
		if err != nil {
			return 0, err
		}
		g.town = t
	}

	if g.opts.StartLevel == "" {
		return 0, nil
	}
	for i, lvl := range g.levels {
		if lvl.ID == g.opts.StartLevel {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", g.opts.StartLevel)
}

func (g *Game) fail(err error) {
	g.err = err
	g.mode = ModeError
	g.logger.Error("campaign stopped", "game", g.id, "err", err)
}

// startLevel builds a fresh world for level i using the saved profile.
func (g *Game) startLevel(i int) {
	g.index = i
	g.clock.Reset()
	g.hub = nil
	w, err := world.New(g.levels[i], world.Options{
		Config:     &g.cfg,
		Difficulty: g.diff,
		Seed:       g.runtime.Seed,
		Logger:     g.logger,
		Profile:    g.carry,
	})
	if err != nil {
		g.fail(err)
		return
	}
	g.world = w
	g.recorded = false
	g.mode = ModeLevel
	g.cam = g.newCamera(w.Size())
	g.cam.Update(w.Hero().Rect())
}

func (g *Game) enterTown() {
	g.clock.Reset()
	profile := g.currentProfile()
	h, err := town.New(g.town, town.Options{
		Config:     &g.cfg,
		Difficulty: g.diff,
		Logger:     g.logger,
		Profile:    profile,
	})
	if err != nil {
		g.fail(err)
		return
	}
	g.hub = h
	g.world = nil
	g.mode = ModeTown
	g.cam = g.newCamera(h.Size())
	g.cam.Update(h.Hero().Rect())
	g.logger.Info("entered town", "coins", profile.Coins, "hearts", profile.Hearts, "armour", profile.Armour)
}

// newCamera sizes a camera to the configured screen. Render refits it when
// the actual screen differs.
func (g *Game) newCamera(worldW, worldH float64) *camera.Camera {
	rows := max(g.runtime.ScreenH-hudRows, 0)
	return camera.New(float64(g.runtime.ScreenW*CellW), float64(rows*CellH), worldW, worldH)
}

// currentProfile is the carried profile, or a fresh hero's.
func (g *Game) currentProfile() world.HeroProfile {
	if g.carry != nil {
		return *g.carry
	}
	return world.HeroProfile{Hearts: g.cfg.Hero.MaxHearts}
}

// Step advances the active scene by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.mode == ModeError {
		return core.StepResult{State: g.State()}
	}

	if in.WasPressed(core.ActionPause) && (g.mode == ModeLevel || g.mode == ModeTown) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch g.mode {
	case ModeLevel:
		g.stepLevel(in)
	case ModeTown:
		g.stepTown(in)
	case ModeDead:
		if in.WasPressed(core.ActionRestart) {
			g.logger.Info("retrying level", "level", g.levels[g.index].ID)
			g.startLevel(g.index)
		}
	case ModeVictory:
		// A new playthrough always starts from the first level.
		if in.WasPressed(core.ActionRestart) {
			g.opts.StartLevel = ""
			g.Reset(g.runtime)
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepLevel(in core.InputFrame) {
	g.clock.Advance()
	res := g.world.Step(in, g.clock.NowMillis())
	g.cam.Update(g.world.Hero().Rect())

	switch {
	case res.Completed:
		g.record(storage.OutcomeCleared)
		p := g.world.Hero().Profile()
		g.carry = &p
		if g.index == len(g.levels)-1 {
			g.mode = ModeVictory
			g.logger.Info("campaign complete", "run", g.runID, "coins", p.Coins)
			return
		}
		g.enterTown()
	case res.HeroDead:
		g.record(storage.OutcomeDied)
		g.mode = ModeDead
	}
}

func (g *Game) stepTown(in core.InputFrame) {
	g.clock.Advance()
	res := g.hub.Step(in, g.clock.NowMillis())
	g.cam.Update(g.hub.Hero().Rect())
	if !res.Done {
		return
	}
	p := g.hub.Profile()
	g.carry = &p
	g.startLevel(g.index + 1)
}

// record writes the current level run to the ledger once.
func (g *Game) record(outcome storage.Outcome) {
	if g.ledger == nil || g.world == nil || g.recorded {
		return
	}
	g.recorded = true
	hero := g.world.Hero()
	_, err := g.ledger.RecordRun(storage.RunRecord{
		RunID:      g.runID,
		LevelID:    g.world.Level().ID,
		Difficulty: string(g.diff),
		Outcome:    outcome,
		Coins:      hero.Coins,
		Keys:       len(hero.Keys),
		Ticks:      g.world.Tick(),
	})
	if err != nil {
		g.logger.Warn("cannot record run", "err", err)
	}
}

// Quit records an unfinished level as abandoned.
func (g *Game) Quit() {
	if g.mode == ModeLevel {
		g.record(storage.OutcomeQuit)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Paused:   g.paused,
		GameOver: g.mode == ModeDead || g.mode == ModeVictory || g.mode == ModeError,
		Victory:  g.mode == ModeVictory,
	}
	switch {
	case g.world != nil:
		st.Score = g.world.Hero().Coins
	case g.hub != nil:
		st.Score = g.hub.Profile().Coins
	}
	return st
}

// Mode returns the active scene.
func (g *Game) Mode() Mode { return g.mode }

// Err returns the error that stopped the campaign, if any.
func (g *Game) Err() error { return g.err }

// RunID identifies this playthrough in the ledger.
func (g *Game) RunID() string { return g.runID }

// World returns the level being played, or nil in town.
func (g *Game) World() *world.World { return g.world }

// Hub returns the town visit, or nil while in a level.
func (g *Game) Hub() *town.Hub { return g.hub }

// LevelIndex returns the index of the current (or next, in town) level.
func (g *Game) LevelIndex() int { return g.index }

// Camera returns the viewport following the hero.
func (g *Game) Camera() *camera.Camera { return g.cam }

// Levels returns the campaign's levels in play order.
func (g *Game) Levels() []*levels.Level { return g.levels }
